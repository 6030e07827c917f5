package assets

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImage(t *testing.T) {
	for _, name := range []string{BlackStone, WhiteStone, LastMarker} {
		img, err := LoadImage(name, 64, 64)
		require.NoError(t, err, name)
		assert.Equal(t, 64, img.Bounds().Dx())
		assert.Equal(t, 64, img.Bounds().Dy())

		// 中心不透明，角落透明
		assert.NotZero(t, img.RGBAAt(32, 32).A, name)
		assert.Zero(t, img.RGBAAt(0, 0).A, name)

		again, err := LoadImage(name, 64, 64)
		require.NoError(t, err)
		assert.Same(t, img, again)
	}

	img, err := LoadImage(BlackStone, 0, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())

	_, err = LoadImage("missing", 10, 10)
	assert.Error(t, err)
}

func TestBlackAndWhiteDiffer(t *testing.T) {
	b, err := LoadImage(BlackStone, 40, 40)
	require.NoError(t, err)
	w, err := LoadImage(WhiteStone, 40, 40)
	require.NoError(t, err)
	assert.Greater(t, b.RGBAAt(20, 20).R, b.RGBAAt(20, 20).B)
	assert.Greater(t, w.RGBAAt(20, 20).B, b.RGBAAt(20, 20).B)
}

func TestSound(t *testing.T) {
	const rate = 44100
	pcm, err := Sound(SoundPlace, rate)
	require.NoError(t, err)
	assert.Len(t, pcm, 4*3087)

	peak := 0
	for i := 0; i+4 <= len(pcm); i += 4 {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		require.Equal(t, l, r)
		if int(l) > peak {
			peak = int(l)
		}
	}
	assert.Greater(t, peak, 1000)
	assert.Zero(t, int16(binary.LittleEndian.Uint16(pcm)), "starts silent")

	win, err := Sound(SoundWin, rate)
	require.NoError(t, err)
	assert.Greater(t, len(win), len(pcm))

	_, err = Sound("boom", rate)
	assert.Error(t, err)
}
