package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Sound names.
const (
	SoundPlace   = "place"
	SoundInvalid = "invalid"
	SoundWin     = "win"
)

type tone struct {
	freq float64
	dur  time.Duration
}

var sounds = map[string][]tone{
	SoundPlace:   {{660, 70 * time.Millisecond}},
	SoundInvalid: {{196, 120 * time.Millisecond}},
	SoundWin: {
		{523.25, 110 * time.Millisecond},
		{659.25, 110 * time.Millisecond},
		{783.99, 220 * time.Millisecond},
	},
}

// Sound returns the named effect as 16-bit little-endian stereo PCM at
// sampleRate, the format audio.Context players consume.
func Sound(name string, sampleRate int) ([]byte, error) {
	tones, ok := sounds[name]
	if !ok {
		return nil, fmt.Errorf("unknown sound %q", name)
	}
	var out []byte
	for _, t := range tones {
		out = append(out, synth(t, sampleRate)...)
	}
	return out, nil
}

// synth renders a sine tone with a short attack and exponential decay.
func synth(t tone, sampleRate int) []byte {
	n := int(math.Round(t.dur.Seconds() * float64(sampleRate)))
	attack := sampleRate / 200 // 5ms，避免爆音
	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		env := math.Exp(-4 * float64(i) / float64(n))
		if i < attack {
			env *= float64(i) / float64(attack)
		}
		v := int16(0.35 * env * math.MaxInt16 * math.Sin(2*math.Pi*t.freq*float64(i)/float64(sampleRate)))
		binary.LittleEndian.PutUint16(buf[4*i:], uint16(v))
		binary.LittleEndian.PutUint16(buf[4*i+2:], uint16(v))
	}
	return buf
}
