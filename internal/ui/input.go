// File ui/input.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleKeys 处理全局按键，返回本帧是否已处理完
func (gs *GameScreen) handleKeys() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := gs.reset(); err != nil {
			gs.logger.Error("reset failed", "err", err)
		}
		return true
	}
	return false
}

// handleInput 处理鼠标悬停与点击落子
func (gs *GameScreen) handleInput() {
	mx, my := ebiten.CursorPosition()
	coord, ok := gs.layout.Pick(float64(mx), float64(my))
	if ok {
		if gs.hover == nil || *gs.hover != coord {
			enterPerf()
		}
		h := coord
		gs.hover = &h
	} else {
		gs.hover = nil
	}

	// 只处理鼠标左键刚按下
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !ok {
			leavePerf(false)
		}
		return
	}
	enterPerf()
	if !ok {
		return
	}
	gs.applyMove(coord)
}
