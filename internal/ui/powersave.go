package ui

import "github.com/hajimehoshi/ebiten/v2"

const (
	activeTPS = 60
	idleTPS   = 15
)

var perfOn = true // 默认以高刷新启动

// enterPerf 有交互或 AI 在算时切回高刷新
func enterPerf() {
	if perfOn {
		return
	}
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(activeTPS)
	perfOn = true
}

// leavePerf 空闲（鼠标在棋盘外或对局结束）时降档
func leavePerf(force bool) {
	if !perfOn && !force {
		return
	}
	ebiten.SetVsyncEnabled(false)
	ebiten.SetTPS(idleTPS)
	perfOn = false
}
