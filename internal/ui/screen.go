// File /ui/screen.go
package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"havannah_go/internal/ai"
	"havannah_go/internal/assets"
	"havannah_go/internal/game"
	"havannah_go/internal/hexlayout"
)

const (
	// 窗口尺寸
	WindowWidth  = 800
	WindowHeight = 640

	statusBarH  = 40
	boardMargin = 16
)

// Mode selects who controls each side.
type Mode string

const (
	ModePvP Mode = "pvp" // 人人
	ModePvE Mode = "pve" // 人机
	ModeEvE Mode = "eve" // 机机演示
)

// Config is everything the screen needs to start a game.
type Config struct {
	Radius  int
	Mode    Mode
	Human   game.Player // side played by the human in pve
	AIDelay time.Duration
	NewAI   func() ai.Strategy
	Logger  *log.Logger
}

type aiResult struct {
	move game.HexCoord
	err  error
}

// GameScreen 实现 ebiten.Game 接口，管理游戏主循环和渲染
type GameScreen struct {
	cfg    Config
	board  *game.Board
	layout hexlayout.Layout
	logger *log.Logger

	stoneImages map[game.Player]*ebiten.Image
	lastMarker  *ebiten.Image
	white       *ebiten.Image // 1x1 白图，给 DrawTriangles 用
	fontFace    font.Face

	audioCtx *audio.Context
	sounds   map[string][]byte

	hover    *game.HexCoord
	message  string
	aiPlayer map[game.Player]ai.Strategy

	aiResultCh chan aiResult      // 后台AI结果传回（容量1）
	aiCancel   context.CancelFunc // 取消后台搜索
	aiRunning  bool
	aiReadyAt  time.Time // 早于此时间不落 AI 的子，便于观看
}

// NewGameScreen 构造并初始化游戏界面
func NewGameScreen(ctx *audio.Context, cfg Config) (*GameScreen, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	gs := &GameScreen{
		cfg:        cfg,
		logger:     cfg.Logger,
		fontFace:   basicfont.Face7x13,
		audioCtx:   ctx,
		sounds:     make(map[string][]byte),
		aiResultCh: make(chan aiResult, 1),
	}
	gs.white = ebiten.NewImage(1, 1)
	gs.white.Fill(color.White)

	if ctx != nil {
		for _, name := range []string{assets.SoundPlace, assets.SoundInvalid, assets.SoundWin} {
			pcm, err := assets.Sound(name, ctx.SampleRate())
			if err != nil {
				return nil, fmt.Errorf("初始化音效失败: %w", err)
			}
			gs.sounds[name] = pcm
		}
	}

	if err := gs.reset(); err != nil {
		return nil, err
	}
	return gs, nil
}

// reset starts a new game with the configured radius and players.
func (gs *GameScreen) reset() error {
	gs.stopAI()
	b, err := game.NewBoard(gs.cfg.Radius)
	if err != nil {
		return err
	}
	gs.board = b
	gs.hover = nil
	gs.message = ""

	gs.layout = hexlayout.Fit(gs.cfg.Radius, WindowWidth, WindowHeight-statusBarH, boardMargin)
	gs.layout.OriginY += statusBarH

	gs.aiPlayer = map[game.Player]ai.Strategy{}
	switch gs.cfg.Mode {
	case ModePvE:
		gs.aiPlayer[gs.cfg.Human.Flip()] = gs.cfg.NewAI()
	case ModeEvE:
		gs.aiPlayer[game.Black] = gs.cfg.NewAI()
		gs.aiPlayer[game.White] = gs.cfg.NewAI()
	}

	// 棋子贴图按当前格子尺寸栅格化
	px := int(gs.layout.Size * 1.6)
	gs.stoneImages = make(map[game.Player]*ebiten.Image, 2)
	for p, name := range map[game.Player]string{game.Black: assets.BlackStone, game.White: assets.WhiteStone} {
		img, err := assets.LoadImage(name, px, px)
		if err != nil {
			return fmt.Errorf("加载棋子贴图失败: %w", err)
		}
		gs.stoneImages[p] = ebiten.NewImageFromImage(img)
	}
	img, err := assets.LoadImage(assets.LastMarker, px, px)
	if err != nil {
		return fmt.Errorf("加载标记贴图失败: %w", err)
	}
	gs.lastMarker = ebiten.NewImageFromImage(img)

	gs.logger.Info("new game", "radius", gs.cfg.Radius, "mode", gs.cfg.Mode, "cells", b.Size())
	enterPerf()
	return nil
}

func (gs *GameScreen) play(name string) {
	pcm, ok := gs.sounds[name]
	if !ok || gs.audioCtx == nil {
		return
	}
	gs.audioCtx.NewPlayerFromBytes(pcm).Play()
}

// applyMove 落子并处理音效与日志，返回是否成功
func (gs *GameScreen) applyMove(c game.HexCoord) bool {
	mover := gs.board.ToMove()
	st, err := gs.board.MoveAt(c)
	if err != nil {
		gs.play(assets.SoundInvalid)
		switch {
		case errors.Is(err, game.ErrCellOccupied):
			gs.message = "occupied"
		case errors.Is(err, game.ErrOutOfBounds):
			gs.message = "off the board"
		default:
			gs.message = err.Error()
		}
		gs.logger.Debug("move rejected", "player", mover, "cell", game.FormatCell(c, gs.cfg.Radius), "err", err)
		return false
	}
	gs.message = ""
	gs.logger.Info("move", "turn", gs.board.Turn(), "player", mover, "cell", game.FormatCell(c, gs.cfg.Radius))
	if st.IsTerminal() {
		gs.play(assets.SoundWin)
		gs.logger.Info("game over", "result", st)
	} else {
		gs.play(assets.SoundPlace)
	}
	return true
}

func (gs *GameScreen) stopAI() {
	if gs.aiCancel != nil {
		gs.aiCancel()
		gs.aiCancel = nil
	}
	gs.aiRunning = false
	// 丢弃过期结果
	select {
	case <-gs.aiResultCh:
	default:
	}
}

// startAI searches on a clone of the board in the background.
func (gs *GameScreen) startAI(s ai.Strategy) {
	ctx, cancel := context.WithCancel(context.Background())
	gs.aiCancel = cancel
	gs.aiRunning = true
	gs.aiReadyAt = time.Now().Add(gs.cfg.AIDelay)

	boardCopy := gs.board.Clone()
	go func(b *game.Board, out chan<- aiResult) {
		mv, err := s.ChooseMove(ctx, b)
		if ctx.Err() != nil {
			return
		}
		select {
		case out <- aiResult{move: mv, err: err}:
		default:
		}
	}(boardCopy, gs.aiResultCh)
}

// Update 更新游戏状态
func (gs *GameScreen) Update() error {
	if gs.handleKeys() {
		return nil
	}
	if gs.board.State().IsTerminal() {
		gs.stopAI()
		leavePerf(false)
		return nil
	}

	// AI 回合
	if s, ok := gs.aiPlayer[gs.board.ToMove()]; ok {
		enterPerf()
		if !gs.aiRunning {
			gs.startAI(s)
			return nil
		}
		if time.Now().Before(gs.aiReadyAt) {
			return nil
		}
		select {
		case r := <-gs.aiResultCh:
			gs.aiRunning = false
			gs.aiCancel()
			gs.aiCancel = nil
			if r.err != nil {
				gs.logger.Error("ai failed", "err", r.err)
				gs.message = "AI error: " + r.err.Error()
				return nil
			}
			gs.applyMove(r.move)
		default:
		}
		return nil
	}

	// 人类输入处理
	gs.handleInput()
	return nil
}

// Draw 每帧渲染：背景、棋盘、棋子、状态栏
func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1e, 0x1e, 0x24, 0xff})
	gs.drawBoard(screen)
	gs.drawStones(screen)
	gs.drawStatus(screen)
}

// Layout 定义窗口尺寸
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Close stops any background search.
func (gs *GameScreen) Close() {
	gs.stopAI()
}
