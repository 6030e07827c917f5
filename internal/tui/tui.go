// Package tui is a terminal front end: the board is drawn with the ascii
// renderer and moves are typed in rank/file notation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"havannah_go/internal/ai"
	"havannah_go/internal/ascii"
	"havannah_go/internal/game"
)

const historyShown = 8

// aiMoveMsg carries a finished background search back into Update.
type aiMoveMsg struct {
	gen  int
	move game.HexCoord
	err  error
}

// Model is the bubbletea model for one game session.
type Model struct {
	radius int
	board  *game.Board
	styles *ascii.Styles
	logger *log.Logger

	input    textinput.Model
	ai       map[game.Player]ai.Strategy
	newAI    func() ai.Strategy
	aiSide   game.Player
	history  []string
	message  string
	thinking bool
	gen      int // 每次搜索 +1，用于识别过期结果
	quitting bool
	cancel   context.CancelFunc
}

// Options configures a Model. A nil NewAI means two humans share the keyboard.
type Options struct {
	Radius int
	AISide game.Player
	NewAI  func() ai.Strategy
	Styles *ascii.Styles
	Logger *log.Logger
}

// New creates a model with a fresh board.
func New(opts Options) (*Model, error) {
	if opts.Styles == nil {
		opts.Styles = ascii.NewStyles()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "cell such as c3, or new / quit"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 32
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	m := &Model{
		radius: opts.Radius,
		styles: opts.Styles,
		logger: opts.Logger.WithPrefix("tui"),
		input:  ti,
		newAI:  opts.NewAI,
		aiSide: opts.AISide,
	}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) reset() error {
	m.stopAI()
	b, err := game.NewBoard(m.radius)
	if err != nil {
		return err
	}
	m.board = b
	m.history = nil
	m.message = ""
	m.ai = map[game.Player]ai.Strategy{}
	if m.newAI != nil && m.aiSide != game.NoPlayer {
		m.ai[m.aiSide] = m.newAI()
	}
	return nil
}

// Board exposes the current position.
func (m *Model) Board() *game.Board { return m.board }

// Init starts the cursor blink and, if the AI moves first, its search.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.maybeAI())
}

func (m *Model) stopAI() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.thinking = false
}

// maybeAI returns a command running the AI if it is to move.
func (m *Model) maybeAI() tea.Cmd {
	if m.board.State().IsTerminal() || m.thinking {
		return nil
	}
	s, ok := m.ai[m.board.ToMove()]
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.thinking = true
	m.gen++
	b := m.board.Clone()
	gen := m.gen
	return func() tea.Msg {
		defer b.Release()
		mv, err := s.ChooseMove(ctx, b)
		return aiMoveMsg{gen: gen, move: mv, err: err}
	}
}

// play applies a move and records it in the history.
func (m *Model) play(c game.HexCoord) error {
	mover := m.board.ToMove()
	st, err := m.board.MoveAt(c)
	if err != nil {
		return err
	}
	cell := game.FormatCell(c, m.radius)
	m.history = append(m.history, fmt.Sprintf("%d. %v %s", len(m.history)+1, mover, cell))
	m.logger.Debug("move", "player", mover, "cell", cell, "state", st)
	return nil
}

func (m *Model) submit(line string) tea.Cmd {
	line = strings.TrimSpace(strings.ToLower(line))
	switch line {
	case "":
		return nil
	case "quit", "exit":
		m.quitting = true
		m.stopAI()
		return tea.Quit
	case "new":
		if err := m.reset(); err != nil {
			m.message = err.Error()
			return nil
		}
		return m.maybeAI()
	}

	if m.thinking {
		m.message = "wait, the computer is thinking"
		return nil
	}
	c, err := game.ParseCell(line, m.radius)
	if err == nil {
		err = m.play(c)
	}
	switch {
	case err == nil:
		m.message = ""
	case errors.Is(err, game.ErrBadNotation):
		m.message = fmt.Sprintf("can't read %q, try something like c3", line)
	case errors.Is(err, game.ErrOutOfBounds):
		m.message = fmt.Sprintf("%s is off the board", line)
	case errors.Is(err, game.ErrCellOccupied):
		m.message = fmt.Sprintf("%s is taken", line)
	case errors.Is(err, game.ErrGameOver):
		m.message = "the game is over, type new to play again"
	default:
		m.message = err.Error()
	}
	return m.maybeAI()
}

// Update handles key presses and finished AI searches.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.stopAI()
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m, m.submit(line)
		}

	case aiMoveMsg:
		// 过期结果（已开新局）直接丢弃
		if !m.thinking || msg.gen != m.gen {
			return m, nil
		}
		m.stopAI()
		if msg.err != nil {
			m.logger.Error("ai failed", "err", msg.err)
			m.message = "computer failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.play(msg.move); err != nil {
			m.message = err.Error()
		}
		return m, m.maybeAI()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the board, status, recent moves and the prompt.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(ascii.Render(m.board, m.styles))
	sb.WriteString("\n")
	sb.WriteString(ascii.Status(m.board, m.styles))
	if m.thinking {
		sb.WriteString("  (thinking...)")
	}
	sb.WriteString("\n")

	start := max(0, len(m.history)-historyShown)
	if len(m.history) > 0 {
		sb.WriteString(m.styles.Status.Render(strings.Join(m.history[start:], "  ")))
		sb.WriteString("\n")
	}
	if m.message != "" {
		sb.WriteString(m.message)
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	return sb.String()
}
