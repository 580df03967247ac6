package tui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/core"
	"github.com/vovakirdan/tetris-ga/internal/leaderboard"
	"github.com/vovakirdan/tetris-ga/internal/render"
	"github.com/vovakirdan/tetris-ga/internal/storage"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Mode selects who controls the falling piece.
type Mode int

const (
	// ModeWatch lets the bot play.
	ModeWatch Mode = iota
	// ModePlay takes keyboard input.
	ModePlay
)

// restartDelay is how long a finished watch game stays on screen.
const restartDelay = 3 * time.Second

// Options configures a game session.
type Options struct {
	Mode     Mode
	Rules    tetris.Rules
	Genotype agent.Genotype // bot weights, watch mode only
	Seed     uint64         // 0 draws a fresh seed for every game
	TickRate time.Duration
	Player   string // leaderboard name, play mode only

	Store       *storage.Store     // optional
	Leaderboard *leaderboard.Board // optional
	Logger      *log.Logger        // optional

	Width, Height int
}

// Model is the Bubble Tea model for a watch or play session.
type Model struct {
	opts    Options
	game    *tetris.Game
	pilot   *Autopilot
	keys    *KeyMapper
	help    help.Model
	screen  *core.Screen
	leaders []leaderboard.Entry
	best    int
	logger  *log.Logger

	lastFall   time.Time
	overAt     time.Time
	paused     bool
	quitting   bool
	scoreSaved bool
	status     string
	width      int
	height     int
}

// NewModel creates a model and starts its first game.
func NewModel(opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 50 * time.Millisecond
	}
	if opts.Player == "" {
		opts.Player = "AAA"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		opts:   opts,
		game:   tetris.New(opts.Rules, nextSeed(opts.Seed)),
		keys:   NewKeyMapper(DefaultKeyMap()),
		help:   help.New(),
		screen: core.NewScreen(render.Width, render.Height),
		logger: logger,
		width:  opts.Width,
		height: opts.Height,
	}
	if opts.Mode == ModeWatch {
		m.pilot = NewAutopilot(agent.FromGenotype(opts.Genotype))
	}
	m.refreshLeaders()
	m.refreshBest()
	return m
}

func nextSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return rand.Uint64()
}

// Game returns the running game.
func (m Model) Game() *tetris.Game {
	return m.game
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		if !m.game.GameOver() {
			m.paused = !m.paused
		}
	case core.ActionRestart:
		m.restart()
	case core.ActionNone:
	default:
		if m.opts.Mode == ModePlay && !m.paused {
			m.apply(action)
			m.checkGameOver(time.Now())
		}
	}
	return m, nil
}

func (m *Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case m.game.GameOver():
		m.checkGameOver(now)
		if m.opts.Mode == ModeWatch && now.Sub(m.overAt) >= restartDelay {
			m.restart()
		}
	case m.paused:
		m.lastFall = now
	default:
		if m.lastFall.IsZero() {
			m.lastFall = now
		}
		if m.pilot != nil {
			if !m.apply(m.pilot.Next(m.game)) {
				m.pilot.Blocked()
			}
		}
		if !m.game.GameOver() && now.Sub(m.lastFall) >= m.game.FallInterval() {
			m.game.Gravity()
			m.lastFall = now
		}
		m.checkGameOver(now)
	}
	return *m, tickCmd(m.opts.TickRate)
}

// apply performs a control action on the game and reports whether it did
// anything.
func (m *Model) apply(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		return m.game.MoveLeft()
	case core.ActionRight:
		return m.game.MoveRight()
	case core.ActionRotateCW:
		return m.game.RotateRight()
	case core.ActionRotateCCW:
		return m.game.RotateLeft()
	case core.ActionSoftDrop:
		return m.game.SoftDrop()
	case core.ActionHardDrop:
		m.game.HardDrop()
		return true
	case core.ActionHold:
		return m.game.Hold()
	}
	return false
}

func (m *Model) restart() {
	m.game.Reset(nextSeed(m.opts.Seed))
	if m.pilot != nil {
		m.pilot.Reset()
	}
	m.paused = false
	m.scoreSaved = false
	m.lastFall = time.Time{}
	m.overAt = time.Time{}
	m.status = ""
}

// checkGameOver records a finished game once.
func (m *Model) checkGameOver(now time.Time) {
	if !m.game.GameOver() || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	m.overAt = now

	name := m.playerName()
	score := m.game.Score()
	m.logger.Info("game over", "player", name, "score", score, "lines", m.game.Lines(), "level", m.game.Level())

	if m.opts.Leaderboard != nil {
		if err := m.opts.Leaderboard.Append(name, score); err != nil {
			m.status = err.Error()
			m.logger.Error("leaderboard append failed", "error", err)
		}
	}
	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
			Player: name,
			Score:  score,
			Lines:  m.game.Lines(),
			Level:  m.game.Level(),
		})
		if err != nil {
			m.status = err.Error()
			m.logger.Error("score save failed", "error", err)
		}
	}
	m.refreshLeaders()
	m.refreshBest()
}

// playerName is the name games of this session are recorded under.
func (m Model) playerName() string {
	if m.opts.Mode == ModeWatch {
		return leaderboard.BotName
	}
	return m.opts.Player
}

func (m *Model) refreshBest() {
	if m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.HighScore(m.playerName())
	if err != nil {
		m.status = err.Error()
		return
	}
	m.best = best
}

func (m *Model) refreshLeaders() {
	if m.opts.Leaderboard == nil {
		return
	}
	leaders, err := m.opts.Leaderboard.Standings(3)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.leaders = leaders
}

// frame collects what the renderer draws for the current state.
func (m Model) frame() render.Frame {
	f := render.FrameOf(m.game)
	f.Leaders = m.leaders
	f.Paused = m.paused
	f.Best = m.best
	f.Player = m.playerName()
	return f
}

// saveScreenshot writes the plain-text frame to ~/.tetrisga/screenshots.
func (m *Model) saveScreenshot() {
	render.Draw(m.screen, m.frame())

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = err.Error()
		return
	}
	dir := filepath.Join(home, ".tetrisga", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = err.Error()
		return
	}

	name := fmt.Sprintf("tetris_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + path
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	render.Draw(m.screen, m.frame())
	content := lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		m.help.View(m.keys.Keys().Help(m.opts.Mode)),
		statusStyle.Render(m.status),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// Run starts a full-screen Bubble Tea program for the session.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
