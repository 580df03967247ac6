// Package render draws a game frame into a core.Screen: the playfield with
// its falling piece and landing preview on the left and a side panel with
// the queue, counters and leaders on the right.
package render

import (
	"fmt"

	"github.com/vovakirdan/tetris-ga/internal/core"
	"github.com/vovakirdan/tetris-ga/internal/leaderboard"
	"github.com/vovakirdan/tetris-ga/internal/tetris"
)

// Layout constants. Each board column is two characters wide and only rows
// 1..Height are shown; row 0 is the hidden spawn row.
const (
	cellWidth  = 2
	boardW     = tetris.Width*cellWidth + 2
	boardH     = tetris.Height + 2
	panelX     = boardW + 1
	panelW     = 20
	previewW   = tetris.MaskSize*cellWidth + 2
	previewH   = tetris.MaskSize + 2
	leaderRows = 3

	// Width and Height are the screen size a frame needs.
	Width  = panelX + panelW
	Height = boardH
)

var pieceColors = map[tetris.Cell]core.Color{
	tetris.Cell(tetris.PieceI): core.ColorCyan,
	tetris.Cell(tetris.PieceJ): core.ColorBlue,
	tetris.Cell(tetris.PieceL): core.ColorOrange,
	tetris.Cell(tetris.PieceO): core.ColorYellow,
	tetris.Cell(tetris.PieceS): core.ColorGreen,
	tetris.Cell(tetris.PieceT): core.ColorMagenta,
	tetris.Cell(tetris.PieceZ): core.ColorRed,
	tetris.Ghost:               core.ColorGray,
}

// Frame is everything drawn for one refresh.
type Frame struct {
	Board    tetris.Board
	Next     tetris.Piece
	Held     tetris.Piece
	Score    int
	Level    int
	Lines    int
	Goal     int
	Best     int // stored high score of Player
	Player   string
	Leaders  []leaderboard.Entry
	Paused   bool
	GameOver bool
}

// FrameOf captures the drawable state of g. Player and Leaders are left for
// the caller to fill in.
func FrameOf(g *tetris.Game) Frame {
	return Frame{
		Board:    g.Overlay(),
		Next:     g.Next(),
		Held:     g.Held(),
		Score:    g.Score(),
		Level:    g.Level(),
		Lines:    g.Lines(),
		Goal:     g.Goal(),
		GameOver: g.GameOver(),
	}
}

// Draw clears s and renders f into it. s should be at least Width×Height.
func Draw(s *core.Screen, f Frame) {
	s.Clear()

	field := core.NewRect(0, 0, boardW, boardH)
	s.DrawBox(field, core.ColorGray)
	for y := 1; y <= tetris.Height; y++ {
		for x := 0; x < tetris.Width; x++ {
			drawCell(s, 1+x*cellWidth, y, f.Board.At(x, y))
		}
	}

	drawPreview(s, core.NewRect(panelX, 0, previewW, previewH), "NEXT", f.Next)
	drawPreview(s, core.NewRect(panelX+previewW, 0, previewW, previewH), "HOLD", f.Held)

	y := previewH + 1
	for _, line := range []struct {
		label string
		value int
	}{
		{"SCORE", f.Score},
		{"LEVEL", f.Level},
		{"LINES", f.Lines},
		{"GOAL", f.Goal},
		{"BEST", max(f.Best, f.Score)},
	} {
		s.DrawTextColor(panelX, y, fmt.Sprintf("%-6s%d", line.label, line.value), core.ColorWhite)
		y++
	}

	y++
	s.DrawTextColor(panelX, y, "TOP", core.ColorBrightYellow)
	y++
	for i := 0; i < leaderRows; i++ {
		if i < len(f.Leaders) {
			e := f.Leaders[i]
			s.DrawText(panelX, y, fmt.Sprintf("%d %-7s %d", i+1, e.Name, e.Score))
		}
		y++
	}

	if f.Player != "" {
		s.DrawTextColor(panelX, Height-1, "PLAYER "+f.Player, core.ColorBrightCyan)
	}

	inner := field.Inset(1)
	switch {
	case f.GameOver:
		s.DrawTextCentered(inner, boardH/2-1, " GAME OVER ", core.ColorBrightRed)
		s.DrawTextCentered(inner, boardH/2, " r restart ", core.ColorGray)
	case f.Paused:
		s.DrawTextCentered(inner, boardH/2, " PAUSED ", core.ColorBrightWhite)
	}
}

func drawCell(s *core.Screen, x, y int, c tetris.Cell) {
	switch {
	case c == tetris.Empty:
		s.DrawTextColor(x, y, " .", core.ColorGray)
	case c == tetris.Ghost:
		s.DrawTextColor(x, y, "░░", pieceColors[c])
	default:
		s.DrawTextColor(x, y, "██", pieceColors[c])
	}
}

func drawPreview(s *core.Screen, r core.Rect, title string, p tetris.Piece) {
	s.DrawBox(r, core.ColorGray)
	s.DrawTextColor(r.X+1, r.Y, title, core.ColorWhite)
	if !p.Valid() {
		return
	}
	m := tetris.MaskOf(p, 0)
	for row := 0; row < tetris.MaskSize; row++ {
		for col := 0; col < tetris.MaskSize; col++ {
			if m[row][col] {
				drawCell(s, r.X+1+col*cellWidth, r.Y+1+row, tetris.Cell(p))
			}
		}
	}
}
