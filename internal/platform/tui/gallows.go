package tui

import (
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/round"
)

// Gallows drawing size.
const (
	gallowsW = 10
	gallowsH = 7
)

// bodyPart is one piece of the hanged man, revealed by the n-th miss.
type bodyPart struct {
	dx, dy int
	r      rune
}

// bodyParts in miss order: head, body, left arm, right arm, left leg, right leg.
var bodyParts = [round.MaxWrongGuesses]bodyPart{
	{7, 2, 'O'},
	{7, 3, '|'},
	{6, 3, '/'},
	{8, 3, '\\'},
	{6, 4, '/'},
	{8, 4, '\\'},
}

// DrawGallows draws the gallows at (x, y) with one body part per miss.
// The figure turns red once the round is lost.
func DrawGallows(s *core.Screen, x, y, wrong int) {
	frame := core.ColorGray
	s.DrawText(x+2, y, "+----+", frame)
	s.SetColored(x+7, y+1, '|', frame)
	s.DrawVLine(x+2, y+1, 5, '|', frame)
	s.DrawHLine(x, y+6, gallowsW, '=', frame)

	body := core.ColorWhite
	if wrong >= round.MaxWrongGuesses {
		body = core.ColorBrightRed
	}
	n := core.Clamp(wrong, 0, round.MaxWrongGuesses)
	for _, p := range bodyParts[:n] {
		s.SetColored(x+p.dx, y+p.dy, p.r, body)
	}
}
