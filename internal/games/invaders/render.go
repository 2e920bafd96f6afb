package invaders

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Messages shown over the field.
const (
	menuPrompt = "Press ENTER to start the game"
	winTitle   = "Congratulations!"
	winText    = "You have saved the human race from destruction!"
	loseTitle  = "You've Lost..."
	loseText1  = "You have single handedly managed to cause the"
	loseText2  = "desolation of human kind due to your incompetence"
	pausedText = "PAUSED - press P to resume"
	restartTip = "R to play again, ESC to quit"
)

// Render draws the current frame. The screen is pre-cleared.
func (g *Game) Render(dst *core.Screen) {
	g.screenW, g.screenH = dst.Width(), dst.Height()
	if g.ctrl == nil {
		return
	}
	mid := dst.Height() / 2

	if g.inMenu {
		dst.DrawTextCenteredColored(mid, menuPrompt, core.ColorBrightWhite)
		dst.DrawTextCenteredColored(mid+2, g.Title(), core.ColorGray)
		return
	}

	g.view.Draw(dst, g.player.Sprite())
	for i := range g.formation.ships {
		if g.formation.ships[i].Visible() {
			g.view.Draw(dst, g.formation.ships[i].Sprite())
		}
	}
	for _, p := range []*pool{&g.playerShots, &g.enemyShots} {
		for i := range p.slots {
			if p.slots[i].Visible() {
				g.view.Draw(dst, p.slots[i].Sprite())
			}
		}
	}

	score := fmt.Sprintf("Score: %d", g.score)
	dst.DrawTextColored(dst.Width()-len(score)-1, 1, score, core.ColorBrightWhite)

	switch {
	case g.outcome == won:
		drawPanel(dst, []panelLine{
			{winTitle, core.ColorBrightGreen},
			{winText, core.ColorWhite},
			{"", core.ColorDefault},
			{restartTip, core.ColorGray},
		})
	case g.outcome == lost:
		drawPanel(dst, []panelLine{
			{loseTitle, core.ColorBrightRed},
			{loseText1, core.ColorWhite},
			{loseText2, core.ColorWhite},
			{"", core.ColorDefault},
			{restartTip, core.ColorGray},
		})
	case g.paused:
		drawPanel(dst, []panelLine{{pausedText, core.ColorYellow}})
	}
}

type panelLine struct {
	text  string
	color core.Color
}

// drawPanel blanks a boxed area in the middle of the screen and writes the
// lines into it, each centred. The panel hides the field underneath.
func drawPanel(dst *core.Screen, lines []panelLine) {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l.text))
	}
	r := core.NewRect((dst.Width()-w-4)/2, (dst.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	for i, l := range lines {
		dst.DrawTextCenteredColored(r.Y+1+i, l.text, l.color)
	}
}
