package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/holdshift/internal/hold"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleTrigger = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// draw renders the buffer with a title bar above and a status bar below.
func (a *App) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	if width == 0 || height < 3 {
		screen.Show()
		return
	}

	drawText(screen, 0, 0, width, styleTitle, " holdshift  (Ctrl+T toggle, Esc quit)")

	lines := strings.Split(a.session.Text(), "\n")
	top := 0
	if len(lines) > height-2 {
		top = len(lines) - (height - 2)
	}
	for i, line := range lines[top:] {
		if 1+i >= height-1 {
			break
		}
		drawText(screen, 0, 1+i, width, styleDefault, line)
	}

	a.drawStatus(screen, width, height-1)
	screen.Show()
}

func (a *App) drawStatus(screen tcell.Screen, width, y int) {
	dec := a.session.LastVerdict()
	state := "off"
	if a.session.Enabled() {
		state = "on"
	}
	table := a.session.TableName()
	if table == "" {
		table = "none"
	}
	status := fmt.Sprintf(" detect:%s  table:%s  verdict:%s  repeats:%d  cursors:%d",
		state, table, dec.Verdict, a.session.RepeatCount(), a.session.Cursors().Count())

	style := styleStatus
	if dec.Verdict == hold.VerdictTrigger {
		style = styleTrigger
	}
	drawText(screen, 0, y, width, style, pad(status, width))
}

// drawText writes s at (x, y), one cell per grapheme cluster, clipped
// to maxWidth.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, s string) {
	col := x
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if col-x >= maxWidth {
			return
		}
		runes := []rune(cluster)
		screen.SetContent(col, y, runes[0], runes[1:], style)
		col++
	}
}

func pad(s string, width int) string {
	if n := width - uniseg.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
