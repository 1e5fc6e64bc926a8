package ui

import "github.com/rivo/uniseg"

// ContinueMark is drawn once the line is fully revealed
const ContinueMark = '▼'

// DrawDialogue renders the dialogue box: speaker tab on the top border, then full
// wrapped with only the first visible graphemes drawn so words never reflow while typing
func DrawDialogue(r Region, t Theme, speaker, full string, visible int, revealed bool) {
	if r.W < 6 || r.H < 3 {
		return
	}
	fill := Style(t.Fg, t.BoxBg)
	r.BoxFilled(Style(t.Border, t.BoxBg), fill)

	if speaker != "" {
		r.Text(2, 0, " "+Truncate(speaker, r.W-6)+" ", Style(t.SpeakerFg, t.BoxBg).Bold(true))
	}

	body := r.Sub(2, 1, r.W-4, r.H-2)
	for y, row := range WrapRows(full, body.W) {
		shown := visible - row.Start
		if y >= body.H || shown <= 0 {
			break
		}
		line := row.Text
		if uniseg.GraphemeClusterCount(line) > shown {
			line = prefixGraphemes(line, shown)
		}
		body.Text(0, y, line, fill)
	}

	if revealed {
		r.Cell(r.W-3, r.H-1, ContinueMark, Style(t.SpeakerFg, t.BoxBg))
	}
}

// DrawPrompt renders a single centered line above decision buttons
func DrawPrompt(r Region, t Theme, prompt string) {
	if prompt == "" {
		return
	}
	r.TextCenter(0, Truncate(prompt, r.W), Style(t.Fg, t.Bg).Bold(true))
}

func prefixGraphemes(s string, n int) string {
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}
