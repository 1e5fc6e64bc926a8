package ui

import "github.com/lixenwraith/deathtrip/pixmap"

// Image draws im centered in r; nil draws nothing
func (r Region) Image(im *pixmap.Image) {
	if im == nil || r.Empty() {
		return
	}
	im.Draw(r.S, r.X+(r.W-im.Width)/2, r.Y+(r.H-im.Height)/2)
}
