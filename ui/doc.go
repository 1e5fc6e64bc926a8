// Package ui provides immediate-mode widgets drawn straight onto a tcell screen.
//
// Region is the drawing surface: a clipped rectangle with coordinates relative
// to its origin. Widgets keep only interaction state (hover, press, drag) and
// draw into whatever region the screen hands them each frame.
//
// Usage pattern:
//
//	root := ui.Full(screen)
//	root.Fill(ui.DefaultTheme.Base())
//	box := root.Sub(2, root.H-8, root.W-4, 7)
//	ui.DrawDialogue(box, ui.DefaultTheme, "Alex", line, shown, shown == total)
//	fade.Draw(screen)
//	screen.Show()
package ui
