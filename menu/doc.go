// Package menu implements the non-story screens: main menu, info and settings.
//
// Screens talk to the rest of the program through app.Navigator and audio.Player
// and never touch the terminal directly outside Draw.
package menu
