// Package viz provides a terminal visualization of the cart and pole.
//
// The explorer is a Bubble Tea program drawing the track, cart, and pole on
// a Braille pixel canvas, with live state readouts and an angle history
// graph alongside.
//
// # Key Bindings
//
//	A     - Push the cart left
//	D     - Push the cart right
//	Space - Pause/Resume
//	R     - Reset the episode
//	Q     - Quit
package viz
