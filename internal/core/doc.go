// Package core holds the platform-neutral types shared by the puzzle and the
// terminal front end: the colored screen buffer, abstract input actions and
// the runtime configuration handed to a game on reset.
//
// It has no third-party imports so game logic can be tested without a
// terminal.
package core
