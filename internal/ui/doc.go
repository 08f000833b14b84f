// Package ui provides semantic text formatting for command output.
//
// Output is styled through named formatters (Success, Error, Info, Path,
// and so on) rather than raw color calls, so every command renders the
// same kind of information the same way. When color is unavailable or
// disabled via NO_COLOR, formatters fall back to plain-text decorations.
package ui
