// Package logtail reads the end of the gobiview log file.
//
// The TUI owns the terminal, so app.Run sends both the standard logger and
// the slog logger to a file. The logs subcommand uses this package to show
// the last lines of that file, optionally dropping lines below a level.
//
// Read keeps a ring buffer of the last N lines, so memory stays bounded by
// N and not by the file size. A missing file is not an error.
//
// Lines written by slog's text handler carry time=, level= and msg=
// attributes. LineLevel and Filter use the level; Colorize styles those three
// attributes with lipgloss. Lines in any other format pass through as is.
package logtail
