package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns the last maxLines lines of the file at path, oldest first.
// A maxLines of zero or less returns every line. A missing file yields no
// lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LineLevel returns the level= attribute of a slog text line. Lines without
// one, such as tea.LogToFile output, report ok=false.
func LineLevel(line string) (slog.Level, bool) {
	for _, field := range strings.Fields(line) {
		v, found := strings.CutPrefix(field, "level=")
		if !found {
			continue
		}
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			return 0, false
		}
		return lvl, true
	}
	return 0, false
}

// Filter keeps lines at or above minLevel. Lines without a level are kept.
func Filter(lines []string, minLevel slog.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if lvl, ok := LineLevel(line); ok && lvl < minLevel {
			continue
		}
		out = append(out, line)
	}
	return out
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	msgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	levelStyle = map[slog.Level]lipgloss.Style{
		slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// Colorize styles the time, level and msg attributes of a slog text line.
// Other lines are returned unchanged.
func Colorize(line string) string {
	if _, ok := LineLevel(line); !ok {
		return line
	}
	fields := strings.Fields(line)
	for i, field := range fields {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "time":
			fields[i] = keyStyle.Render("time=") + timeStyle.Render(val)
		case "level":
			var lvl slog.Level
			_ = lvl.UnmarshalText([]byte(val))
			style, ok := levelStyle[lvl]
			if !ok {
				style = levelStyle[slog.LevelInfo]
			}
			fields[i] = keyStyle.Render("level=") + style.Render(val)
		case "msg":
			fields[i] = keyStyle.Render("msg=") + msgStyle.Render(val)
		}
	}
	return strings.Join(fields, " ")
}

// ColorizeLines applies Colorize to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Colorize(line)
	}
	return out
}
