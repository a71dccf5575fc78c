package tui

import (
	"fmt"
	"strings"

	"kaizen/internal/model"
	"kaizen/internal/stats"
)

// heat-map shading, one rune per intensity level
var heatRunes = []rune{'·', '░', '░', '▒', '▒', '▓', '█'}

// RenderBarChart draws the seven-day completion chart as fixed-width text.
func RenderBarChart(days []stats.DayCount) string {
	maxCount := 1
	for _, d := range days {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}

	const height = 8
	var b strings.Builder
	for row := height; row >= 1; row-- {
		threshold := float64(row) / height * float64(maxCount)
		fmt.Fprintf(&b, "  %2d │", int(threshold+0.999))
		for _, d := range days {
			if float64(d.Count) >= threshold {
				b.WriteString(" ██")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("     └" + strings.Repeat("───", len(days)) + "─\n")
	b.WriteString("      ")
	for i, d := range days {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.Label)
	}
	return b.String()
}

// RenderStreakBars draws one bar per habit, capped at twenty cells.
func RenderStreakBars(habits []model.Habit) string {
	if len(habits) == 0 {
		return "  No habits to display"
	}
	nameLen := 0
	for _, h := range habits {
		if n := len(h.Name); n > nameLen {
			nameLen = n
		}
	}
	if nameLen > 12 {
		nameLen = 12
	}

	var b strings.Builder
	for i, h := range habits {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := h.Name
		if len(name) > nameLen {
			name = name[:nameLen]
		}
		filled := h.Streak
		if filled > 20 {
			filled = 20
		}
		fmt.Fprintf(&b, "  %-*s │%s%s│ %d", nameLen, name,
			strings.Repeat("█", filled), strings.Repeat("░", 20-filled), h.Streak)
	}
	return b.String()
}

// RenderHeatmap draws the month grid, Sunday first, one shaded cell per day.
func RenderHeatmap(grid []stats.Cell) string {
	var b strings.Builder
	b.WriteString("  Su Mo Tu We Th Fr Sa\n ")
	col := 0
	for _, c := range grid {
		if c.Empty {
			b.WriteString("   ")
		} else {
			r := heatRunes[stats.Intensity(c.Count)]
			fmt.Fprintf(&b, " %c%c", r, r)
		}
		col++
		if col == 7 {
			b.WriteString("\n ")
			col = 0
		}
	}
	return strings.TrimRight(b.String(), " \n")
}
