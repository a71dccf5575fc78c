package retro

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaizen/internal/desktop"
	"kaizen/internal/model"
	"kaizen/internal/stats"
	"kaizen/internal/tui"
)

var (
	neon    = lipgloss.Color("46")
	neonDim = lipgloss.Color("28")
	amber   = lipgloss.Color("214")
	gray    = lipgloss.Color("245")

	screenStyle = lipgloss.NewStyle().Foreground(neon)
	dimStyle    = lipgloss.NewStyle().Foreground(neonDim)
	amberStyle  = lipgloss.NewStyle().Foreground(amber)
	grayStyle   = lipgloss.NewStyle().Foreground(gray)

	logoStyle = lipgloss.NewStyle().Foreground(neon).Bold(true)

	iconStyle       = lipgloss.NewStyle().Foreground(neonDim).Padding(0, 1)
	iconActiveStyle = lipgloss.NewStyle().Foreground(neon).Bold(true).Padding(0, 1).Reverse(true)

	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(neon).
			Padding(0, 1)

	titleBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).
			Background(neon).Bold(true).Padding(0, 1)

	taskbarStyle       = lipgloss.NewStyle().Foreground(neon).Reverse(true)
	taskbarButtonStyle = lipgloss.NewStyle().Foreground(neonDim).Padding(0, 1)
	taskbarActiveStyle = lipgloss.NewStyle().Foreground(neon).Bold(true).Padding(0, 1)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(neon).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(neon).Bold(true).Reverse(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m Model) View() string {
	if !m.booted {
		return m.viewBoot()
	}

	var body string
	if m.wm.StartMenuOpen() {
		body = m.viewStartMenu()
	} else if m.ctxOpen {
		body = m.viewContextMenu()
	} else if active := m.wm.Active(); active != "" {
		body = m.viewWindow(active)
	} else {
		body = m.viewDesktop()
	}

	parts := []string{body}
	if m.prefs.Scanlines {
		parts = append(parts, dimStyle.Render(strings.Repeat("░", 64)))
	}
	parts = append(parts, m.viewTaskbar())

	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.chime {
		out = "\a" + out
	}
	return out
}

func (m Model) viewContextMenu() string {
	var b strings.Builder
	for i, item := range m.ctxItems {
		if i == m.ctxCursor {
			b.WriteString(selectedStyle.Render(item.label))
		} else {
			b.WriteString(screenStyle.Render(item.label))
		}
		if i < len(m.ctxItems)-1 {
			b.WriteByte('\n')
		}
	}
	return menuStyle.Render(b.String())
}

func (m Model) viewBoot() string {
	var b strings.Builder
	b.WriteString(logoStyle.Render("K A I Z E N"))
	b.WriteString("\n\n")
	shown := m.bootLine
	if shown > len(bootLines) {
		shown = len(bootLines)
	}
	for _, line := range bootLines[:shown] {
		b.WriteString(screenStyle.Render(line))
		b.WriteByte('\n')
	}
	pct := shown * 100 / len(bootLines)
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("Loading... %d%%", pct)))
	return b.String()
}

func (m Model) viewDesktop() string {
	var b strings.Builder
	for i, t := range desktop.DesktopIcons {
		style := iconStyle
		if i == m.iconCursor {
			style = iconActiveStyle
		}
		b.WriteString(style.Render(desktop.Registry[t].Title))
		b.WriteByte('\n')
	}
	b.WriteString("\n" + dimStyle.Render("enter open · c menu · ctrl+n new habit · ctrl+t tasks · f2 start · q quit"))
	return b.String()
}

func (m Model) viewStartMenu() string {
	var b strings.Builder
	b.WriteString(logoStyle.Render("KAIZEN 98"))
	b.WriteString("\n\n")
	for i, item := range startMenuItems() {
		if i == m.menuCursor {
			b.WriteString(selectedStyle.Render(item.label))
		} else {
			b.WriteString(screenStyle.Render(item.label))
		}
		b.WriteByte('\n')
	}
	return menuStyle.Render(b.String())
}

func (m Model) viewWindow(active desktop.WindowType) string {
	w := m.wm.Get(active)
	def := desktop.Registry[active]

	bar := def.Title + strings.Repeat(" ", 2) +
		fmt.Sprintf("[%d,%d %dx%d]", w.Pos.X, w.Pos.Y, w.Size.Width, w.Size.Height)
	if w.Maximized {
		bar += " [MAX]"
	}

	var content string
	switch active {
	case desktop.WindowTasks:
		content = m.contentTasks()
	case desktop.WindowTodaysTask:
		content = m.contentTodaysTask()
	case desktop.WindowNewHabit:
		content = m.contentNewHabit()
	case desktop.WindowHabits:
		content = m.contentHabits()
	case desktop.WindowActivity:
		content = m.contentActivity()
	case desktop.WindowStats:
		content = m.contentStats()
	case desktop.WindowSettings:
		content = m.contentSettings()
	case desktop.WindowAbout:
		content = m.contentAbout()
	}

	if m.status != "" {
		content += "\n\n" + errStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleBarStyle.Render(bar),
		windowStyle.Render(content),
		dimStyle.Render("f4 close · f9 minimize · f10 maximize · alt+arrows move · ctrl+arrows resize · tab next"),
	)
}

func (m Model) viewTaskbar() string {
	var b strings.Builder
	b.WriteString(taskbarActiveStyle.Render("[Start]"))
	active := m.wm.Active()
	for _, w := range m.wm.Windows() {
		label := desktop.Registry[w.Type].Title
		if w.Minimized {
			label = "_ " + label
		}
		if w.Type == active {
			b.WriteString(taskbarActiveStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(taskbarButtonStyle.Render("[" + label + "]"))
		}
	}

	right := m.clock.Format("15:04:05")
	if n := len(m.upcoming); n > 0 {
		right = fmt.Sprintf("🔔%d  %s", n, right)
	}
	if m.deps.Identity != nil {
		right = m.deps.Identity.DisplayName + "  " + right
	}
	b.WriteString("  " + amberStyle.Render(right))
	return taskbarStyle.Render(b.String())
}

func (m Model) contentTasks() string {
	if m.taskFormOpen {
		heading := "NEW TASK"
		if m.taskEditID != "" {
			heading = "EDIT TASK"
		}
		labels := [taskFieldCount]string{"Title", "Description", "Due date", "Due time"}
		var b strings.Builder
		b.WriteString(amberStyle.Render(heading) + "\n\n")
		for i := range m.taskInputs {
			b.WriteString(grayStyle.Render(labels[i]) + "\n" + m.taskInputs[i].View() + "\n")
		}
		b.WriteString("\n" + dimStyle.Render("enter next · esc cancel"))
		return b.String()
	}

	if len(m.tasks) == 0 {
		return dimStyle.Render("No tasks. Press n to add one.")
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render("C:\\TASKS\\> ") + screenStyle.Render("DIR") + "\n\n")
	for i, t := range m.tasks {
		marker := "  "
		if i == m.taskCursor {
			marker = screenStyle.Render("> ")
		}
		check := "[ ]"
		if t.IsCompleted {
			check = "[x]"
		}
		line := marker + check + " " + t.Title
		if t.IsStarred {
			line += " " + amberStyle.Render("*")
		}
		if t.DueDate != "" {
			due := t.DueDate
			if t.DueTime != "" {
				due += " " + t.DueTime
			}
			line += "  " + dimStyle.Render(due)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("space done · s star · e edit · n new"))
	return b.String()
}

func (m Model) contentTodaysTask() string {
	t, ok := m.todaysTask()
	if !ok {
		return screenStyle.Render("ALL CLEAR\n\nNothing pending today.")
	}

	var b strings.Builder
	b.WriteString(amberStyle.Render("TODAY'S TASK") + "\n\n")
	b.WriteString(screenStyle.Render(t.Title) + "\n")
	if t.Description != "" {
		b.WriteString(grayStyle.Render(t.Description) + "\n")
	}
	if t.DueDate != "" {
		due := t.DueDate
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		b.WriteString(dimStyle.Render("due "+due) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("space mark done"))
	return b.String()
}

func (m Model) contentNewHabit() string {
	frequencies := []model.Frequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyCustom}

	row := func(field int, label, value string) string {
		l := grayStyle.Render(label)
		if m.habitFocus == field {
			l = selectedStyle.Render(label)
		}
		return l + "\n" + value + "\n"
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render("C:\\HABITS\\> ") + screenStyle.Render("NEWHABIT.EXE") + "\n\n")
	b.WriteString(row(habitFieldName, "Name", m.habitName.View()))
	b.WriteString(row(habitFieldFrequency, "Frequency",
		screenStyle.Render("< "+string(frequencies[m.habitFreq])+" >")))
	if frequencies[m.habitFreq] == model.FrequencyCustom {
		b.WriteString(row(habitFieldDays, "Custom days", m.habitDays.View()))
	}
	b.WriteString(row(habitFieldCategory, "Category",
		screenStyle.Render("< "+string(model.Categories[m.habitCat])+" >")))
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(habitColors[m.habitColor]))
	b.WriteString(row(habitFieldColor, "Color",
		swatch.Render("< ██ "+habitColors[m.habitColor]+" >")))
	b.WriteString("\n" + dimStyle.Render("tab next · left/right change · enter create · esc cancel"))
	return b.String()
}

func (m Model) contentHabits() string {
	habits := m.deps.Habits.List()
	if len(habits) == 0 {
		return dimStyle.Render("No habits. Press n to create one.")
	}

	today := m.deps.Now()
	var b strings.Builder
	b.WriteString(dimStyle.Render("C:\\HABITS\\> ") + screenStyle.Render("TYPE MYHABITS.TXT") + "\n\n")
	for i, h := range habits {
		marker := "  "
		if i == m.habitCursor {
			marker = screenStyle.Render("> ")
		}
		check := "[ ]"
		if h.CompletedOn(today) {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", marker, check, h.Name)
		if h.Streak > 0 {
			line += "  " + amberStyle.Render(fmt.Sprintf("%d🔥", h.Streak))
		}
		line += "  " + dimStyle.Render(string(h.Category))
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("space toggle today · d delete · n new"))
	return b.String()
}

func (m Model) contentActivity() string {
	counts := stats.CompletionsByDay(m.tasks, m.deps.Now().Location())
	grid := stats.MonthGrid(m.statsMonth, counts)

	var b strings.Builder
	b.WriteString(amberStyle.Render("ACTIVITY OVERVIEW") + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d tasks completed in %s",
		stats.MonthTotal(grid), m.statsMonth.Format("January 2006"))) + "\n\n")
	b.WriteString(screenStyle.Render(tui.RenderHeatmap(grid)))
	b.WriteString("\n\n" + dimStyle.Render("left/right change month"))
	return b.String()
}

func (m Model) contentStats() string {
	habits := m.deps.Habits.List()
	now := m.deps.Now()
	s := stats.Summarize(habits, now)

	var b strings.Builder
	b.WriteString(dimStyle.Render("C:\\HABITS\\> ") + screenStyle.Render("STATS.EXE --verbose") + "\n\n")
	b.WriteString(screenStyle.Render(fmt.Sprintf(
		"TOTAL HABITS:      %4d\nCOMPLETED TODAY:   %4d\nCOMPLETION RATE:   %3d%%\nLONGEST STREAK:    %4d\nAVERAGE STREAK:    %4.1f\nTOTAL COMPLETIONS: %4d",
		s.TotalHabits, s.CompletedToday, s.CompletionPct, s.LongestStreak, s.AverageStreak, s.TotalCompletions)))
	b.WriteString("\n\n" + amberStyle.Render("COMPLETIONS (LAST 7 DAYS)") + "\n")
	b.WriteString(screenStyle.Render(tui.RenderBarChart(stats.LastSevenDays(habits, now))))
	b.WriteString("\n\n" + amberStyle.Render("CURRENT STREAKS") + "\n")
	b.WriteString(screenStyle.Render(tui.RenderStreakBars(habits)))
	return b.String()
}

func (m Model) contentSettings() string {
	onOff := func(v bool) string {
		if v {
			return "[ON ]"
		}
		return "[OFF]"
	}

	rows := []string{
		"Sound          " + onOff(m.prefs.SoundEnabled),
		"Scanlines      " + onOff(m.prefs.Scanlines),
		"Flicker        " + onOff(m.prefs.Flicker),
		"Grain          " + onOff(m.prefs.Grain),
		"Vignette       " + onOff(m.prefs.Vignette),
		"Wallpaper      < " + m.prefs.Wallpaper + " >",
		"Export backup...",
		"Import backup...",
		"Erase all data",
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render("C:\\> ") + screenStyle.Render("SETTINGS.EXE") + "\n\n")
	for i, row := range rows {
		if i == m.settingsCursor {
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(screenStyle.Render(row))
		}
		b.WriteByte('\n')
	}
	b.WriteString("\n" + dimStyle.Render("space toggle/run · esc close"))
	return b.String()
}

func (m Model) contentAbout() string {
	return screenStyle.Render("K A I Z E N\n\nHabit tracking, one day at a time.\n\n") +
		dimStyle.Render("CRT desktop edition.\nesc to close")
}
