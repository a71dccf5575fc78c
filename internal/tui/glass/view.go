package glass

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"kaizen/internal/model"
	"kaizen/internal/stats"
	"kaizen/internal/tui"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	sidebarStyle = lipgloss.NewStyle().
			Width(22).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60"))

	sidebarItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	sidebarActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)

	listStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60"))

	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	dueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	starStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	formStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("213"))

	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

func (m Model) View() string {
	if m.mode != formHidden {
		return appStyle.Render(m.viewForm())
	}

	var body string
	if m.view == viewActivity {
		body = listStyle.Render(m.viewActivity())
	} else {
		body = listStyle.Render(m.viewList())
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), " ", body)
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, main, m.viewStatus()))
}

func (m Model) viewSidebar() string {
	starred := 0
	for _, t := range m.tasks {
		if t.IsStarred {
			starred++
		}
	}

	items := []struct {
		id    viewID
		label string
	}{
		{viewAll, fmt.Sprintf("All Tasks   %d", len(m.tasks))},
		{viewStarred, fmt.Sprintf("Starred     %d", starred)},
		{viewActivity, "Activity"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("KAIZEN"))
	if n := len(m.upcoming); n > 0 {
		b.WriteString("  " + badgeStyle.Render(fmt.Sprintf("🔔 %d", n)))
	}
	b.WriteString("\n\n")
	for i, item := range items {
		style := sidebarItemStyle
		if item.id == m.view {
			style = sidebarActiveStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d %s", i+1, item.label)))
		b.WriteByte('\n')
	}
	return sidebarStyle.Render(b.String())
}

func (m Model) viewList() string {
	visible := m.visible()
	if len(visible) == 0 {
		return statusStyle.Render("No tasks yet. Press n to add one.")
	}

	var b strings.Builder
	for i, t := range visible {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderTask(t, i == m.cursor))
	}
	return b.String()
}

func (m Model) renderTask(t model.Task, selected bool) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}

	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}

	title := t.Title
	if t.IsCompleted {
		title = completedStyle.Render(title)
	}

	line := marker + check + " " + title
	if t.IsStarred {
		line += " " + starStyle.Render("★")
	}
	if due := m.renderDue(t); due != "" {
		line += "  " + due
	}
	if t.Description != "" && selected {
		line += "\n      " + statusStyle.Render(t.Description)
	}
	return line
}

func (m Model) renderDue(t model.Task) string {
	due, ok := t.DueAt(m.deps.Now().Location())
	if !ok {
		return ""
	}
	label := due.Format("Jan 2")
	if t.DueTime != "" {
		label = due.Format("Jan 2 15:04")
	}
	if !t.IsCompleted && due.Before(m.deps.Now()) {
		return overdueStyle.Render("overdue " + label)
	}
	return dueStyle.Render("due " + label)
}

func (m Model) viewActivity() string {
	counts := stats.CompletionsByDay(m.tasks, m.deps.Now().Location())
	grid := stats.MonthGrid(m.heatMonth, counts)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Activity Overview"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d tasks completed in %s",
		stats.MonthTotal(grid), m.heatMonth.Format("January 2006"))))
	b.WriteString("\n\n")
	b.WriteString(tui.RenderHeatmap(grid))
	b.WriteString("\n\n")
	nav := "←/→ change month"
	if !stats.CanGoNext(m.heatMonth, m.deps.Now()) {
		nav = "← previous month"
	}
	b.WriteString(statusStyle.Render(nav))
	return b.String()
}

func (m Model) viewForm() string {
	heading := "New Task"
	if m.mode == formEdit {
		heading = "Edit Task"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")
	labels := [fieldCount]string{"Title", "Description", "Due date", "Due time"}
	for i := range m.inputs {
		b.WriteString(labels[i] + "\n" + m.inputs[i].View() + "\n\n")
	}
	b.WriteString(statusStyle.Render("enter next · esc cancel"))
	return formStyle.Render(b.String())
}

func (m Model) viewStatus() string {
	if m.status != "" {
		return errorStyle.Render(m.status)
	}

	who := "Guest"
	if m.deps.Identity != nil && m.deps.Identity.DisplayName != "" {
		who = m.deps.Identity.DisplayName
	}
	return statusStyle.Render(fmt.Sprintf(
		"%s · space done · s star · e edit · n new · q quit", who))
}

func (m Model) heatMonthPrev() time.Time {
	return stats.PrevMonth(m.heatMonth)
}

func (m Model) heatMonthNext() time.Time {
	return stats.NextMonth(m.heatMonth, m.deps.Now())
}
