package retro

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kaizen/internal/backup"
	"kaizen/internal/desktop"
	"kaizen/internal/habit"
	"kaizen/internal/model"
	"kaizen/internal/stats"
)

// updateContent routes a key to the active window's controller.
func (m Model) updateContent(active desktop.WindowType, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch active {
	case desktop.WindowTasks:
		return m.updateTasks(msg)
	case desktop.WindowTodaysTask:
		return m.updateTodaysTask(msg)
	case desktop.WindowNewHabit:
		return m.updateNewHabit(msg)
	case desktop.WindowHabits:
		return m.updateHabits(msg)
	case desktop.WindowActivity:
		return m.updateActivity(msg)
	case desktop.WindowSettings:
		return m.updateSettings(msg)
	default:
		if msg.String() == "esc" {
			m.wm.Close(active)
		}
		return m, nil
	}
}

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.taskFormOpen {
		return m.updateTaskForm(msg)
	}

	switch msg.String() {
	case "esc":
		m.wm.Close(desktop.WindowTasks)
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}
	case " ":
		if t, ok := m.selectedTask(); ok {
			m.mutate(func(ctx context.Context) error {
				return m.deps.Tasks.SetCompleted(ctx, t.ID, !t.IsCompleted)
			})
		}
	case "s":
		if t, ok := m.selectedTask(); ok {
			m.mutate(func(ctx context.Context) error {
				return m.deps.Tasks.SetStarred(ctx, t.ID, !t.IsStarred)
			})
		}
	case "n":
		m.openTaskForm(model.Task{})
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.openTaskForm(t)
		}
	}
	return m, nil
}

func (m Model) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.taskFormOpen = false
		return m, nil
	case "tab", "down":
		m.setTaskFocus((m.taskFocus + 1) % taskFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setTaskFocus((m.taskFocus + taskFieldCount - 1) % taskFieldCount)
		return m, nil
	case "enter":
		if m.taskFocus < taskFieldCount-1 {
			m.setTaskFocus(m.taskFocus + 1)
			return m, nil
		}
		m.submitTaskForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.taskInputs[m.taskFocus], cmd = m.taskInputs[m.taskFocus].Update(msg)
	return m, cmd
}

func (m *Model) submitTaskForm() {
	title := m.taskInputs[taskFieldTitle].Value()
	description := m.taskInputs[taskFieldDescription].Value()
	dueDate := m.taskInputs[taskFieldDueDate].Value()
	dueTime := m.taskInputs[taskFieldDueTime].Value()

	if m.taskEditID == "" {
		m.mutate(func(ctx context.Context) error {
			return m.deps.Tasks.Create(ctx, m.deps.OwnerID, model.TaskDraft{
				Title:       title,
				Description: description,
				DueDate:     dueDate,
				DueTime:     dueTime,
			})
		})
	} else {
		m.mutate(func(ctx context.Context) error {
			return m.deps.Tasks.Update(ctx, m.taskEditID, model.TaskPatch{
				Title:       &title,
				Description: &description,
				DueDate:     &dueDate,
				DueTime:     &dueTime,
			})
		})
	}
	if m.status == "" {
		m.taskFormOpen = false
	}
}

func (m *Model) openTaskForm(t model.Task) {
	m.taskFormOpen = true
	m.taskEditID = t.ID
	values := [taskFieldCount]string{t.Title, t.Description, t.DueDate, t.DueTime}
	for i := range m.taskInputs {
		m.taskInputs[i].SetValue(values[i])
	}
	m.setTaskFocus(taskFieldTitle)
}

func (m *Model) setTaskFocus(i int) {
	m.taskInputs[m.taskFocus].Blur()
	m.taskFocus = i
	m.taskInputs[i].Focus()
}

func (m Model) updateTodaysTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wm.Close(desktop.WindowTodaysTask)
	case " ":
		if t, ok := m.todaysTask(); ok {
			m.mutate(func(ctx context.Context) error {
				return m.deps.Tasks.SetCompleted(ctx, t.ID, !t.IsCompleted)
			})
		}
	}
	return m, nil
}

// todaysTask picks the first open task due today, falling back to the first
// open task.
func (m Model) todaysTask() (model.Task, bool) {
	today := m.deps.Now().Format(model.DayKey)
	var fallback *model.Task
	for i, t := range m.tasks {
		if t.IsCompleted {
			continue
		}
		if t.DueDate == today {
			return t, true
		}
		if fallback == nil {
			fallback = &m.tasks[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return model.Task{}, false
}

func (m Model) updateNewHabit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frequencies := []model.Frequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyCustom}

	switch msg.String() {
	case "esc":
		m.wm.Close(desktop.WindowNewHabit)
		return m, nil
	case "tab", "down":
		m.setHabitFocus(m.nextHabitField(1))
		return m, nil
	case "shift+tab", "up":
		m.setHabitFocus(m.nextHabitField(-1))
		return m, nil
	case "left":
		switch m.habitFocus {
		case habitFieldFrequency:
			m.habitFreq = (m.habitFreq + len(frequencies) - 1) % len(frequencies)
		case habitFieldCategory:
			m.habitCat = (m.habitCat + len(model.Categories) - 1) % len(model.Categories)
		case habitFieldColor:
			m.habitColor = (m.habitColor + len(habitColors) - 1) % len(habitColors)
		}
		return m, nil
	case "right":
		switch m.habitFocus {
		case habitFieldFrequency:
			m.habitFreq = (m.habitFreq + 1) % len(frequencies)
		case habitFieldCategory:
			m.habitCat = (m.habitCat + 1) % len(model.Categories)
		case habitFieldColor:
			m.habitColor = (m.habitColor + 1) % len(habitColors)
		}
		return m, nil
	case "enter":
		draft := habit.Draft{
			Name:      m.habitName.Value(),
			Frequency: frequencies[m.habitFreq],
			Category:  model.Categories[m.habitCat],
			Color:     habitColors[m.habitColor],
		}
		if draft.Frequency == model.FrequencyCustom {
			draft.CustomDays = m.habitDays.Value()
		}
		if _, err := m.deps.Habits.Add(draft); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.wm.Close(desktop.WindowNewHabit)
		m.openWindow(desktop.WindowHabits)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.habitFocus {
	case habitFieldName:
		m.habitName, cmd = m.habitName.Update(msg)
	case habitFieldDays:
		m.habitDays, cmd = m.habitDays.Update(msg)
	}
	return m, cmd
}

// nextHabitField steps the focus, skipping the custom-days row unless the
// custom frequency is selected.
func (m Model) nextHabitField(dir int) int {
	frequencies := []model.Frequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyCustom}
	f := m.habitFocus
	for {
		f = (f + dir + habitFieldCount) % habitFieldCount
		if f == habitFieldDays && frequencies[m.habitFreq] != model.FrequencyCustom {
			continue
		}
		return f
	}
}

func (m *Model) setHabitFocus(i int) {
	m.habitName.Blur()
	m.habitDays.Blur()
	m.habitFocus = i
	switch i {
	case habitFieldName:
		m.habitName.Focus()
	case habitFieldDays:
		m.habitDays.Focus()
	}
}

func (m Model) updateHabits(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := m.deps.Habits.List()
	switch msg.String() {
	case "esc":
		m.wm.Close(desktop.WindowHabits)
	case "up", "k":
		if m.habitCursor > 0 {
			m.habitCursor--
		}
	case "down", "j":
		if m.habitCursor < len(habits)-1 {
			m.habitCursor++
		}
	case " ":
		if m.habitCursor < len(habits) {
			if _, err := m.deps.Habits.ToggleToday(habits[m.habitCursor].ID); err != nil {
				m.status = err.Error()
			}
		}
	case "d":
		if m.habitCursor < len(habits) {
			if err := m.deps.Habits.Delete(habits[m.habitCursor].ID); err != nil {
				m.status = err.Error()
			}
			if m.habitCursor > 0 {
				m.habitCursor--
			}
		}
	case "n":
		m.openWindow(desktop.WindowNewHabit)
	}
	return m, nil
}

func (m Model) updateActivity(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wm.Close(desktop.WindowActivity)
	case "left", "h":
		m.statsMonth = stats.PrevMonth(m.statsMonth)
	case "right", "l":
		m.statsMonth = stats.NextMonth(m.statsMonth, m.deps.Now())
	}
	return m, nil
}

// settings window rows
const (
	settingSound = iota
	settingScanlines
	settingFlicker
	settingGrain
	settingVignette
	settingWallpaper
	settingExport
	settingImport
	settingErase
	settingCount
)

var wallpapers = []string{"bg.jpg", "bg2.jpg", "bg3.jpg"}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wm.Close(desktop.WindowSettings)
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < settingCount-1 {
			m.settingsCursor++
		}
	case " ", "enter":
		m.activateSetting()
	}
	return m, nil
}

func (m *Model) activateSetting() {
	switch m.settingsCursor {
	case settingSound:
		m.prefs.SoundEnabled = !m.prefs.SoundEnabled
	case settingScanlines:
		m.prefs.Scanlines = !m.prefs.Scanlines
	case settingFlicker:
		m.prefs.Flicker = !m.prefs.Flicker
	case settingGrain:
		m.prefs.Grain = !m.prefs.Grain
	case settingVignette:
		m.prefs.Vignette = !m.prefs.Vignette
	case settingWallpaper:
		m.prefs.Wallpaper = nextWallpaper(m.prefs.Wallpaper)
	case settingExport:
		m.exportBackup()
		return
	case settingImport:
		m.importBackup()
		return
	case settingErase:
		m.eraseAll()
		return
	}
	if err := m.deps.Settings.Save(m.prefs); err != nil {
		m.status = err.Error()
	}
}

func nextWallpaper(current string) string {
	for i, w := range wallpapers {
		if w == current {
			return wallpapers[(i+1)%len(wallpapers)]
		}
	}
	return wallpapers[0]
}

func (m *Model) exportBackup() {
	now := m.deps.Now()
	path := filepath.Join(m.deps.ProfileDir, backup.FileName(now))
	if err := backup.ExportToFile(path, m.deps.Habits.List(), m.prefs, now); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Exported to " + path
}

func (m *Model) importBackup() {
	path := filepath.Join(m.deps.ProfileDir, "import.json")
	doc, err := backup.ImportFile(path)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.deps.Habits.ReplaceAll(doc.Habits); err != nil {
		m.status = err.Error()
		return
	}
	m.prefs = doc.Settings
	if err := m.deps.Settings.Save(m.prefs); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Imported " + path
}

func (m *Model) eraseAll() {
	if err := m.deps.Habits.Clear(); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.deps.Settings.Clear(); err != nil {
		m.status = err.Error()
		return
	}
	m.prefs = model.DefaultSettings()
	m.status = "Local data erased"
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.taskCursor < 0 || m.taskCursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.taskCursor], true
}

func (m *Model) mutate(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}
