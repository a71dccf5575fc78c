// Package glass is the modern skin: a sidebar, a task list and a modal
// add/edit form.
package glass

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kaizen/internal/model"
	"kaizen/internal/task"
	"kaizen/internal/tui"
)

type viewID int

const (
	viewAll viewID = iota
	viewStarred
	viewActivity
)

type formMode int

const (
	formHidden formMode = iota
	formAdd
	formEdit
)

// form field order
const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldDueTime
	fieldCount
)

// Model is the glass skin's bubbletea model.
type Model struct {
	deps tui.Deps
	sub  *task.Subscription

	tasks    []model.Task
	upcoming []model.Task

	view   viewID
	cursor int
	width  int
	height int

	mode   formMode
	editID string
	inputs [fieldCount]textinput.Model
	focus  int

	heatMonth time.Time
	status    string
}

func New(deps tui.Deps) Model {
	m := Model{
		deps:      deps,
		sub:       deps.Tasks.Subscribe(deps.OwnerID),
		heatMonth: deps.Now(),
	}

	placeholders := [fieldCount]string{"Task title", "Description (optional)", "Due date YYYY-MM-DD", "Due time HH:MM"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		in.Width = 40
		m.inputs[i] = in
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tui.WaitSnapshot(m.sub),
		tui.ScanTick(time.Second),
		textinput.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tui.SnapshotMsg:
		m.tasks = []model.Task(msg)
		m.upcoming = m.deps.Scanner.Scan(m.tasks, m.deps.Now())
		m.clampCursor()
		return m, tui.WaitSnapshot(m.sub)

	case tui.ScanTickMsg:
		m.upcoming = m.deps.Scanner.Scan(m.tasks, m.deps.Now())
		return m, tui.ScanTick(time.Second)

	case tea.KeyMsg:
		if m.mode != formHidden {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.sub.Cancel()
		return m, tea.Quit

	case "1":
		m.view = viewAll
		m.clampCursor()
	case "2":
		m.view = viewStarred
		m.clampCursor()
	case "3":
		m.view = viewActivity

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case "left", "h":
		if m.view == viewActivity {
			m.heatMonth = m.heatMonthPrev()
		}
	case "right", "l":
		if m.view == viewActivity {
			m.heatMonth = m.heatMonthNext()
		}

	case " ":
		if t, ok := m.selected(); ok {
			m.mutate(func(ctx context.Context) error {
				return m.deps.Tasks.SetCompleted(ctx, t.ID, !t.IsCompleted)
			})
		}
	case "s":
		if t, ok := m.selected(); ok {
			m.mutate(func(ctx context.Context) error {
				return m.deps.Tasks.SetStarred(ctx, t.ID, !t.IsStarred)
			})
		}
	case "n":
		m.openForm(formAdd, model.Task{})
	case "e":
		if t, ok := m.selected(); ok {
			m.openForm(formEdit, t)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = formHidden
		return m, nil

	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter":
		if m.focus < fieldCount-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := m.inputs[fieldTitle].Value()
	description := m.inputs[fieldDescription].Value()
	dueDate := m.inputs[fieldDueDate].Value()
	dueTime := m.inputs[fieldDueTime].Value()

	switch m.mode {
	case formAdd:
		m.mutate(func(ctx context.Context) error {
			return m.deps.Tasks.Create(ctx, m.deps.OwnerID, model.TaskDraft{
				Title:       title,
				Description: description,
				DueDate:     dueDate,
				DueTime:     dueTime,
			})
		})
	case formEdit:
		m.mutate(func(ctx context.Context) error {
			return m.deps.Tasks.Update(ctx, m.editID, model.TaskPatch{
				Title:       &title,
				Description: &description,
				DueDate:     &dueDate,
				DueTime:     &dueTime,
			})
		})
	}
	m.mode = formHidden
	return m, nil
}

func (m *Model) openForm(mode formMode, t model.Task) {
	m.mode = mode
	m.editID = t.ID
	values := [fieldCount]string{t.Title, t.Description, t.DueDate, t.DueTime}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
	m.setFocus(fieldTitle)
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
}

// mutate runs a store call and keeps the failure on the status line. The
// snapshot feed delivers the effect.
func (m *Model) mutate(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m Model) visible() []model.Task {
	if m.view != viewStarred {
		return m.tasks
	}
	var out []model.Task
	for _, t := range m.tasks {
		if t.IsStarred {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) selected() (model.Task, bool) {
	v := m.visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return model.Task{}, false
	}
	return v[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
