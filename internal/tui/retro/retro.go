// Package retro is the CRT desktop skin: boot sequence, desktop icons, a
// window manager with taskbar and start menu, and one pseudo-application
// per window type.
package retro

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kaizen/internal/desktop"
	"kaizen/internal/model"
	"kaizen/internal/task"
	"kaizen/internal/tui"
)

var bootLines = []string{
	"KAIZEN BIOS v2.0 — HABIT SYSTEM",
	"Checking memory... OK",
	"Loading Go Runtime...",
	"Initializing Identity Provider...",
	"Connecting to Cloud Sync...",
	"Loading habits from local store...",
	"Mounting CRT Display Driver...",
	"Starting Desktop Environment...",
}

type bootTickMsg struct{}

// task form field order, shared with the tasks window
const (
	taskFieldTitle = iota
	taskFieldDescription
	taskFieldDueDate
	taskFieldDueTime
	taskFieldCount
)

// new-habit form rows
const (
	habitFieldName = iota
	habitFieldFrequency
	habitFieldDays
	habitFieldCategory
	habitFieldColor
	habitFieldCount
)

var habitColors = []string{
	"#33FF00", "#00CCFF", "#FF9900", "#FF4444",
	"#b040ff", "#ff40b0", "#FFFF00", "#FFFFFF",
	"#00FF88", "#FF6600", "#4488FF", "#FF0066",
	"#88FF00", "#00FFCC", "#FF3388", "#CCFF00",
}

// Model is the retro skin's bubbletea model.
type Model struct {
	deps tui.Deps
	sub  *task.Subscription
	wm   *desktop.Manager

	width  int
	height int

	booted   bool
	bootLine int

	tasks    []model.Task
	upcoming []model.Task
	prefs    model.Settings
	clock    time.Time
	status   string

	iconCursor int
	menuCursor int

	ctxOpen   bool
	ctxCursor int
	ctxItems  []contextItem

	chime bool

	taskCursor   int
	taskFormOpen bool
	taskEditID   string
	taskInputs   [taskFieldCount]textinput.Model
	taskFocus    int

	habitCursor int
	habitName   textinput.Model
	habitDays   textinput.Model
	habitFreq   int
	habitCat    int
	habitColor  int
	habitFocus  int

	settingsCursor int
	statsMonth     time.Time
}

func New(deps tui.Deps) Model {
	m := Model{
		deps:       deps,
		sub:        deps.Tasks.Subscribe(deps.OwnerID),
		wm:         desktop.NewManager(1280, 800),
		prefs:      deps.Settings.Load(),
		clock:      deps.Now(),
		statsMonth: deps.Now(),
	}

	placeholders := [taskFieldCount]string{"Title", "Description", "YYYY-MM-DD", "HH:MM"}
	for i := range m.taskInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		in.Width = 34
		m.taskInputs[i] = in
	}

	m.habitName = textinput.New()
	m.habitName.Placeholder = "Habit name"
	m.habitName.CharLimit = 60
	m.habitName.Width = 30
	m.habitDays = textinput.New()
	m.habitDays.Placeholder = "e.g. Mon,Wed,Fri"
	m.habitDays.CharLimit = 60
	m.habitDays.Width = 30
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tui.WaitSnapshot(m.sub),
		tui.ScanTick(time.Second),
		bootTick(),
		textinput.Blink,
	)
}

func bootTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return bootTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case bootTickMsg:
		if m.booted {
			return m, nil
		}
		m.bootLine++
		if m.bootLine > len(bootLines)+1 {
			m.booted = true
			return m, nil
		}
		return m, bootTick()

	case tui.SnapshotMsg:
		m.tasks = []model.Task(msg)
		m.upcoming = m.deps.Scanner.Scan(m.tasks, m.deps.Now())
		m.clampTaskCursor()
		return m, tui.WaitSnapshot(m.sub)

	case tui.ScanTickMsg:
		m.clock = time.Time(msg)
		before := len(m.upcoming)
		m.upcoming = m.deps.Scanner.Scan(m.tasks, m.deps.Now())
		m.chime = m.prefs.SoundEnabled && len(m.upcoming) > before
		return m, tui.ScanTick(time.Second)

	case tea.KeyMsg:
		if !m.booted {
			// any key skips the boot sequence
			m.booted = true
			return m, nil
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.sub.Cancel()
		return m, tea.Quit
	}

	if m.wm.StartMenuOpen() {
		return m.updateStartMenu(key)
	}
	if m.ctxOpen {
		return m.updateContextMenu(key)
	}

	switch key {
	case "ctrl+n":
		m.openWindow(desktop.WindowNewHabit)
		return m, nil
	case "ctrl+t":
		m.openWindow(desktop.WindowTasks)
		return m, nil
	case "f1":
		m.openWindow(desktop.WindowAbout)
		return m, nil
	case "f2":
		m.wm.Apply(desktop.Command{Op: desktop.OpToggleStartMenu})
		m.menuCursor = 0
		return m, nil
	}

	active := m.wm.Active()
	if active != "" {
		if handled, next, cmd := m.updateWindowOps(active, key); handled {
			return next, cmd
		}
		return m.updateContent(active, msg)
	}
	return m.updateDesktop(key)
}

// updateWindowOps handles the chrome keys shared by every window.
func (m Model) updateWindowOps(active desktop.WindowType, key string) (bool, Model, tea.Cmd) {
	switch key {
	case "f4":
		m.wm.Close(active)
	case "f9":
		m.wm.Minimize(active)
	case "f10":
		m.wm.ToggleMaximize(active)
	case "tab":
		m.focusNext(active)
	case "alt+up":
		m.dragActive(active, 0, -20)
	case "alt+down":
		m.dragActive(active, 0, 20)
	case "alt+left":
		m.dragActive(active, -20, 0)
	case "alt+right":
		m.dragActive(active, 20, 0)
	case "ctrl+right":
		m.wm.Resize(active, desktop.EdgeRight, 20, 0)
	case "ctrl+left":
		m.wm.Resize(active, desktop.EdgeRight, -20, 0)
	case "ctrl+down":
		m.wm.Resize(active, desktop.EdgeBottom, 0, 20)
	case "ctrl+up":
		m.wm.Resize(active, desktop.EdgeBottom, 0, -20)
	default:
		return false, m, nil
	}
	return true, m, nil
}

func (m *Model) dragActive(active desktop.WindowType, dx, dy int) {
	m.wm.DragStart(active)
	m.wm.Drag(active, dx, dy)
}

// focusNext cycles through the taskbar order.
func (m *Model) focusNext(active desktop.WindowType) {
	windows := m.wm.Windows()
	for i, w := range windows {
		if w.Type == active {
			m.wm.Focus(windows[(i+1)%len(windows)].Type)
			return
		}
	}
}

func (m Model) updateStartMenu(key string) (tea.Model, tea.Cmd) {
	items := startMenuItems()
	switch key {
	case "esc", "f2":
		m.wm.Apply(desktop.Command{Op: desktop.OpCloseStartMenu})
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(items)-1 {
			m.menuCursor++
		}
	case "enter":
		item := items[m.menuCursor]
		if item.window == "" {
			m.sub.Cancel()
			return m, tea.Quit
		}
		m.openWindow(item.window)
	}
	return m, nil
}

func (m Model) updateDesktop(key string) (tea.Model, tea.Cmd) {
	icons := desktop.DesktopIcons
	switch key {
	case "q":
		m.sub.Cancel()
		return m, tea.Quit
	case "up", "k":
		if m.iconCursor > 0 {
			m.iconCursor--
		}
	case "down", "j":
		if m.iconCursor < len(icons)-1 {
			m.iconCursor++
		}
	case "enter":
		m.openWindow(icons[m.iconCursor])
	case "c":
		m.openContextMenu(icons[m.iconCursor])
	case "esc":
		// nothing open, nothing to close
	}
	return m, nil
}

type contextItem struct {
	label  string
	window desktop.WindowType
}

// openContextMenu shows the icon's right-click menu: open the icon, then the
// desktop shortcuts.
func (m *Model) openContextMenu(icon desktop.WindowType) {
	m.ctxItems = []contextItem{
		{"Open " + desktop.Registry[icon].Title, icon},
		{"New Habit", desktop.WindowNewHabit},
		{"Open Tasks", desktop.WindowTasks},
		{"Activity", desktop.WindowActivity},
		{"Statistics", desktop.WindowStats},
		{"Settings", desktop.WindowSettings},
		{"About KAIZEN", desktop.WindowAbout},
	}
	m.ctxCursor = 0
	m.ctxOpen = true
}

func (m Model) updateContextMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "c":
		m.ctxOpen = false
	case "up", "k":
		if m.ctxCursor > 0 {
			m.ctxCursor--
		}
	case "down", "j":
		if m.ctxCursor < len(m.ctxItems)-1 {
			m.ctxCursor++
		}
	case "enter":
		item := m.ctxItems[m.ctxCursor]
		m.ctxOpen = false
		m.openWindow(item.window)
	}
	return m, nil
}

// openWindow opens or raises a window and resets its transient form state.
func (m *Model) openWindow(t desktop.WindowType) {
	m.wm.Open(t)
	m.status = ""
	switch t {
	case desktop.WindowNewHabit:
		m.resetHabitForm()
	case desktop.WindowTasks:
		m.taskFormOpen = false
	}
}

func (m *Model) resetHabitForm() {
	m.habitName.SetValue("")
	m.habitDays.SetValue("")
	m.habitFreq = 0
	m.habitCat = 0
	m.habitColor = 0
	m.habitFocus = habitFieldName
	m.habitName.Focus()
	m.habitDays.Blur()
}

func (m *Model) clampTaskCursor() {
	if n := len(m.tasks); m.taskCursor >= n {
		m.taskCursor = n - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

type startMenuItem struct {
	label  string
	window desktop.WindowType // empty means shut down
}

func startMenuItems() []startMenuItem {
	return []startMenuItem{
		{"New Habit", desktop.WindowNewHabit},
		{"View All Habits", desktop.WindowHabits},
		{"Statistics", desktop.WindowStats},
		{"Settings", desktop.WindowSettings},
		{"About", desktop.WindowAbout},
		{"Shut Down", ""},
	}
}
