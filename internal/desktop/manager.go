// Package desktop implements the retro shell's window manager as a plain
// state container, independent of any rendering surface. The view layer
// drives it with Commands and reads back the stacked window list.
package desktop

// Layout constants. The taskbar strip is excluded from the window area.
const (
	TaskbarHeight = 40
	MinWidth      = 300
	MinHeight     = 200
)

type Position struct {
	X, Y int
}

type Size struct {
	Width, Height int
}

// Edge selects which resize handle is being pulled.
type Edge int

const (
	EdgeRight Edge = iota
	EdgeBottom
	EdgeCorner
)

// Window is one open application instance. Nothing here is persisted; a
// restart begins with zero open windows.
type Window struct {
	Type      WindowType
	Minimized bool
	Maximized bool
	Pos       Position
	Size      Size

	z           int
	restorePos  Position
	restoreSize Size
}

// Op enumerates window-manager commands.
type Op int

const (
	OpOpen Op = iota
	OpClose
	OpFocus
	OpMinimize
	OpMaximize // toggle
	OpDragStart
	OpDrag
	OpResize
	OpTaskbarClick
	OpToggleStartMenu
	OpCloseStartMenu
)

// Command is one message to the window manager.
type Command struct {
	Op   Op
	Type WindowType
	DX   int
	DY   int
	Edge Edge
}

// Manager tracks open windows, stacking, focus and the start menu. The
// z-order value is a strictly increasing counter bumped on open, focus and
// drag-start, so ties cannot occur; the highest value is topmost and active.
type Manager struct {
	viewport      Size
	windows       []*Window // insertion order; taskbar order
	nextZ         int
	startMenuOpen bool
}

func NewManager(viewportWidth, viewportHeight int) *Manager {
	return &Manager{
		viewport: Size{Width: viewportWidth, Height: viewportHeight},
		nextZ:    1,
	}
}

// Apply routes one command. Unknown types are ignored.
func (m *Manager) Apply(cmd Command) {
	switch cmd.Op {
	case OpOpen:
		m.Open(cmd.Type)
	case OpClose:
		m.Close(cmd.Type)
	case OpFocus:
		m.Focus(cmd.Type)
	case OpMinimize:
		m.Minimize(cmd.Type)
	case OpMaximize:
		m.ToggleMaximize(cmd.Type)
	case OpDragStart:
		m.DragStart(cmd.Type)
	case OpDrag:
		m.Drag(cmd.Type, cmd.DX, cmd.DY)
	case OpResize:
		m.Resize(cmd.Type, cmd.Edge, cmd.DX, cmd.DY)
	case OpTaskbarClick:
		m.TaskbarClick(cmd.Type)
	case OpToggleStartMenu:
		m.startMenuOpen = !m.startMenuOpen
	case OpCloseStartMenu:
		m.startMenuOpen = false
	}
}

// Open creates the window at its registered default geometry, or restores/
// raises the existing instance. The window becomes active and the start
// menu closes.
func (m *Manager) Open(t WindowType) {
	def, ok := Registry[t]
	if !ok {
		return
	}
	m.startMenuOpen = false

	if w := m.get(t); w != nil {
		w.Minimized = false
		m.raise(w)
		return
	}

	w := &Window{
		Type: t,
		Pos:  def.DefaultPos,
		Size: def.DefaultSize,
	}
	m.windows = append(m.windows, w)
	m.raise(w)
}

// Close discards the instance entirely; reopening starts fresh.
func (m *Manager) Close(t WindowType) {
	for i, w := range m.windows {
		if w.Type == t {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			return
		}
	}
}

// Minimize hides the window. It stays in the taskbar list.
func (m *Manager) Minimize(t WindowType) {
	if w := m.get(t); w != nil {
		w.Minimized = true
	}
}

// ToggleMaximize grows the window to the full viewport above the taskbar,
// snapshotting its geometry; a second call restores the snapshot. Z-order,
// focus and minimized state are untouched.
func (m *Manager) ToggleMaximize(t WindowType) {
	w := m.get(t)
	if w == nil {
		return
	}
	if w.Maximized {
		w.Maximized = false
		w.Pos = w.restorePos
		w.Size = w.restoreSize
		return
	}
	w.restorePos = w.Pos
	w.restoreSize = w.Size
	w.Maximized = true
	w.Pos = Position{}
	w.Size = Size{Width: m.viewport.Width, Height: m.viewport.Height - TaskbarHeight}
}

// Focus raises the window to the top, makes it active and restores it if
// minimized. Maximized state is untouched.
func (m *Manager) Focus(t WindowType) {
	if w := m.get(t); w != nil {
		w.Minimized = false
		m.raise(w)
	}
}

// DragStart begins a reposition: dragging implicitly focuses.
func (m *Manager) DragStart(t WindowType) {
	m.Focus(t)
}

// Drag moves a non-maximized window by the pointer delta, clamped to the
// viewport above the taskbar.
func (m *Manager) Drag(t WindowType, dx, dy int) {
	w := m.get(t)
	if w == nil || w.Maximized {
		return
	}
	w.Pos.X = clamp(w.Pos.X+dx, 0, m.viewport.Width-w.Size.Width)
	w.Pos.Y = clamp(w.Pos.Y+dy, 0, m.viewport.Height-TaskbarHeight-w.Size.Height)
}

// Resize pulls one handle of a non-maximized window. Width and height move
// independently, the top-left corner stays put and the minimum size holds.
func (m *Manager) Resize(t WindowType, edge Edge, dx, dy int) {
	w := m.get(t)
	if w == nil || w.Maximized {
		return
	}
	if edge == EdgeRight || edge == EdgeCorner {
		w.Size.Width = max(MinWidth, w.Size.Width+dx)
	}
	if edge == EdgeBottom || edge == EdgeCorner {
		w.Size.Height = max(MinHeight, w.Size.Height+dy)
	}
}

// TaskbarClick minimizes the active visible window and focuses any other.
func (m *Manager) TaskbarClick(t WindowType) {
	w := m.get(t)
	if w == nil {
		return
	}
	if m.Active() == t && !w.Minimized {
		m.Minimize(t)
		return
	}
	m.Focus(t)
}

// SetViewport resizes the desktop; maximized windows track the new size.
func (m *Manager) SetViewport(width, height int) {
	m.viewport = Size{Width: width, Height: height}
	for _, w := range m.windows {
		if w.Maximized {
			w.Size = Size{Width: width, Height: height - TaskbarHeight}
		}
	}
}

// Active returns the topmost non-minimized window type, or "" when every
// window is closed or minimized.
func (m *Manager) Active() WindowType {
	var top *Window
	for _, w := range m.windows {
		if w.Minimized {
			continue
		}
		if top == nil || w.z > top.z {
			top = w
		}
	}
	if top == nil {
		return ""
	}
	return top.Type
}

// Windows returns the open set in taskbar (insertion) order.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// Stacked returns non-minimized windows bottom to top for rendering.
func (m *Manager) Stacked() []*Window {
	var out []*Window
	for _, w := range m.windows {
		if !w.Minimized {
			out = append(out, w)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].z < out[j-1].z; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Get returns the open instance of t, or nil.
func (m *Manager) Get(t WindowType) *Window {
	return m.get(t)
}

// StartMenuOpen reports whether the start menu is showing.
func (m *Manager) StartMenuOpen() bool {
	return m.startMenuOpen
}

func (m *Manager) get(t WindowType) *Window {
	for _, w := range m.windows {
		if w.Type == t {
			return w
		}
	}
	return nil
}

func (m *Manager) raise(w *Window) {
	w.z = m.nextZ
	m.nextZ++
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
