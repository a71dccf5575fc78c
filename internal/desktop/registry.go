package desktop

// WindowType identifies one of the fixed pseudo-applications. A type has at
// most one open instance.
type WindowType string

const (
	WindowTasks      WindowType = "tasks"
	WindowTodaysTask WindowType = "todaystask"
	WindowNewHabit   WindowType = "newhabit"
	WindowHabits     WindowType = "habits"
	WindowActivity   WindowType = "activity"
	WindowStats      WindowType = "stats"
	WindowSettings   WindowType = "settings"
	WindowAbout      WindowType = "about"
)

// Descriptor is the registry entry for a window type: its title bar text and
// the geometry a fresh instance opens with. Content rendering is looked up
// by type in the view layer.
type Descriptor struct {
	Title       string
	DefaultPos  Position
	DefaultSize Size
}

// Registry maps every window type to its descriptor.
var Registry = map[WindowType]Descriptor{
	WindowNewHabit: {
		Title:       "NewHabit.exe",
		DefaultPos:  Position{X: 180, Y: 40},
		DefaultSize: Size{Width: 440, Height: 520},
	},
	WindowHabits: {
		Title:       "MyHabits.txt",
		DefaultPos:  Position{X: 220, Y: 30},
		DefaultSize: Size{Width: 520, Height: 480},
	},
	WindowStats: {
		Title:       "Stats.exe",
		DefaultPos:  Position{X: 260, Y: 50},
		DefaultSize: Size{Width: 500, Height: 520},
	},
	WindowSettings: {
		Title:       "Settings.exe",
		DefaultPos:  Position{X: 300, Y: 40},
		DefaultSize: Size{Width: 420, Height: 500},
	},
	WindowAbout: {
		Title:       "About - KAIZEN",
		DefaultPos:  Position{X: 340, Y: 80},
		DefaultSize: Size{Width: 400, Height: 440},
	},
	WindowTasks: {
		Title:       "Tasks.exe",
		DefaultPos:  Position{X: 200, Y: 30},
		DefaultSize: Size{Width: 520, Height: 520},
	},
	WindowActivity: {
		Title:       "Activity.exe",
		DefaultPos:  Position{X: 240, Y: 50},
		DefaultSize: Size{Width: 480, Height: 500},
	},
	WindowTodaysTask: {
		Title:       "TodaysTask.exe",
		DefaultPos:  Position{X: 300, Y: 40},
		DefaultSize: Size{Width: 500, Height: 520},
	},
}

// DesktopIcons lists the icons shown on the desktop, in order.
var DesktopIcons = []WindowType{
	WindowTasks,
	WindowTodaysTask,
	WindowNewHabit,
	WindowHabits,
	WindowActivity,
	WindowStats,
	WindowSettings,
}
