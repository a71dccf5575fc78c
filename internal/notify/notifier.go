// Package notify watches the task list for approaching due times and
// delivers reminders through a pluggable Notifier.
package notify

// Permission mirrors the user's standing choice about reminders.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Alert is one reminder ready for delivery.
type Alert struct {
	TaskID    string
	Title     string
	Body      string
	Threshold int // minutes before the due time
}

// Notifier delivers alerts to the user.
type Notifier interface {
	Notify(alert Alert) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Alert) error

func (f NotifierFunc) Notify(alert Alert) error {
	return f(alert)
}

// Recorder collects alerts in memory, for tests and headless runs.
type Recorder struct {
	Alerts []Alert
}

func (r *Recorder) Notify(alert Alert) error {
	r.Alerts = append(r.Alerts, alert)
	return nil
}
