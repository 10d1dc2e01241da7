// Package notify provides desktop notifications via D-Bus, used to
// announce track changes.
package notify

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string // summary text
	Body       string // optional body
	ReplacesID uint32 // 0 = new notification, >0 = replace existing
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID. Returns 0 and
	// nil error when notifications are unavailable.
	Notify(n Notification) (uint32, error)
}
