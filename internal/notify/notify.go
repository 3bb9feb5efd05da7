// Package notify provides desktop notifications via D-Bus.
package notify

import "fmt"

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const (
	appName      = "Reel"
	desktopEntry = "reel"

	conversionTimeout = 5000
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Conversion builds the notification for a finished conversion.
// detail is appended to the body on success, e.g. the output size.
func Conversion(label, detail string, err error) Notification {
	if err != nil {
		return Notification{
			Title:   "Conversion failed",
			Body:    fmt.Sprintf("%s\n%v", label, err),
			Icon:    "dialog-error",
			Timeout: conversionTimeout,
			Urgency: UrgencyCritical,
		}
	}

	body := label
	if detail != "" {
		body += " (" + detail + ")"
	}
	return Notification{
		Title:   "Conversion finished",
		Body:    body,
		Icon:    "video-x-generic",
		Timeout: conversionTimeout,
		Urgency: UrgencyNormal,
	}
}

// Nop returns a notifier that never shows anything.
func Nop() Notifier {
	return &stubNotifier{}
}

// stubNotifier is used when notifications are disabled or unavailable.
type stubNotifier struct{}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) {
	return 0, nil
}

func (s *stubNotifier) Close(_ uint32) error {
	return nil
}
