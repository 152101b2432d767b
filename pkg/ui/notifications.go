package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// NotificationSender interface for platform-specific notification implementations
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", title, message).Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	return exec.Command("osascript", "-e", script).Run()
}

// Notifier prints a message and mirrors it as a desktop notification when
// the platform supports one
type Notifier struct {
	sender  NotificationSender
	desktop bool
}

// NewNotifier creates a Notifier for the current platform. Desktop
// notifications are only sent when desktop is true.
func NewNotifier(desktop bool) *Notifier {
	var sender NotificationSender

	switch runtime.GOOS {
	case "linux":
		sender = &LinuxNotificationSender{}
	case "darwin":
		sender = &MacOSNotificationSender{}
	}

	return &Notifier{sender: sender, desktop: desktop}
}

// NewNotifierWithSender creates a Notifier with an explicit sender
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender, desktop: true}
}

func (n *Notifier) send(title, message string) {
	if n.desktop && n.sender != nil {
		// notifications are best effort
		_ = n.sender.Send(title, message)
	}
}

// SendError prints and sends an error notification
func (n *Notifier) SendError(title, message string) {
	fmt.Fprintf(Output(), "\n%s: %s\n", Red(title), Red(message))
	n.send(title, message)
}

// SendSuccess prints and sends a success notification
func (n *Notifier) SendSuccess(title, message string) {
	if !IsQuietMode() {
		fmt.Fprintf(Output(), "\n%s: %s\n", Green(title), Green(message))
	}
	n.send(title, message)
}
