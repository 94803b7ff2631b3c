package notifier

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jwalitptl/caresync-api/internal/model"
)

// Mechanism is one way of raising a desktop notification.
type Mechanism struct {
	Name    string
	Command func(title, message string) (string, []string)
}

// Runner executes a command and returns its failure, if any.
type Runner func(ctx context.Context, name string, args ...string) error

// DesktopNotifier tries its mechanisms in order and stops at the first one
// that succeeds. When all fail the error lists every mechanism's failure.
type DesktopNotifier struct {
	mechanisms []Mechanism
	run        Runner
}

func NewDesktopNotifier(mechanisms []Mechanism, run Runner) *DesktopNotifier {
	if run == nil {
		run = execRunner
	}
	return &DesktopNotifier{mechanisms: mechanisms, run: run}
}

// NewPlatformDesktopNotifier uses the mechanisms known for the running OS.
func NewPlatformDesktopNotifier() *DesktopNotifier {
	return NewDesktopNotifier(MechanismsFor(runtime.GOOS), nil)
}

func (n *DesktopNotifier) Channel() model.Channel { return model.ChannelDesktop }

func (n *DesktopNotifier) Notify(ctx context.Context, title, message string) error {
	if len(n.mechanisms) == 0 {
		return errors.New("no desktop notification mechanism for this platform")
	}

	var errs []error
	for _, m := range n.mechanisms {
		name, args := m.Command(title, message)
		err := n.run(ctx, name, args...)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", m.Name, err))
	}
	return errors.Join(errs...)
}

var (
	osascript = Mechanism{
		Name: "osascript",
		Command: func(title, message string) (string, []string) {
			script := fmt.Sprintf("display notification %s with title %s", appleScriptString(message), appleScriptString(title))
			return "osascript", []string{"-e", script}
		},
	}
	notifySend = Mechanism{
		Name: "notify-send",
		Command: func(title, message string) (string, []string) {
			return "notify-send", []string{title, message}
		},
	}
	powershellToast = Mechanism{
		Name: "powershell",
		Command: func(title, message string) (string, []string) {
			script := fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode(%s)) > $null
$text.Item(1).AppendChild($template.CreateTextNode(%s)) > $null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('CareSync').Show($toast)`,
				powershellString(title), powershellString(message))
			return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}
		},
	}
)

// MechanismsFor returns the ordered mechanisms for goos.
func MechanismsFor(goos string) []Mechanism {
	switch goos {
	case "darwin":
		return []Mechanism{osascript, notifySend}
	case "windows":
		return []Mechanism{powershellToast}
	default:
		return []Mechanism{notifySend}
	}
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func powershellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
