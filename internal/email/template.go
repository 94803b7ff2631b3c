package email

import (
	"fmt"
	"html"
	"strings"
)

// RenderReminder wraps message in the reminder HTML body. The message is
// escaped and newlines become <br>.
func RenderReminder(subject, message string) string {
	body := strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")

	return fmt.Sprintf(`<html>
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <title>%s</title>
</head>
<body>
  <h2>🩺 CareSync Reminder</h2>
  <p>%s</p>
  <hr>
  <p><small>This is an automated reminder from CareSync. Please do not reply to this email.</small></p>
</body>
</html>`, html.EscapeString(subject), body)
}
