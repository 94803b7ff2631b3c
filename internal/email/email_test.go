package email

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/caresync-api/internal/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

type fakeSendGrid struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

func TestRenderReminder(t *testing.T) {
	body := RenderReminder("💊 Medication Reminder", "Time to take <Aspirin> (100mg) at 09:00:00")

	assert.Contains(t, body, "🩺 CareSync Reminder")
	assert.Contains(t, body, "Time to take &lt;Aspirin&gt; (100mg) at 09:00:00")
	assert.Contains(t, body, "This is an automated reminder from CareSync. Please do not reply to this email.")
	assert.NotContains(t, body, "<Aspirin>")
}

func TestSMTPService_SendCustom(t *testing.T) {
	d := &fakeDialer{}
	svc := &SMTPService{dialer: d, from: "me@example.com", fromName: "CareSync"}

	require.NoError(t, svc.SendCustom(context.Background(), "", "Subject", "Time to take Aspirin"))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"me@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Subject"}, d.sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Time to take Aspirin")
}

func TestSMTPService_Errors(t *testing.T) {
	d := &fakeDialer{err: errors.New("auth failed")}
	svc := &SMTPService{dialer: d, from: "me@example.com"}

	err := svc.SendCustom(context.Background(), "you@example.com", "s", "m")
	assert.ErrorContains(t, err, "auth failed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.SendCustom(ctx, "you@example.com", "s", "m"), context.Canceled)
}

func TestSendGridService_SendCustom(t *testing.T) {
	client := &fakeSendGrid{status: http.StatusAccepted}
	svc := &SendGridService{client: client, from: "me@example.com", fromName: "CareSync"}

	require.NoError(t, svc.SendCustom(context.Background(), "you@example.com", "Subject", "hello"))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "Subject", client.sent[0].Subject)
	assert.Equal(t, "me@example.com", client.sent[0].From.Address)

	client.status = http.StatusUnauthorized
	assert.ErrorContains(t, svc.SendCustom(context.Background(), "", "s", "m"), "status 401")
}

func TestNewService(t *testing.T) {
	_, err := NewService(config.EmailConfig{Provider: "smtp"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	svc, err := NewService(config.EmailConfig{Provider: "smtp", Address: "a@b.c", Password: "pw", SMTPServer: "smtp.gmail.com", SMTPPort: 587})
	require.NoError(t, err)
	assert.IsType(t, &SMTPService{}, svc)

	svc, err = NewService(config.EmailConfig{Provider: "sendgrid", Address: "a@b.c", SendGridAPIKey: "key"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridService{}, svc)

	_, err = NewService(config.EmailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}
