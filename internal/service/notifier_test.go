package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"customer-intake-portal/internal/config"
	apperrors "customer-intake-portal/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

// fakeMailSender records the messages handed to the SMTP client
type fakeMailSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeMailSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return f.err
}

func testMessage() Message {
	return Message{
		From:    "Customer Intake <noreply@example.com>",
		To:      []string{"rep@co.com"},
		Subject: "New Record Entered : Pricing",
		Body:    "Dear Rep Name,\n\nA new entry has been created.\n\nSubject: Pricing\nMessage: Need a quote\n",
	}
}

func TestBuildMail(t *testing.T) {
	m, err := buildMail(testMessage())
	require.NoError(t, err)

	rcpts, err := m.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"rep@co.com"}, rcpts)
	assert.Equal(t, []string{"New Record Entered : Pricing"}, m.GetGenHeader(mail.HeaderSubject))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Need a quote")
}

func TestBuildMail_Errors(t *testing.T) {
	msg := testMessage()
	msg.To = nil
	_, err := buildMail(msg)
	assert.ErrorIs(t, err, apperrors.ErrNoRecipients)

	msg = testMessage()
	msg.From = "not an address"
	_, err = buildMail(msg)
	assert.Error(t, err)

	msg = testMessage()
	msg.To = []string{"@@"}
	_, err = buildMail(msg)
	assert.Error(t, err)
}

func TestSMTPNotifier_Send(t *testing.T) {
	sender := &fakeMailSender{}
	n := &SMTPNotifier{client: sender}

	require.NoError(t, n.Send(context.Background(), testMessage()))
	assert.Len(t, sender.sent, 1)
}

func TestSMTPNotifier_SendError(t *testing.T) {
	sender := &fakeMailSender{err: errors.New("421 service not available")}
	n := &SMTPNotifier{client: sender}

	err := n.Send(context.Background(), testMessage())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "421 service not available")
}

func TestSMTPNotifier_InvalidMessageIsNotSent(t *testing.T) {
	sender := &fakeMailSender{}
	n := &SMTPNotifier{client: sender}

	msg := testMessage()
	msg.To = nil
	assert.ErrorIs(t, n.Send(context.Background(), msg), apperrors.ErrNoRecipients)
	assert.Empty(t, sender.sent)
}

func TestNewSMTPNotifier(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		n, err := NewSMTPNotifier(&config.Config{SMTPPort: 587})
		assert.ErrorIs(t, err, apperrors.ErrSMTPConfigMissing)
		assert.Nil(t, n)
	})

	t.Run("with credentials", func(t *testing.T) {
		n, err := NewSMTPNotifier(&config.Config{
			SMTPHost:      "smtp.example.com",
			SMTPPort:      587,
			SMTPUsername:  "intake",
			SMTPPassword:  "secret",
			SMTPTLSPolicy: "mandatory",
		})
		require.NoError(t, err)
		assert.NotNil(t, n)
	})
}

func TestTLSPolicy(t *testing.T) {
	assert.Equal(t, mail.NoTLS, tlsPolicy("none"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicy("opportunistic"))
	assert.Equal(t, mail.TLSMandatory, tlsPolicy("mandatory"))
	assert.Equal(t, mail.TLSMandatory, tlsPolicy(""))
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier()
	assert.NoError(t, n.Send(context.Background(), testMessage()))

	msg := testMessage()
	msg.To = nil
	assert.ErrorIs(t, n.Send(context.Background(), msg), apperrors.ErrNoRecipients)
}
