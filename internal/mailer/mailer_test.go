package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func testMessage() Message {
	return Message{
		From:    "noreply@hypenest.io",
		To:      "a@x.com",
		Subject: "Your Hypenest verification code",
		Text:    "Your OTP is 123456. It expires in 10 minutes.",
		HTML:    "<p>Your OTP is <b>123456</b>. It expires in 10 minutes.</p>",
	}
}

func TestBuild(t *testing.T) {
	m := Build(testMessage())

	assert.Equal(t, []string{"a@x.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"noreply@hypenest.io"}, m.GetHeader("From"))
	assert.Equal(t, []string{"Your Hypenest verification code"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "123456")
}

func TestSMTPSender_Send(t *testing.T) {
	d := &recordingDialer{}
	s := NewSenderWithDialer(d)

	require.NoError(t, s.Send(context.Background(), testMessage()))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"a@x.com"}, d.sent[0].GetHeader("To"))
}

func TestSMTPSender_Send_PropagatesFailure(t *testing.T) {
	d := &recordingDialer{err: errors.New("535 authentication failed")}
	s := NewSenderWithDialer(d)

	err := s.Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "send mail to a@x.com")
	assert.ErrorIs(t, err, d.err)
}

func TestSMTPSender_Send_CanceledContext(t *testing.T) {
	d := &recordingDialer{}
	s := NewSenderWithDialer(d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, testMessage()), context.Canceled)
	assert.Empty(t, d.sent)
}
