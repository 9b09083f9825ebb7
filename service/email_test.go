package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"chequeprinter/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newTestEmailService(enabled bool) (*EmailService, *[]*gomail.Message) {
	s := NewEmailService(&config.EmailConfig{Enabled: enabled, Username: "noreply@example.com", From: "Cheque Printer"})
	var sent []*gomail.Message
	s.send = func(m *gomail.Message) error {
		sent = append(sent, m)
		return nil
	}
	return s, &sent
}

func TestGenerateBackupEmailBody(t *testing.T) {
	s, _ := newTestEmailService(true)
	body := s.generateBackupEmailBody("chequeprinter-backup-2024-03-15.json", 12, 3)
	assert.Contains(t, body, "chequeprinter-backup-2024-03-15.json")
	assert.Contains(t, body, "<strong>12</strong>")
	assert.Contains(t, body, "<strong>3</strong>")
}

func TestEmailService_SendBackup(t *testing.T) {
	s, sent := newTestEmailService(true)
	require.NoError(t, s.SendBackup("me@example.com", "backup.json", []byte(`{"version":"1.0"}`), 1, 3))
	require.Len(t, *sent, 1)

	m := (*sent)[0]
	assert.Equal(t, []string{"me@example.com"}, m.GetHeader("To"))

	var raw bytes.Buffer
	_, err := m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "backup.json")
	assert.Contains(t, raw.String(), "attachment")
}

func TestEmailService_Disabled(t *testing.T) {
	s, sent := newTestEmailService(false)
	assert.Error(t, s.SendBackup("me@example.com", "backup.json", nil, 0, 0))
	assert.Empty(t, *sent)
}

func TestEmailService_SendFailure(t *testing.T) {
	s, _ := newTestEmailService(true)
	s.send = func(*gomail.Message) error { return errors.New("dial tcp: refused") }
	err := s.SendBackup("me@example.com", "backup.json", nil, 0, 0)
	assert.ErrorContains(t, err, "发送邮件失败")
}

func TestBackupService_Email(t *testing.T) {
	ctx := context.Background()
	email, sent := newTestEmailService(true)
	backup := NewBackupService(seededStore(t), email, zerolog.Nop())

	assert.ErrorIs(t, backup.Email(ctx, "not-an-email"), ErrValidation)
	require.NoError(t, backup.Email(ctx, "me@example.com"))
	assert.Len(t, *sent, 1)
}
