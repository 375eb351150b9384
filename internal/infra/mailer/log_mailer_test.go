package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailer_WritesLink(t *testing.T) {
	var buf bytes.Buffer
	l := log.New("mail")
	l.SetOutput(&buf)
	l.SetLevel(log.INFO)

	err := NewLogMailer(l).SendPasswordReset(context.Background(), "a@example.com", "http://fe/reset?token=x")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "a@example.com")
	assert.Contains(t, buf.String(), "http://fe/reset?token=x")
}

func TestLogMailer_CanceledContext(t *testing.T) {
	l := log.New("mail")
	l.SetOutput(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewLogMailer(l).SendPasswordReset(ctx, "a@example.com", "x"), context.Canceled)
}
