package mailer

import (
	"context"

	"github.com/labstack/gommon/log"
)

// メール送信の代わりにログへ出す（開発用。本番は差し替える）
type LogMailer struct {
	logger *log.Logger
}

func NewLogMailer(logger *log.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to string, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.Infoj(log.JSON{
		"event": "password_reset_mail",
		"to":    to,
		"link":  link,
	})
	return nil
}
