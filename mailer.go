package hostauth

import "context"

// MailerFunc adapts a function into a Mailer.
type MailerFunc func(ctx context.Context, to, subject, body string) error

// Send satisfies the Mailer interface.
func (f MailerFunc) Send(ctx context.Context, to, subject, body string) error {
	if f == nil {
		return nil
	}
	return f(ctx, to, subject, body)
}

// NoopMailer discards all mail. Useful in tests and local development.
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, to, subject, body string) error {
	return nil
}

// LogMailer prints outgoing mail through the logger instead of delivering
// it. Bodies carry reset keys, so this is for development only.
type LogMailer struct {
	Logger Logger
}

func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := m.Logger
	if logger == nil {
		logger = defLogger{}
	}

	logger.Info("====== SENDING EMAIL NOTIFICATION =======")
	logger.Info("to: %s", to)
	logger.Info("subject: %s", subject)
	logger.Info("%s", body)

	return nil
}
