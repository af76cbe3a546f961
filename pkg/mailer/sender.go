package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers a rendered message. Implementations return an error when
// the message could not be handed off.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Publisher is the subset of a queue publisher used by QueueSender.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender hands messages to the email worker over RabbitMQ.
type QueueSender struct {
	Publisher Publisher
}

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	return q.Publisher.PublishJSON(ctx, msg.Job())
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	Logger *logrus.Logger
}

func (l *LogSender) Send(_ context.Context, msg Message) error {
	l.Logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("mail delivery disabled; message not sent")
	l.Logger.Debug(msg.Text)
	return nil
}
