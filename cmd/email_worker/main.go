package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/config"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/mailer"
	mailtpl "github.com/oksasatya/go-bootcamp-directory/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if cfg.MailTransport != "queue" {
		logger.Infof("MAIL_TRANSPORT=%s; email worker disabled", cfg.MailTransport)
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareMailQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.FromAddress())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for d := range msgs {
			handle(d, mg, logger)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle acks delivered mail. Malformed jobs go to the dead-letter queue;
// send failures are retried once before following them.
func handle(d amqp.Delivery, sender mailer.Sender, logger *logrus.Logger) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.WithError(err).Warn("bad message")
		_ = d.Nack(false, false)
		return
	}

	msg, err := render(job)
	if err != nil {
		logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		_ = d.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := sender.Send(ctx, msg); err != nil {
		logger.WithError(err).WithField("to", msg.To).Error("send failed")
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func render(job mailer.EmailJob) (mailer.Message, error) {
	msg := mailer.Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if job.Template == "" {
		return msg, nil
	}
	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return mailer.Message{}, err
	}
	msg.Subject, msg.Text, msg.HTML = subject, text, html
	return msg, nil
}
