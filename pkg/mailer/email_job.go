package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// A job carrying Template is rendered by the worker from Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "confirm_email", "reset_password", "two_factor"
	Data     map[string]any `json:"data,omitempty"`
}

// Message is a fully rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) Job() EmailJob {
	return EmailJob{To: m.To, Subject: m.Subject, Text: m.Text, HTML: m.HTML}
}
