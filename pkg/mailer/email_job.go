package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the job sent after a successful registration.
func WelcomeEmail(username, email string) EmailJob {
	return EmailJob{
		To:      email,
		Subject: "Welcome to Inkpost",
		Text:    fmt.Sprintf("Hi %s,\n\nYour Inkpost account is ready. Log in and publish your first post.\n", username),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your Inkpost account is ready. Log in and publish your first post.</p>",
			username),
	}
}
