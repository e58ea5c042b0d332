// Package notify sends report lifecycle notifications by email.
package notify

import (
	"fmt"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/hostelops/reportgen/internal/job"
)

// Notifier emails the requester when a job reaches a terminal state.
// A zero Notifier (no API key) disables sending.
type Notifier struct {
	apiKey      string
	fromName    string
	fromAddress string
}

func NewNotifier(apiKey, fromName, fromAddress string) *Notifier {
	return &Notifier{apiKey: apiKey, fromName: fromName, fromAddress: fromAddress}
}

// Enabled reports whether the notifier is configured to send.
func (n *Notifier) Enabled() bool {
	return n != nil && n.apiKey != ""
}

// NotifyCompleted emails a report-ready message.
func (n *Notifier) NotifyCompleted(j *job.Job) error {
	subject := fmt.Sprintf("Report ready: %s", j.Code)
	body := fmt.Sprintf(
		"Your %s report (%s) is ready.\nFile: %s\nJob ID: %s\n",
		j.Section, j.Format, filepath.Base(j.FilePath), j.ID,
	)
	return n.send(j.NotifyEmail, subject, body)
}

// NotifyFailed emails a generation-failed message.
func (n *Notifier) NotifyFailed(j *job.Job) error {
	subject := fmt.Sprintf("Report failed: %s", j.Code)
	body := fmt.Sprintf(
		"Your %s report (%s) could not be generated.\nReason: %s\nJob ID: %s\nResubmit the request to try again.\n",
		j.Section, j.Format, j.ErrorMessage, j.ID,
	)
	return n.send(j.NotifyEmail, subject, body)
}

func (n *Notifier) send(to, subject, body string) error {
	if !n.Enabled() || to == "" {
		return nil
	}

	from := mail.NewEmail(n.fromName, n.fromAddress)
	toEmail := mail.NewEmail("", to)
	email := mail.NewSingleEmail(from, subject, toEmail, body, body)

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(email)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}

	return nil
}
