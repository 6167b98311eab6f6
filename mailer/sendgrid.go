// Package mailer provides the SendGrid implementation of the reminder
// engine's mail transport.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid sends email through the SendGrid v3 API
type SendGrid struct {
	apiKey   string
	fromName string
	fromAddr string
}

// NewSendGrid creates a SendGrid mailer with a fixed sender identity
func NewSendGrid(apiKey, fromName, fromAddr string) *SendGrid {
	return &SendGrid{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

// Send delivers one email. A non-2xx API response is returned as an error so
// the caller can treat it as a delivery failure.
func (s *SendGrid) Send(toAddress, toName, subject, htmlBody, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(toName, toAddress)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
