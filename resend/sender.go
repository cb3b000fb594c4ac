// Package resend delivers email through the Resend API.
package resend

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

var _ email.Sender = &Sender{}

// EmailsAPI is the part of the Resend client the sender uses.
type EmailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements email.Sender using the Resend API.
type Sender struct {
	emails EmailsAPI
}

// New creates a Sender authenticated with apiKey.
func New(apiKey string) *Sender {
	return NewWithAPI(resend.NewClient(apiKey).Emails)
}

// NewWithAPI creates a Sender on top of an existing Resend emails service.
func NewWithAPI(emails EmailsAPI) *Sender {
	return &Sender{emails: emails}
}

// SendEmail implements email.Sender. The returned RequestID is the Resend
// email id.
func (s *Sender) SendEmail(ctx context.Context, e email.Email) (*email.Response, error) {
	if err := email.Validate(e); err != nil {
		return nil, err
	}

	req := &resend.SendEmailRequest{
		From:    e.FromAddress,
		To:      e.ToAddresses,
		Cc:      e.CCAddresses,
		Bcc:     e.BCCAddresses,
		ReplyTo: strings.Join(e.ReplyToAddresses, ", "),
		Subject: e.Subject,
		Text:    e.TextBody,
		Html:    e.HTMLBody,
	}

	sent, err := s.emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, mapResendError(err)
	}

	return &email.Response{
		RequestID: sent.Id,
		Data: email.ObjectValue(map[string]email.Value{
			"id": email.StringValue(sent.Id),
		}),
	}, nil
}

// mapResendError separates transport failures, which surface as *url.Error
// from net/http, from errors Resend answered with.
func mapResendError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return email.NewRequestError("failed to reach the Resend API", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return email.NewRequestError("request to the Resend API was interrupted", err)
	}

	return email.NewEndpointError("resend: failed to send email", err)
}
