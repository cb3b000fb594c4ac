// Package logsender provides an email.Sender that writes messages to a
// logger instead of delivering them. Useful for development and testing.
package logsender

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

var _ email.Sender = &Sender{}

type Sender struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Sender {
	return &Sender{logger: logger.With().Str("component", "logsender").Logger()}
}

// SendEmail logs e and reports it as accepted under a fresh request id. The
// data payload has the same shape as a real email/send reply.
func (s *Sender) SendEmail(ctx context.Context, e email.Email) (*email.Response, error) {
	if err := email.Validate(e); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()

	s.logger.Info().
		Str("request_id", requestID).
		Str("from", e.FromAddress).
		Strs("to", e.ToAddresses).
		Strs("cc", e.CCAddresses).
		Strs("bcc", e.BCCAddresses).
		Strs("reply_to", e.ReplyToAddresses).
		Str("subject", e.Subject).
		Str("text_body", e.TextBody).
		Bool("has_html", e.HTMLBody != "").
		Msg("email not delivered (log sender)")

	return &email.Response{
		RequestID: requestID,
		Data: email.ObjectValue(map[string]email.Value{
			"succeeded": email.NumberValue("1"),
			"failed":    email.NumberValue("0"),
			"failures":  email.ArrayValue(),
			"email_id":  email.StringValue(requestID),
		}),
	}, nil
}
