package email

import "context"

type Email struct {
	FromAddress      string
	ToAddresses      []string
	CCAddresses      []string
	BCCAddresses     []string
	ReplyToAddresses []string
	Subject          string
	HTMLBody         string
	// The email body for recipients with non-HTML email clients. Required.
	TextBody string
}

// Sender delivers a single email and reports what the provider returned.
// Implementations must call Validate before doing any I/O.
type Sender interface {
	SendEmail(ctx context.Context, e Email) (*Response, error)
}

// Validate checks the required fields in a fixed order and returns a
// REASON_MISSING_REQUIRED_FIELD error for the first one that is empty.
func Validate(e Email) error {
	if e.FromAddress == "" {
		return NewMissingRequiredFieldError("from")
	}

	if len(e.ToAddresses) == 0 {
		return NewMissingRequiredFieldError("to")
	}

	if e.Subject == "" {
		return NewMissingRequiredFieldError("subject")
	}

	if e.TextBody == "" {
		return NewMissingRequiredFieldError("text_body")
	}

	return nil
}
