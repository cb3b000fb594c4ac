package mailapi

import (
	"context"
	"strings"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

const sendEmailEndpoint = "email/send"

type customHeader struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// sendEmailRequest is the wire body of email/send. Optional fields are
// omitted when empty. The API key travels in a header, never here.
type sendEmailRequest struct {
	Sender        string         `json:"sender"`
	To            []string       `json:"to"`
	CC            []string       `json:"cc,omitempty"`
	BCC           []string       `json:"bcc,omitempty"`
	Subject       string         `json:"subject"`
	TextBody      string         `json:"text_body"`
	HTMLBody      string         `json:"html_body,omitempty"`
	CustomHeaders []customHeader `json:"custom_headers,omitempty"`
}

func newSendEmailRequest(e email.Email) sendEmailRequest {
	req := sendEmailRequest{
		Sender:   e.FromAddress,
		To:       e.ToAddresses,
		CC:       e.CCAddresses,
		BCC:      e.BCCAddresses,
		Subject:  e.Subject,
		TextBody: e.TextBody,
		HTMLBody: e.HTMLBody,
	}

	if len(e.ReplyToAddresses) > 0 {
		req.CustomHeaders = append(req.CustomHeaders, customHeader{
			Header: "Reply-To",
			Value:  strings.Join(e.ReplyToAddresses, ", "),
		})
	}

	return req
}

// SendEmail implements email.Sender. Validation runs before any I/O.
func (c *Client) SendEmail(ctx context.Context, e email.Email) (*email.Response, error) {
	if err := email.Validate(e); err != nil {
		return nil, err
	}

	return c.Do(ctx, sendEmailEndpoint, newSendEmailRequest(e))
}
