package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

var _ email.Sender = &GmailSender{}

const mimeBoundary = "email-sdk-alternative-boundary"

// messageSender is the single Gmail API call the sender needs.
type messageSender interface {
	send(ctx context.Context, userID string, message *gmail.Message) (*gmail.Message, error)
}

type serviceSender struct {
	service *gmail.Service
}

func (s serviceSender) send(ctx context.Context, userID string, message *gmail.Message) (*gmail.Message, error) {
	return s.service.Users.Messages.Send(userID, message).Context(ctx).Do()
}

type GmailSender struct {
	api    messageSender
	userID string
}

// NewGmailSender authenticates with a service account that has domain-wide
// delegation and sends as userEmail.
func NewGmailSender(ctx context.Context, credentialsJSON []byte, userEmail string) (*GmailSender, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account file: %w", err)
	}

	config.Subject = userEmail

	service, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Gmail client: %w", err)
	}

	return &GmailSender{
		api:    serviceSender{service: service},
		userID: "me",
	}, nil
}

// SendEmail delivers e through the Gmail API. The returned RequestID is the
// Gmail message id.
func (g *GmailSender) SendEmail(ctx context.Context, e email.Email) (*email.Response, error) {
	if err := email.Validate(e); err != nil {
		return nil, err
	}

	if err := validateAddresses(e); err != nil {
		return nil, err
	}

	sent, err := g.api.send(ctx, g.userID, &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(buildRawMessage(e)),
	})
	if err != nil {
		return nil, mapGmailError(err)
	}

	labels := make([]email.Value, len(sent.LabelIds))
	for i, l := range sent.LabelIds {
		labels[i] = email.StringValue(l)
	}

	return &email.Response{
		RequestID: sent.Id,
		Data: email.ObjectValue(map[string]email.Value{
			"id":        email.StringValue(sent.Id),
			"thread_id": email.StringValue(sent.ThreadId),
			"label_ids": email.ArrayValue(labels...),
		}),
	}, nil
}

var errLineBreak = errors.New("address contains a line break")

// validateAddresses checks every address that ends up in a message header.
func validateAddresses(e email.Email) error {
	fields := []struct {
		name      string
		addresses []string
	}{
		{"from", []string{e.FromAddress}},
		{"to", e.ToAddresses},
		{"cc", e.CCAddresses},
		{"bcc", e.BCCAddresses},
		{"reply_to", e.ReplyToAddresses},
	}

	for _, f := range fields {
		for _, addr := range f.addresses {
			if strings.ContainsAny(addr, "\r\n") {
				return email.NewInvalidAddressError(f.name, errLineBreak)
			}
			if _, err := mail.ParseAddress(addr); err != nil {
				return email.NewInvalidAddressError(f.name, err)
			}
		}
	}

	return nil
}

// buildRawMessage renders e as an RFC 5322 message. A text-only email is a
// single text/plain part; adding HTML makes it multipart/alternative.
func buildRawMessage(e email.Email) []byte {
	headers := []string{
		"From: " + e.FromAddress,
		"To: " + strings.Join(e.ToAddresses, ", "),
	}

	if len(e.CCAddresses) > 0 {
		headers = append(headers, "Cc: "+strings.Join(e.CCAddresses, ", "))
	}

	if len(e.BCCAddresses) > 0 {
		headers = append(headers, "Bcc: "+strings.Join(e.BCCAddresses, ", "))
	}

	if len(e.ReplyToAddresses) > 0 {
		headers = append(headers, "Reply-To: "+strings.Join(e.ReplyToAddresses, ", "))
	}

	headers = append(headers,
		"Subject: "+mime.QEncoding.Encode("utf-8", e.Subject),
		"MIME-Version: 1.0",
	)

	var body string
	if e.HTMLBody == "" {
		headers = append(headers,
			"Content-Type: text/plain; charset=utf-8",
			"Content-Transfer-Encoding: 8bit",
		)
		body = e.TextBody
	} else {
		headers = append(headers, fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s", mimeBoundary))
		body = strings.Join([]string{
			"--" + mimeBoundary,
			"Content-Type: text/plain; charset=utf-8",
			"Content-Transfer-Encoding: 8bit",
			"",
			e.TextBody,
			"--" + mimeBoundary,
			"Content-Type: text/html; charset=utf-8",
			"Content-Transfer-Encoding: 8bit",
			"",
			e.HTMLBody,
			"--" + mimeBoundary + "--",
		}, "\r\n")
	}

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

// mapGmailError turns a *googleapi.Error into ENDPOINT_ERROR, keeping the
// HTTP status and the first error reason. Anything else never got an answer
// from Gmail and is a REQUEST_ERROR.
func mapGmailError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return email.NewRequestError("failed to reach the Gmail API", err)
	}

	var message string
	switch {
	case apiErr.Code == 400:
		message = "Gmail rejected the message"
	case apiErr.Code == 401:
		message = "authentication failed, check service account credentials"
	case apiErr.Code == 403:
		message = "permission denied"
	case apiErr.Code == 429:
		message = "Gmail API rate limit exceeded"
	case apiErr.Code >= 500:
		message = "Gmail service error"
	default:
		message = fmt.Sprintf("Gmail API error (HTTP %d)", apiErr.Code)
	}
	if apiErr.Message != "" {
		message += ": " + apiErr.Message
	}

	e := email.NewEndpointError(message, err)
	e.StatusCode = apiErr.Code
	if len(apiErr.Errors) > 0 {
		e.Code = apiErr.Errors[0].Reason
	}

	return e
}
