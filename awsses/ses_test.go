package awsses

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

// Mock SES client for testing
type mockSESClient struct {
	calls         int
	sendEmailFunc func(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

func (m *mockSESClient) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.calls++
	if m.sendEmailFunc != nil {
		return m.sendEmailFunc(ctx, params, optFns...)
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("mock-message-id")}, nil
}

func TestSendEmail_Success(t *testing.T) {
	tests := []struct {
		name  string
		email email.Email
	}{
		{
			name: "valid email with HTML and text body",
			email: email.Email{
				FromAddress: "sender@example.com",
				ToAddresses: []string{"recipient@example.com"},
				Subject:     "Test Subject",
				HTMLBody:    "<h1>Hello World</h1>",
				TextBody:    "Hello World",
			},
		},
		{
			name: "valid email with only text body",
			email: email.Email{
				FromAddress: "sender@example.com",
				ToAddresses: []string{"recipient@example.com"},
				Subject:     "Test Subject",
				TextBody:    "Hello World",
			},
		},
		{
			name: "valid email with CC and BCC",
			email: email.Email{
				FromAddress:  "sender@example.com",
				ToAddresses:  []string{"recipient@example.com"},
				CCAddresses:  []string{"cc@example.com"},
				BCCAddresses: []string{"bcc@example.com"},
				Subject:      "Test Subject",
				TextBody:     "Hello World",
			},
		},
		{
			name: "valid email with reply-to addresses",
			email: email.Email{
				FromAddress:      "sender@example.com",
				ToAddresses:      []string{"recipient@example.com", "second@example.com"},
				ReplyToAddresses: []string{"replyto@example.com"},
				Subject:          "Test Subject",
				TextBody:         "Hello World",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockSESClient{
				sendEmailFunc: func(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
					if params.FromEmailAddress == nil || *params.FromEmailAddress != tt.email.FromAddress {
						t.Errorf("expected FromEmailAddress %s, got %v", tt.email.FromAddress, params.FromEmailAddress)
					}
					if len(params.Destination.ToAddresses) != len(tt.email.ToAddresses) {
						t.Errorf("expected %d ToAddresses, got %d", len(tt.email.ToAddresses), len(params.Destination.ToAddresses))
					}
					if len(params.Destination.CcAddresses) != len(tt.email.CCAddresses) {
						t.Errorf("expected %d CcAddresses, got %d", len(tt.email.CCAddresses), len(params.Destination.CcAddresses))
					}
					if len(params.ReplyToAddresses) != len(tt.email.ReplyToAddresses) {
						t.Errorf("expected %d ReplyToAddresses, got %d", len(tt.email.ReplyToAddresses), len(params.ReplyToAddresses))
					}
					if params.Content.Simple.Subject.Data == nil || *params.Content.Simple.Subject.Data != tt.email.Subject {
						t.Errorf("expected Subject %s, got %v", tt.email.Subject, params.Content.Simple.Subject.Data)
					}
					if *params.Content.Simple.Body.Text.Data != tt.email.TextBody {
						t.Errorf("expected Text %s, got %s", tt.email.TextBody, *params.Content.Simple.Body.Text.Data)
					}

					html := params.Content.Simple.Body.Html
					if tt.email.HTMLBody == "" && html != nil {
						t.Errorf("expected no Html part, got %v", html)
					}
					if tt.email.HTMLBody != "" && (html == nil || *html.Data != tt.email.HTMLBody) {
						t.Errorf("expected Html %s, got %v", tt.email.HTMLBody, html)
					}

					return &sesv2.SendEmailOutput{MessageId: aws.String("0100018c-ses-id")}, nil
				},
			}

			sender := NewAWSSESSender(client)
			resp, err := sender.SendEmail(context.Background(), tt.email)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.RequestID != "0100018c-ses-id" {
				t.Errorf("expected RequestID %s, got %s", "0100018c-ses-id", resp.RequestID)
			}
			if id, _ := resp.Data.Get("message_id"); id.String() != `"0100018c-ses-id"` {
				t.Errorf("expected message_id in data, got %s", resp.Data)
			}
		})
	}
}

func TestSendEmail_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		email         email.Email
		expectedField string
	}{
		{
			name: "missing from address",
			email: email.Email{
				ToAddresses: []string{"recipient@example.com"},
				Subject:     "Test",
				TextBody:    "Hello",
			},
			expectedField: "from",
		},
		{
			name: "no recipients",
			email: email.Email{
				FromAddress: "sender@example.com",
				Subject:     "Test",
				TextBody:    "Hello",
			},
			expectedField: "to",
		},
		{
			name: "bcc only",
			email: email.Email{
				FromAddress:  "sender@example.com",
				BCCAddresses: []string{"bcc@example.com"},
				Subject:      "Test",
				TextBody:     "Hello",
			},
			expectedField: "to",
		},
		{
			name: "missing subject",
			email: email.Email{
				FromAddress: "sender@example.com",
				ToAddresses: []string{"recipient@example.com"},
				TextBody:    "Hello",
			},
			expectedField: "subject",
		},
		{
			name: "html body without text body",
			email: email.Email{
				FromAddress: "sender@example.com",
				ToAddresses: []string{"recipient@example.com"},
				Subject:     "Test",
				HTMLBody:    "<p>Hello</p>",
			},
			expectedField: "text_body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockSESClient{}
			sender := NewAWSSESSender(client)

			_, err := sender.SendEmail(context.Background(), tt.email)

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var emailErr *email.Error
			if !errors.As(err, &emailErr) {
				t.Fatalf("expected email.Error, got %T", err)
			}

			if emailErr.Reason != email.REASON_MISSING_REQUIRED_FIELD {
				t.Errorf("expected error reason %s, got %s", email.REASON_MISSING_REQUIRED_FIELD, emailErr.Reason)
			}
			if emailErr.Field != tt.expectedField {
				t.Errorf("expected field %s, got %s", tt.expectedField, emailErr.Field)
			}
			if client.calls != 0 {
				t.Errorf("expected SES not to be called, got %d calls", client.calls)
			}
		})
	}
}

func TestSendEmail_AWSErrors(t *testing.T) {
	tests := []struct {
		name           string
		awsError       error
		expectedReason email.ErrorReason
		expectedCode   string
		expectedStatus int
	}{
		{
			name: "rate limited error",
			awsError: &smithy.GenericAPIError{
				Code:    "TooManyRequestsException",
				Message: "Rate limit exceeded",
			},
			expectedReason: email.REASON_ENDPOINT_ERROR,
			expectedCode:   "TooManyRequestsException",
		},
		{
			name: "message rejected error",
			awsError: &smithy.GenericAPIError{
				Code:    "MessageRejected",
				Message: "Message rejected",
			},
			expectedReason: email.REASON_ENDPOINT_ERROR,
			expectedCode:   "MessageRejected",
		},
		{
			name: "unverified domain error",
			awsError: &smithy.GenericAPIError{
				Code:    "MailFromDomainNotVerifiedException",
				Message: "Domain not verified",
			},
			expectedReason: email.REASON_ENDPOINT_ERROR,
			expectedCode:   "MailFromDomainNotVerifiedException",
		},
		{
			name: "unknown aws error",
			awsError: &smithy.GenericAPIError{
				Code:    "UnknownException",
				Message: "Unknown error",
			},
			expectedReason: email.REASON_ENDPOINT_ERROR,
			expectedCode:   "UnknownException",
		},
		{
			name: "api error carried by an http response",
			awsError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusTooManyRequests}},
				Err: &smithy.GenericAPIError{
					Code:    "TooManyRequestsException",
					Message: "Rate limit exceeded",
				},
			},
			expectedReason: email.REASON_ENDPOINT_ERROR,
			expectedCode:   "TooManyRequestsException",
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "non-aws error",
			awsError:       errors.New("dial tcp: lookup email.us-east-1.amazonaws.com: no such host"),
			expectedReason: email.REASON_REQUEST_ERROR,
		},
		{
			name:           "context deadline",
			awsError:       context.DeadlineExceeded,
			expectedReason: email.REASON_REQUEST_ERROR,
		},
	}

	validEmail := email.Email{
		FromAddress: "sender@example.com",
		ToAddresses: []string{"recipient@example.com"},
		Subject:     "Test Subject",
		TextBody:    "Hello World",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockSESClient{
				sendEmailFunc: func(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
					return nil, tt.awsError
				},
			}

			sender := NewAWSSESSender(client)
			_, err := sender.SendEmail(context.Background(), validEmail)

			if err == nil {
				t.Fatal("expected AWS error, got nil")
			}

			var emailErr *email.Error
			if !errors.As(err, &emailErr) {
				t.Fatalf("expected email.Error, got %T", err)
			}

			if emailErr.Reason != tt.expectedReason {
				t.Errorf("expected error reason %s, got %s", tt.expectedReason, emailErr.Reason)
			}
			if emailErr.Code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, emailErr.Code)
			}
			if emailErr.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, emailErr.StatusCode)
			}
			if !errors.Is(err, tt.awsError) {
				t.Errorf("expected the AWS error to be wrapped")
			}
		})
	}
}
