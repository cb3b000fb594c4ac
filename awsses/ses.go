package awsses

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

var _ email.Sender = &AWSSESSender{}

type SESClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type AWSSESSender struct {
	sesClient SESClient
}

func NewAWSSESSender(client SESClient) *AWSSESSender {
	return &AWSSESSender{
		sesClient: client,
	}
}

// SendEmail delivers e through SES. The returned RequestID is the SES
// message id.
func (a *AWSSESSender) SendEmail(ctx context.Context, e email.Email) (*email.Response, error) {
	if err := email.Validate(e); err != nil {
		return nil, err
	}

	out, err := a.sesClient.SendEmail(ctx, newSendEmailInput(e))
	if err != nil {
		return nil, categorizeAWSError(err)
	}

	messageID := aws.ToString(out.MessageId)
	return &email.Response{
		RequestID: messageID,
		Data: email.ObjectValue(map[string]email.Value{
			"message_id": email.StringValue(messageID),
		}),
	}, nil
}

func newSendEmailInput(e email.Email) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		Content: &types.EmailContent{
			Simple: &types.Message{
				Body: &types.Body{
					Html: htmlContentFromEmail(e),
					Text: utf8Content(e.TextBody),
				},
				Subject: utf8Content(e.Subject),
			},
		},
		Destination: &types.Destination{
			ToAddresses:  e.ToAddresses,
			CcAddresses:  e.CCAddresses,
			BccAddresses: e.BCCAddresses,
		},
		FromEmailAddress: aws.String(e.FromAddress),
		ReplyToAddresses: e.ReplyToAddresses,
	}
}

func htmlContentFromEmail(e email.Email) *types.Content {
	if e.HTMLBody == "" {
		return nil
	}

	return utf8Content(e.HTMLBody)
}

func utf8Content(s string) *types.Content {
	return &types.Content{
		Data:    aws.String(s),
		Charset: aws.String("UTF-8"),
	}
}

var errorMessages = map[string]string{
	"TooManyRequestsException":           "sending rate limit exceeded",
	"LimitExceededException":             "sending quota exceeded",
	"MessageRejected":                    "message rejected by SES",
	"MailFromDomainNotVerifiedException": "sender domain not verified",
	"AccountSuspendedException":          "SES account suspended",
	"SendingPausedException":             "sending paused for this account",
	"BadRequestException":                "invalid email parameter",
	"NotFoundException":                  "SES resource not found",
}

// categorizeAWSError maps errors the service reported to ENDPOINT_ERROR and
// everything else (DNS, TLS, timeouts, cancellation) to REQUEST_ERROR.
func categorizeAWSError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return email.NewRequestError("failed to reach AWS SES", err)
	}

	message, ok := errorMessages[apiErr.ErrorCode()]
	if !ok {
		message = fmt.Sprintf("AWS SES error: %s", apiErr.ErrorMessage())
	}

	e := email.NewEndpointError(message, err)
	e.Code = apiErr.ErrorCode()

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		e.StatusCode = respErr.HTTPStatusCode()
	}

	return e
}
