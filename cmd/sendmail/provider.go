package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/rs/zerolog"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
	"github.com/International-Combat-Archery-Alliance/email-sdk/awsses"
	"github.com/International-Combat-Archery-Alliance/email-sdk/gmail"
	"github.com/International-Combat-Archery-Alliance/email-sdk/logsender"
	"github.com/International-Combat-Archery-Alliance/email-sdk/mailapi"
	"github.com/International-Combat-Archery-Alliance/email-sdk/resend"
)

const (
	providerAPI    = "api"
	providerSES    = "ses"
	providerGmail  = "gmail"
	providerResend = "resend"
	providerLog    = "log"
)

func newSender(ctx context.Context, cfg *Config, logger zerolog.Logger) (email.Sender, error) {
	switch cfg.Provider {
	case providerAPI, "":
		client, err := mailapi.NewClient(mailapi.Config{
			APIKey:  cfg.APIKey,
			APIRoot: cfg.APIRoot,
			Timeout: cfg.Timeout,
		}, mailapi.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return client, nil

	case providerSES:
		if cfg.SES.Region == "" {
			return nil, errors.New("ses.region is required for the ses provider")
		}
		if cfg.SES.AccessKeyID == "" || cfg.SES.SecretAccessKey == "" {
			return nil, errors.New("ses.access_key_id and ses.secret_access_key are required for the ses provider")
		}
		client := sesv2.New(sesv2.Options{
			Region: cfg.SES.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.SES.AccessKeyID,
				cfg.SES.SecretAccessKey,
				cfg.SES.SessionToken,
			),
		})
		return awsses.NewAWSSESSender(client), nil

	case providerGmail:
		if cfg.Gmail.CredentialsFile == "" || cfg.Gmail.User == "" {
			return nil, errors.New("gmail.credentials_file and gmail.user are required for the gmail provider")
		}
		credentialsJSON, err := os.ReadFile(cfg.Gmail.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read gmail credentials: %w", err)
		}
		sender, err := gmail.NewGmailSender(ctx, credentialsJSON, cfg.Gmail.User)
		if err != nil {
			return nil, err
		}
		return sender, nil

	case providerResend:
		if cfg.Resend.APIKey == "" {
			return nil, errors.New("resend.api_key is required for the resend provider")
		}
		return resend.New(cfg.Resend.APIKey), nil

	case providerLog:
		return logsender.New(logger), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
