package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

type messageOptions struct {
	from     string
	to       []string
	cc       []string
	bcc      []string
	replyTo  []string
	subject  string
	text     string
	textFile string
	html     string
	markdown string
}

func (o *messageOptions) builder() (*email.Builder, error) {
	text := o.text
	if o.textFile != "" {
		b, err := os.ReadFile(o.textFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read text body: %w", err)
		}
		text = string(b)
	}

	html := o.html
	if o.markdown != "" {
		src, err := os.ReadFile(o.markdown)
		if err != nil {
			return nil, fmt.Errorf("failed to read markdown body: %w", err)
		}
		html, err = renderMarkdown(src)
		if err != nil {
			return nil, fmt.Errorf("failed to render markdown body: %w", err)
		}
		// the markdown source is a readable plain-text alternative
		if text == "" {
			text = string(src)
		}
	}

	return email.NewBuilder().
		From(o.from).
		To(o.to...).
		CC(o.cc...).
		BCC(o.bcc...).
		ReplyTo(o.replyTo...).
		Subject(o.subject).
		TextBody(text).
		HTMLBody(html), nil
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	opts := &messageOptions{}
	var configFile string

	cmd := &cobra.Command{
		Use:           "sendmail",
		Short:         "Send one transactional email",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			return runSend(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.from, "from", "", "sender address")
	f.StringSliceVar(&opts.to, "to", nil, "recipient address (repeatable)")
	f.StringSliceVar(&opts.cc, "cc", nil, "carbon copy address (repeatable)")
	f.StringSliceVar(&opts.bcc, "bcc", nil, "blind carbon copy address (repeatable)")
	f.StringSliceVar(&opts.replyTo, "reply-to", nil, "reply-to address (repeatable)")
	f.StringVar(&opts.subject, "subject", "", "subject line")
	f.StringVar(&opts.text, "text", "", "plain text body")
	f.StringVar(&opts.textFile, "text-file", "", "read the plain text body from a file")
	f.StringVar(&opts.html, "html", "", "HTML body")
	f.StringVar(&opts.markdown, "markdown", "", "render a Markdown file as the HTML body")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsMutuallyExclusive("html", "markdown")

	f.StringVar(&configFile, "config", "", "optional YAML config file")
	f.String("provider", "api", "delivery provider: api, ses, gmail, resend or log")
	f.String("api-key", "", "API key (overrides SERVICE_API_KEY)")
	f.String("api-root", "", "API root URL (overrides SERVICE_API_ROOT)")
	f.Duration("timeout", 0, "request timeout")
	f.String("log-level", "info", "log level")
	f.String("log-format", "console", "log format: console or json")

	for key, flag := range map[string]string{
		"provider":   "provider",
		"api_key":    "api-key",
		"api_root":   "api-root",
		"timeout":    "timeout",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		// only fails for a nil flag
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

func runSend(cmd *cobra.Command, cfg *Config, opts *messageOptions) error {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	b, err := opts.builder()
	if err != nil {
		return err
	}

	sender, err := newSender(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up %s provider: %w", cfg.Provider, err)
	}

	resp, err := b.Send(cmd.Context(), sender)
	if err != nil {
		return err
	}

	logger.Info().
		Str("provider", cfg.Provider).
		Str("request_id", resp.RequestID).
		Msg("email accepted")

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
