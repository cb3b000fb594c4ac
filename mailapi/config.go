package mailapi

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

const (
	EnvAPIKey  = "SERVICE_API_KEY"
	EnvAPIRoot = "SERVICE_API_ROOT"

	DefaultAPIRoot = "https://api.smtp2go.com/v3"
	DefaultTimeout = 30 * time.Second
)

var apiKeyPattern = regexp.MustCompile(`^api-[A-Za-z0-9]{32}$`)

// Config holds the explicit client configuration. Empty fields fall back to
// the environment (when enabled) and then to defaults.
type Config struct {
	APIKey  string
	APIRoot string

	// Timeout bounds a whole request on the default HTTP client. Ignored
	// when WithHTTPClient is used. Default: 30s.
	Timeout time.Duration
}

// Credentials are the resolved values a Client authenticates with.
type Credentials struct {
	APIKey  string
	APIRoot string
}

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Resolve produces the credentials for cfg. env may be nil, in which case
// only cfg and the defaults are consulted. Surrounding whitespace is trimmed
// from explicit and environment values alike. Resolve has no side effects.
func Resolve(cfg Config, env LookupFunc) (Credentials, error) {
	root := firstNonEmpty(strings.TrimSpace(cfg.APIRoot), lookup(env, EnvAPIRoot), DefaultAPIRoot)
	key := firstNonEmpty(strings.TrimSpace(cfg.APIKey), lookup(env, EnvAPIKey))

	if key == "" {
		return Credentials{}, email.NewMissingAPIKeyError(
			fmt.Sprintf("unable to find an API key, set %s or pass one explicitly", EnvAPIKey))
	}

	if !apiKeyPattern.MatchString(key) {
		return Credentials{}, email.NewIncorrectAPIKeyFormatError(
			fmt.Sprintf("API key should match %s", apiKeyPattern))
	}

	return Credentials{
		APIKey:  key,
		APIRoot: strings.TrimRight(root, "/"),
	}, nil
}

func lookup(env LookupFunc, key string) string {
	if env == nil {
		return ""
	}
	v, _ := env(key)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
