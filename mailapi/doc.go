// Package mailapi is a client for the transactional email HTTP API.
//
// A Client is built from an explicit Config. The API key and root are
// resolved once, when the client is constructed:
//
//   - Config.APIKey / Config.APIRoot when set
//   - otherwise the SERVICE_API_KEY / SERVICE_API_ROOT variables, but only
//     when the caller opts in with WithEnvironment
//   - otherwise DefaultAPIRoot for the root; a missing key is an error
//
// Reading the environment is left to the caller so that the library never
// depends on process state implicitly:
//
//	client, err := mailapi.NewClient(mailapi.Config{}, mailapi.WithEnvironment(os.LookupEnv))
//	if err != nil {
//		return err
//	}
//
//	resp, err := email.NewBuilder().
//		From("Matt <matt@example.com>").
//		To("Dave <dave@example.com>").
//		Subject("Trying it out").
//		TextBody("Test message").
//		Send(ctx, client)
//
// Every call performs exactly one HTTP request. Nothing is retried and no
// output is produced unless a logger is supplied with WithLogger.
//
// Failures are *email.Error values; branch on Reason:
//
//   - REASON_MISSING_API_KEY, REASON_INCORRECT_API_KEY_FORMAT from NewClient
//   - REASON_MISSING_REQUIRED_FIELD before any network traffic
//   - REASON_INVALID_JSON when the request or a 2xx response cannot be (de)serialised
//   - REASON_REQUEST_ERROR for connection, TLS, DNS and timeout failures
//   - REASON_ENDPOINT_ERROR for any non-2xx response
//
// Client.Do is the low-level entry point for endpoints the package does not
// wrap.
package mailapi
