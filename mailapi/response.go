package mailapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

func decodeResponse(statusCode int, body []byte) (*email.Response, error) {
	var resp email.Response
	parseErr := json.Unmarshal(body, &resp)

	if statusCode < 200 || statusCode > 299 {
		return nil, endpointError(statusCode, &resp, parseErr)
	}

	if parseErr != nil {
		return nil, email.NewInvalidJSONError("unable to parse response JSON", parseErr)
	}
	if resp.RequestID == "" {
		return nil, email.NewInvalidJSONError("unable to parse response JSON: missing request_id", nil)
	}

	return &resp, nil
}

func endpointError(statusCode int, resp *email.Response, parseErr error) *email.Error {
	message := fmt.Sprintf("API returned HTTP %d %s", statusCode, http.StatusText(statusCode))

	if parseErr != nil {
		err := email.NewEndpointError(message, parseErr)
		err.StatusCode = statusCode
		return err
	}

	// fields are optional and independent; a wrong type drops only that field
	if msg, ok := stringField(resp.Data, "error"); ok && msg != "" {
		message = msg
	}
	code, _ := stringField(resp.Data, "error_code")

	err := email.NewEndpointError(message, nil)
	err.StatusCode = statusCode
	err.Code = code
	err.RequestID = resp.RequestID
	return err
}

func stringField(data email.Value, key string) (string, bool) {
	f, ok := data.Get(key)
	if !ok {
		return "", false
	}
	return f.AsString()
}

// SendResult is the data payload of a successful email/send call.
type SendResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Failures  []string `json:"failures"`
	EmailID   string   `json:"email_id"`
}

// ParseSendResult decodes the data of an email/send response.
func ParseSendResult(resp *email.Response) (*SendResult, error) {
	var result SendResult
	if err := resp.DecodeData(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
