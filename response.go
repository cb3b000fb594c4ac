package email

import "encoding/json"

// Response is what a provider returned for an accepted send. RequestID
// identifies the request on the provider's side; Data carries the rest of
// the payload untouched.
type Response struct {
	RequestID string `json:"request_id"`
	Data      Value  `json:"data"`
}

// DecodeData decodes Data into v, which must be a pointer.
func (r *Response) DecodeData(v any) error {
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return NewInvalidJSONError("unable to encode response data", err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return NewInvalidJSONError("unable to decode response data", err)
	}

	return nil
}
