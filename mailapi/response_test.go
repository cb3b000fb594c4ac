package mailapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	email "github.com/International-Combat-Archery-Alliance/email-sdk"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		reason  email.ErrorReason
		wantID  string
		wantErr bool
	}{
		{name: "success", status: http.StatusOK, body: `{"request_id":"r1","data":{}}`, wantID: "r1"},
		{name: "created is success", status: http.StatusCreated, body: `{"request_id":"r1","data":[1,2]}`, wantID: "r1"},
		{name: "missing data is null", status: http.StatusOK, body: `{"request_id":"r1"}`, wantID: "r1"},
		{name: "not json", status: http.StatusOK, body: `not json`, reason: email.REASON_INVALID_JSON, wantErr: true},
		{name: "empty body", status: http.StatusOK, body: ``, reason: email.REASON_INVALID_JSON, wantErr: true},
		{name: "array body", status: http.StatusOK, body: `[]`, reason: email.REASON_INVALID_JSON, wantErr: true},
		{name: "missing request id", status: http.StatusOK, body: `{"data":{}}`, reason: email.REASON_INVALID_JSON, wantErr: true},
		{name: "request id wrong type", status: http.StatusOK, body: `{"request_id":7,"data":{}}`, reason: email.REASON_INVALID_JSON, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"request_id":"r1","data":{}}`, reason: email.REASON_ENDPOINT_ERROR, wantErr: true},
		{name: "redirect is not success", status: http.StatusFound, body: ``, reason: email.REASON_ENDPOINT_ERROR, wantErr: true},
		{name: "error data not an object", status: http.StatusBadRequest, body: `{"request_id":"r1","data":"nope"}`, reason: email.REASON_ENDPOINT_ERROR, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := decodeResponse(tt.status, []byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, resp)
				assert.True(t, email.HasReason(err, tt.reason), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, resp.RequestID)
		})
	}
}

func TestDecodeResponse_ErrorFieldsIndependent(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMsg  string
		wantCode string
	}{
		{
			name:    "numeric error code keeps message",
			body:    `{"request_id":"r1","data":{"error":"Sender not verified","error_code":42}}`,
			wantMsg: "Sender not verified",
		},
		{
			name:     "non string message keeps code",
			body:     `{"request_id":"r1","data":{"error":{"detail":"x"},"error_code":"E_BAD"}}`,
			wantMsg:  "API returned HTTP 400 Bad Request",
			wantCode: "E_BAD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeResponse(http.StatusBadRequest, []byte(tt.body))

			var emailErr *email.Error
			require.ErrorAs(t, err, &emailErr)
			assert.Equal(t, email.REASON_ENDPOINT_ERROR, emailErr.Reason)
			assert.Equal(t, tt.wantMsg, emailErr.Message)
			assert.Equal(t, tt.wantCode, emailErr.Code)
			assert.Equal(t, "r1", emailErr.RequestID)
		})
	}
}

func TestParseSendResult_WrongShape(t *testing.T) {
	resp := &email.Response{RequestID: "r1", Data: email.StringValue("unexpected")}

	_, err := ParseSendResult(resp)
	assert.True(t, email.HasReason(err, email.REASON_INVALID_JSON))
}
