package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

// decodeMessage returns the "message" field of a JSON error body.
func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return body.Message
}
