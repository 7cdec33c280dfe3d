//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// errorEnvelope mirrors httperr.ErrorResponse.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if targetStruct == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "undecodable body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the client-facing message contains expectedErrorMsg.
// It returns the decoded detail for further checks.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) any {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var env errorEnvelope
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "undecodable error body: %s", w.Body.String()) {
		return nil
	}
	if expectedErrorMsg != "" {
		assert.Contains(t, env.Error.Message, expectedErrorMsg)
	}
	return env.Detail
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}
