package tourapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResultCode(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		msg       string
		wantClass ErrorClass
		retryable bool
	}{
		{"service key not registered", "30", "SERVICE_KEY_IS_NOT_REGISTERED_ERROR", ClassAuth, false},
		{"zero padded auth code", "0030", "SERVICE_KEY_IS_NOT_REGISTERED_ERROR", ClassAuth, false},
		{"access denied", "20", "SERVICE ACCESS DENIED", ClassAuth, false},
		{"quota exceeded", "22", "LIMITED NUMBER OF SERVICE REQUESTS EXCEEDS", ClassServer, true},
		{"application error", "1", "APPLICATION ERROR", ClassServer, true},
		{"no data", "3", "NODATA_ERROR", ClassNoData, false},
		{"unknown code falls back to message auth", "77", "invalid SERVICE KEY", ClassAuth, false},
		{"unknown code falls back to message server", "77", "request TIMEOUT", ClassServer, true},
		{"unknown code and message", "77", "something odd", ClassGeneric, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyResultCode(tt.code, tt.msg)
			assert.Equal(t, tt.wantClass, err.Class)
			assert.Equal(t, tt.retryable, err.Retryable())
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestAPIErrorHelpers(t *testing.T) {
	authErr := &APIError{Code: "30", Message: "key rejected", Class: ClassAuth}
	assert.True(t, authErr.IsAuthError())
	assert.False(t, authErr.Retryable())
	assert.Contains(t, authErr.Error(), "30")
	assert.Contains(t, authErr.Error(), "auth")

	noData := &APIError{Code: "03", Message: "no rows", Class: ClassNoData}
	assert.True(t, noData.IsNoData())
	assert.False(t, noData.Retryable())

	transport := &APIError{Message: "connection refused", Class: ClassTransport}
	assert.True(t, transport.Retryable())
	assert.True(t, transport.IsTransient())
	assert.False(t, authErr.IsTransient())
	assert.Contains(t, transport.Error(), "transport")
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&APIError{Class: ClassMalformed}))
	assert.True(t, retryable(&APIError{Class: ClassGeneric}))
	assert.False(t, retryable(&APIError{Class: ClassAuth}))
	assert.False(t, retryable(assert.AnError))
}
