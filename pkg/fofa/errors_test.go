package fofa_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *fofa.Error
		expected string
	}{
		{
			name:     "configuration",
			err:      fofa.NewConfigurationError("credentials not configured"),
			expected: "credentials not configured",
		},
		{
			name:     "transport with cause",
			err:      fofa.NewTransportError("request failed", errors.New("connection refused")),
			expected: "request failed: connection refused",
		},
		{
			name:     "protocol carries status and body",
			err:      fofa.NewProtocolError(502, "<html>Bad Gateway</html>", errors.New("invalid character")),
			expected: "HTTP 502: <html>Bad Gateway</html>",
		},
		{
			name:     "protocol without body",
			err:      fofa.NewProtocolError(200, "", errors.New("unexpected end of JSON input")),
			expected: "malformed response body",
		},
		{
			name:     "application",
			err:      fofa.NewApplicationError(200, "bad query"),
			expected: "bad query",
		},
		{
			name:     "application without message",
			err:      fofa.NewApplicationError(200, ""),
			expected: "unknown error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorKind_Helpers(t *testing.T) {
	t.Parallel()

	configErr := fofa.NewConfigurationError("missing")
	transportErr := fofa.NewTransportError("failed", errors.New("boom"))
	protocolErr := fofa.NewProtocolError(500, "oops", nil)
	appErr := fofa.NewApplicationError(401, "invalid key")

	assert.True(t, fofa.IsConfigurationError(configErr))
	assert.True(t, fofa.IsTransportError(transportErr))
	assert.True(t, fofa.IsProtocolError(protocolErr))
	assert.True(t, fofa.IsApplicationError(appErr))

	assert.False(t, fofa.IsApplicationError(configErr))
	assert.False(t, fofa.IsTransportError(appErr))
	assert.False(t, fofa.IsProtocolError(errors.New("plain")))
	assert.Equal(t, fofa.ErrorKind(0), fofa.KindOf(nil))
}

func TestErrorKind_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to search: %w", fofa.NewApplicationError(200, "bad query"))

	assert.Equal(t, fofa.KindApplication, fofa.KindOf(wrapped))

	var fofaErr *fofa.Error
	require.ErrorAs(t, wrapped, &fofaErr)
	assert.Equal(t, "bad query", fofaErr.Message)
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := fofa.NewTransportError("request failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "configuration", fofa.KindConfiguration.String())
	assert.Equal(t, "transport", fofa.KindTransport.String())
	assert.Equal(t, "protocol", fofa.KindProtocol.String())
	assert.Equal(t, "application", fofa.KindApplication.String())
	assert.Equal(t, "unknown", fofa.ErrorKind(42).String())
}
