package auth_test

import (
	"testing"

	"github.com/fivetwenty-io/fofa-cli/internal/auth"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]string

func (m mapSource) GetString(key string) string {
	return m[key]
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   mapSource
		expected fofa.Credentials
	}{
		{
			name:     "combined token",
			source:   mapSource{"token": "a@b.com:secretkey"},
			expected: fofa.Credentials{Email: "a@b.com", Key: "secretkey"},
		},
		{
			name:     "token split on first separator only",
			source:   mapSource{"token": "a@b.com:se:cret"},
			expected: fofa.Credentials{Email: "a@b.com", Key: "se:cret"},
		},
		{
			name:     "token wins over discrete values",
			source:   mapSource{"token": "t@b.com:tk", "email": "e@b.com", "key": "ek"},
			expected: fofa.Credentials{Email: "t@b.com", Key: "tk"},
		},
		{
			name:     "discrete values",
			source:   mapSource{"email": "e@b.com", "key": "ek"},
			expected: fofa.Credentials{Email: "e@b.com", Key: "ek"},
		},
		{
			name:     "token without separator falls back",
			source:   mapSource{"token": "nocolon", "email": "e@b.com", "key": "ek"},
			expected: fofa.Credentials{Email: "e@b.com", Key: "ek"},
		},
		{
			name:     "token with empty half falls back",
			source:   mapSource{"token": "a@b.com:", "email": "e@b.com", "key": "ek"},
			expected: fofa.Credentials{Email: "e@b.com", Key: "ek"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			creds, err := auth.Resolve(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, creds)
		})
	}
}

func TestResolve_Missing(t *testing.T) {
	t.Parallel()

	sources := []mapSource{
		{},
		{"email": "e@b.com"},
		{"key": "ek"},
		{"token": "nocolon"},
		{"token": ":key"},
	}

	for _, source := range sources {
		_, err := auth.Resolve(source)
		require.Error(t, err)
		assert.True(t, fofa.IsConfigurationError(err))
		assert.Equal(t, auth.MissingCredentialsMessage, err.Error())
	}
}

func TestResolve_Viper(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("email", "cfg@b.com")
	v.Set("key", "cfgkey")

	creds, err := auth.Resolve(v)
	require.NoError(t, err)
	assert.Equal(t, fofa.Credentials{Email: "cfg@b.com", Key: "cfgkey"}, creds)
}

//nolint:paralleltest // mutates the process environment
func TestBindEnv(t *testing.T) {
	t.Setenv("FOFA_TOKEN", "")
	t.Setenv("FOFA_EMAIL", "env@b.com")
	t.Setenv("FOFA_API_KEY", "envkey")

	v := viper.New()
	require.NoError(t, auth.BindEnv(v))

	creds, err := auth.Resolve(v)
	require.NoError(t, err)
	assert.Equal(t, fofa.Credentials{Email: "env@b.com", Key: "envkey"}, creds)
}

//nolint:paralleltest // mutates the process environment
func TestNewEnvSource_Token(t *testing.T) {
	t.Setenv("FOFA_TOKEN", "tok@b.com:tokkey")
	t.Setenv("FOFA_EMAIL", "env@b.com")
	t.Setenv("FOFA_API_KEY", "envkey")

	source, err := auth.NewEnvSource()
	require.NoError(t, err)

	creds, err := auth.Resolve(source)
	require.NoError(t, err)
	assert.Equal(t, fofa.Credentials{Email: "tok@b.com", Key: "tokkey"}, creds)
}

//nolint:paralleltest // mutates the process environment
func TestNewEnvSource_KeyAlias(t *testing.T) {
	t.Setenv("FOFA_TOKEN", "")
	t.Setenv("FOFA_EMAIL", "env@b.com")
	t.Setenv("FOFA_API_KEY", "")
	t.Setenv("FOFA_KEY", "aliaskey")

	source, err := auth.NewEnvSource()
	require.NoError(t, err)

	creds, err := auth.Resolve(source)
	require.NoError(t, err)
	assert.Equal(t, "aliaskey", creds.Key)
}
