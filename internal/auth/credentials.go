package auth

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/spf13/viper"
)

// Configuration keys read by Resolve.
const (
	KeyToken = "token"
	KeyEmail = "email"
	KeyKey   = "key"
)

const tokenSeparator = ":"

// MissingCredentialsMessage tells the user which settings are needed.
const MissingCredentialsMessage = "credentials not configured: set FOFA_TOKEN=email:key, or both FOFA_EMAIL and FOFA_API_KEY"

// Source is a read-only view of configuration values. *viper.Viper satisfies it.
type Source interface {
	GetString(key string) string
}

// Resolve derives credentials from src. A combined token containing ':' takes
// priority and is split on its first ':'. Otherwise both discrete values must
// be present.
func Resolve(src Source) (fofa.Credentials, error) {
	if creds, ok := fromToken(src.GetString(KeyToken)); ok {
		return creds, nil
	}

	creds := fofa.Credentials{
		Email: src.GetString(KeyEmail),
		Key:   src.GetString(KeyKey),
	}
	if creds.Valid() {
		return creds, nil
	}

	return fofa.Credentials{}, fofa.NewConfigurationError(MissingCredentialsMessage)
}

func fromToken(token string) (fofa.Credentials, bool) {
	email, key, found := strings.Cut(token, tokenSeparator)
	if !found {
		return fofa.Credentials{}, false
	}

	creds := fofa.Credentials{Email: email, Key: key}

	return creds, creds.Valid()
}

// BindEnv maps the credential keys onto their environment variables.
func BindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		KeyToken: {"FOFA_TOKEN"},
		KeyEmail: {"FOFA_EMAIL"},
		KeyKey:   {"FOFA_API_KEY", "FOFA_KEY"},
	}

	for key, envs := range bindings {
		err := v.BindEnv(append([]string{key}, envs...)...)
		if err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return nil
}

// NewEnvSource returns a Source reading only the process environment.
func NewEnvSource() (*viper.Viper, error) {
	v := viper.New()

	err := BindEnv(v)
	if err != nil {
		return nil, err
	}

	return v, nil
}
