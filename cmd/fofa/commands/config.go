package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/fofa-cli/internal/auth"
	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ConfigView is the effective configuration with secrets masked.
type ConfigView struct {
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	API        string `json:"api"                   yaml:"api"`
	Output     string `json:"output"                yaml:"output"`
	Email      string `json:"email,omitempty"       yaml:"email,omitempty"`
	Key        string `json:"key,omitempty"         yaml:"key,omitempty"`
	Token      string `json:"token,omitempty"       yaml:"token,omitempty"`
	Resolved   bool   `json:"credentials_resolved"  yaml:"credentials_resolved"`
}

// FileConfig is what config init writes.
type FileConfig struct {
	Email string `yaml:"email"`
	Key   string `yaml:"key"`
	API   string `yaml:"api,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Inspect and create the FOFA CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment and config file. Secrets are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			view := currentConfig(viper.GetViper())
			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, nil, view)
			if err != nil || done {
				return err
			}

			return propertyTable(out, [][]string{
				{"Config File", view.ConfigFile},
				{"API", view.API},
				{"Output", view.Output},
				{"Email", view.Email},
				{"Key", view.Key},
				{"Token", view.Token},
				{"Credentials", resolvedLabel(view.Resolved)},
			})
		},
	}
}

func currentConfig(v *viper.Viper) ConfigView {
	_, err := auth.Resolve(v)

	output := v.GetString(KeyOutput)
	if output == "" {
		output = constants.FormatTable
	}

	return ConfigView{
		ConfigFile: v.ConfigFileUsed(),
		API:        v.GetString(KeyAPI),
		Output:     output,
		Email:      v.GetString(auth.KeyEmail),
		Key:        maskSecret(v.GetString(auth.KeyKey)),
		Token:      maskToken(v.GetString(auth.KeyToken)),
		Resolved:   err == nil,
	}
}

// maskToken keeps the email half of an email:key token readable.
func maskToken(token string) string {
	email, key, found := strings.Cut(token, ":")
	if !found {
		return maskSecret(token)
	}

	return email + ":" + maskSecret(key)
}

func resolvedLabel(ok bool) string {
	if ok {
		return "configured"
	}

	return "missing"
}

func newConfigInitCommand() *cobra.Command {
	var (
		email string
		key   string
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Long: `Write email and API key to a config file (default $HOME/.fofa/config.yml).
The key is prompted for without echo when not given with --key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error

			reader := bufio.NewReader(cmd.InOrStdin())

			if path == "" {
				path, err = defaultConfigPath()
				if err != nil {
					return err
				}
			}

			if !force {
				_, statErr := os.Stat(path)
				if statErr == nil {
					return fmt.Errorf("%s: %w", path, constants.ErrConfigExists)
				}
			}

			if email == "" {
				email, err = promptLine(reader, cmd.OutOrStdout(), "Email: ")
				if err != nil {
					return err
				}
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			if key == "" {
				key, err = promptSecret(cmd.InOrStdin(), reader, cmd.OutOrStdout(), "API key: ")
				if err != nil {
					return err
				}
			}

			if key == "" {
				return constants.ErrKeyRequired
			}

			err = writeConfigFile(path, FileConfig{Email: email, Key: key, API: viper.GetString(KeyAPI)})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&key, "key", "", "API key (prompted when omitted)")
	cmd.Flags().StringVar(&path, "path", "", "config file to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

func writeConfigFile(path string, config FileConfig) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func promptLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo from a terminal and falls back to a plain
// line read otherwise.
func promptSecret(in io.Reader, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	file, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return promptLine(reader, out, label)
	}

	_, _ = fmt.Fprint(out, label)

	secret, err := term.ReadPassword(int(file.Fd()))

	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}
