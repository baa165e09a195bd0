package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/lago-client/internal/auth"
	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/internal/logging"
	"github.com/fivetwenty-io/lago-client/internal/metrics"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/fivetwenty-io/lago-client/pkg/lagoclient"
)

// Viper keys shared by flags, LAGO_* variables and the config file.
const (
	keyAPIKey     = "api_key"
	keyRegion     = "region"
	keyAPIURL     = "api_url"
	keyOutput     = "output"
	keyVerbose    = "verbose"
	keyMaxRetries = "max_retries"
	keyRetryMode  = "retry_mode"
	keyTimeout    = "timeout"
	keyHeader     = "header"
)

// Config represents the persisted CLI configuration.
type Config struct {
	APIKey     string `json:"api_key,omitempty"     yaml:"api_key,omitempty"`
	Region     string `json:"region,omitempty"      yaml:"region,omitempty"`
	APIURL     string `json:"api_url,omitempty"     yaml:"api_url,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
	MaxRetries *int   `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	RetryMode  string `json:"retry_mode,omitempty"  yaml:"retry_mode,omitempty"`
	Timeout    string `json:"timeout,omitempty"     yaml:"timeout,omitempty"`
}

var configSetters = map[string]func(*Config, string) error{
	keyAPIKey: func(c *Config, v string) error {
		c.APIKey = v

		return nil
	},
	keyRegion: func(c *Config, v string) error {
		c.Region = v

		return nil
	},
	keyAPIURL: func(c *Config, v string) error {
		c.APIURL = v

		return nil
	},
	keyOutput: func(c *Config, v string) error {
		err := validateOutput(v)
		if err != nil {
			return err
		}

		c.Output = v

		return nil
	},
	keyMaxRetries: func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: max_retries must be a non-negative integer", lago.ErrInvalidRetryConfig)
		}

		c.MaxRetries = &n

		return nil
	},
	keyRetryMode: func(c *Config, v string) error {
		_, err := lago.ParseRetryMode(v)
		if err != nil {
			return err
		}

		c.RetryMode = v

		return nil
	},
	keyTimeout: func(c *Config, v string) error {
		_, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}

		c.Timeout = v

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the Lago CLI configuration stored in ~/.lago/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetKeyCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskKey(config.APIKey)

			return render(cmd, config, func(table *tablewriter.Table) {
				table.Header("Key", "Value")
				_ = table.Append("API Key", valueOrNA(config.APIKey))
				_ = table.Append("Region", valueOrNA(config.Region))
				_ = table.Append("API URL", valueOrNA(config.APIURL))
				_ = table.Append("Endpoint", resolveRegion().Endpoint())
				_ = table.Append("Output", valueOrNA(config.Output))
				_ = table.Append("Retry Mode", valueOrNA(config.RetryMode))
				_ = table.Append("Timeout", valueOrNA(config.Timeout))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: "Set a configuration value. Keys: " +
			"api_key, region, api_url, output, max_retries, retry_mode, timeout",
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ReplaceAll(args[0], "-", "_")

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, args[0])
			}

			config := loadConfig()

			err := setter(config, args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [API_KEY]",
		Short: "Store the API key",
		Long:  "Store the Lago API key. Without an argument the key is read from the terminal without echo.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string

			if len(args) == 1 {
				key = args[0]
			} else {
				prompted, err := promptAPIKey(cmd)
				if err != nil {
					return err
				}

				key = prompted
			}

			key = strings.TrimSpace(key)
			if key == "" {
				return constants.ErrEmptyAPIKey
			}

			config := loadConfig()
			config.APIKey = key

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API key %s saved\n", maskKey(key))

			return nil
		},
	}
}

func promptAPIKey(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // stdin fd fits in int

	if !term.IsTerminal(fd) {
		return "", constants.ErrNotATerminal
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API key: ")

	key, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	return string(key), nil
}

func loadConfig() *Config {
	config := &Config{
		APIKey:    viper.GetString(keyAPIKey),
		Region:    viper.GetString(keyRegion),
		APIURL:    viper.GetString(keyAPIURL),
		Output:    viper.GetString(keyOutput),
		RetryMode: viper.GetString(keyRetryMode),
		Timeout:   viper.GetString(keyTimeout),
	}

	if viper.IsSet(keyMaxRetries) {
		n := viper.GetInt(keyMaxRetries)
		config.MaxRetries = &n
	}

	return config
}

// configFilePath returns the file viper loaded, or ~/.lago/config.yml.
func configFilePath() (string, error) {
	if file := viper.ConfigFileUsed(); file != "" {
		return file, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".lago", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}

	if len(key) <= constants.VisibleKeySuffix*2 {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + key[len(key)-constants.VisibleKeySuffix:]
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// resolveRegion prefers --region, then --api-url, then the US region.
func resolveRegion() lago.Region {
	if region := viper.GetString(keyRegion); region != "" {
		return lago.ParseRegion(region)
	}

	if apiURL := viper.GetString(keyAPIURL); apiURL != "" {
		return lago.CustomRegion(apiURL)
	}

	return lago.RegionUS
}

// newCredentials re-reads the key on every attempt: flag, LAGO_API_KEY or the
// config file through viper, then the raw environment.
func newCredentials() lago.CredentialsProvider {
	return auth.Chain{
		auth.Func(func() string { return viper.GetString(keyAPIKey) }),
		lago.EnvCredentials{},
	}
}

func buildRetryConfig() (lago.RetryConfig, error) {
	retry := lago.DefaultRetryConfig()

	mode, err := lago.ParseRetryMode(viper.GetString(keyRetryMode))
	if err != nil {
		return retry, err
	}

	retry.Mode = mode

	if viper.IsSet(keyMaxRetries) {
		retry.MaxAttempts = viper.GetInt(keyMaxRetries)
	}

	return retry, nil
}

func newLogger() (*logging.ZapLogger, error) {
	cfg := logging.Config{Mode: logging.ModeProduction, Level: "warn"}
	if viper.GetBool(keyVerbose) {
		cfg = logging.Config{Mode: logging.ModeDevelopment, Level: "debug"}
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return logging.NewZapLogger(logger), nil
}

// createClient builds a client from flags, LAGO_* variables and the config file.
func createClient(opts ...func(*lago.Options)) (lago.Client, error) {
	if _, err := newCredentials().Provide(); err != nil {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	retry, err := buildRetryConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	interceptors, err := headerInterceptors(viper.GetStringSlice(keyHeader))
	if err != nil {
		return nil, err
	}

	configure := func(o *lago.Options) {
		o.Region = resolveRegion()
		o.Credentials = newCredentials()
		o.Retry = &retry
		o.Timeout = viper.GetDuration(keyTimeout)
		o.UserAgent = userAgent
		o.Logger = logger
		o.Debug = viper.GetBool(keyVerbose)
		o.Interceptors = interceptors
	}

	return lagoclient.NewFromEnv(append([]func(*lago.Options){configure}, opts...)...)
}

// headerInterceptors turns repeated "Name: value" flags into a chain that
// sets them on every call. It returns nil when there are none.
func headerInterceptors(entries []string) (*lago.InterceptorChain, error) {
	if len(entries) == 0 {
		return nil, nil //nolint:nilnil
	}

	headers := make(map[string]string, len(entries))

	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidHeader, entry)
		}

		headers[name] = strings.TrimSpace(value)
	}

	return lago.NewInterceptorChain().AddRequestInterceptor(lago.HeaderInterceptor(headers)), nil
}

// withMetrics routes API calls through the collector's instrumented transport.
func withMetrics(collector *metrics.Collector) func(*lago.Options) {
	return func(o *lago.Options) {
		o.Transport = collector.Transport(cleanhttp.DefaultPooledTransport())
	}
}

var userAgent = lago.DefaultUserAgent() + " lago-cli"

func writeJSON(cmd *cobra.Command, data interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	return encoder.Encode(data)
}
