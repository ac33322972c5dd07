package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/devantler-tech/snapp/pkg/apis/project/v1alpha1"
	configmanagerinterface "github.com/devantler-tech/snapp/pkg/io/config-manager"
	"github.com/devantler-tech/snapp/pkg/notify"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the manager.
	EnvPrefix = "SNAPP"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = ".snapp"
	// ConfigFileType is the format of the config file.
	ConfigFileType = "yaml"
	// KeyGitHubToken is the key of the GitHub API token.
	KeyGitHubToken = "template.githubToken"
	// GitHubTokenEnv is the conventional GitHub token variable, used when
	// SNAPP_TEMPLATE_GITHUBTOKEN is unset.
	GitHubTokenEnv = "GITHUB_TOKEN"
	// GitHubHost is the host whose stored gh CLI credentials are used as the
	// last token fallback.
	GitHubHost = "github.com"
)

// TokenSource looks up a stored token for host and reports where it came from.
type TokenSource func(host string) (token, source string)

// ErrUnsupportedFieldType is returned when a field selector default has no flag type.
var ErrUnsupportedFieldType = errors.New("unsupported field type")

// ConfigManager loads v1alpha1.Project configurations.
type ConfigManager struct {
	Viper          *viper.Viper
	Config         *v1alpha1.Project
	Writer         io.Writer
	// TokenSource is consulted when neither config nor environment set a GitHub token.
	TokenSource    TokenSource
	fieldSelectors []FieldSelector[v1alpha1.Project]
	configPaths    []string
	configLoaded   bool
}

// Compile-time interface compliance verification.
var _ configmanagerinterface.ConfigManager[v1alpha1.Project] = (*ConfigManager)(nil)

// NewConfigManager creates a configuration manager for the given field selectors.
// Config files are searched in the working directory, then in $HOME.
func NewConfigManager(writer io.Writer, fieldSelectors ...FieldSelector[v1alpha1.Project]) *ConfigManager {
	manager := &ConfigManager{
		Viper:          InitializeViper(),
		Config:         v1alpha1.NewProject(),
		Writer:         writer,
		TokenSource:    auth.TokenForHost,
		fieldSelectors: fieldSelectors,
		configPaths:    []string{".", "$HOME"},
	}

	for _, selector := range fieldSelectors {
		manager.Viper.SetDefault(selector.Key, selector.DefaultValue)
	}

	return manager
}

// NewCommandConfigManager constructs a ConfigManager bound to the provided Cobra command.
// It registers a flag for every selector that names one and writes notifications
// to the command's standard output writer.
func NewCommandConfigManager(
	cmd *cobra.Command,
	selectors []FieldSelector[v1alpha1.Project],
) (*ConfigManager, error) {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)

	err := manager.AddFlagsFromFields(cmd)
	if err != nil {
		return nil, err
	}

	return manager, nil
}

// InitializeViper creates a Viper instance reading SNAPP_ environment variables.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType(ConfigFileType)
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperInstance.AutomaticEnv()

	// BindEnv only fails without a key.
	_ = viperInstance.BindEnv(
		KeyGitHubToken,
		EnvPrefix+"_"+envKey(KeyGitHubToken),
		GitHubTokenEnv,
	)

	return viperInstance
}

// SetConfigPaths replaces the directories searched for the config file.
func (m *ConfigManager) SetConfigPaths(paths ...string) {
	m.configPaths = paths
}

// AddFlagsFromFields registers and binds a flag for every selector with a flag name.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) error {
	flags := cmd.Flags()

	for _, selector := range m.fieldSelectors {
		if selector.Flag == "" {
			continue
		}

		switch value := selector.DefaultValue.(type) {
		case string:
			flags.String(selector.Flag, value, selector.Description)
		case bool:
			flags.Bool(selector.Flag, value, selector.Description)
		case []string:
			flags.StringSlice(selector.Flag, value, selector.Description)
		default:
			return fmt.Errorf("%w: %T for flag %s", ErrUnsupportedFieldType, value, selector.Flag)
		}

		err := m.Viper.BindPFlag(selector.Key, flags.Lookup(selector.Flag))
		if err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", selector.Flag, err)
		}
	}

	return nil
}

// Load loads the configuration.
// Configuration priority: defaults < config file < environment variables < flags.
func (m *ConfigManager) Load(opts configmanagerinterface.LoadOptions) (*v1alpha1.Project, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig(opts.Silent)
		if err != nil {
			return nil, err
		}
	}

	err := m.unmarshal()
	if err != nil {
		return nil, err
	}

	m.applyStoredToken()
	m.Config.ExpandEnvVars()

	err = m.Config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	m.configLoaded = true

	return m.Config, nil
}

// applyStoredToken falls back to the credentials saved by `gh auth login`.
func (m *ConfigManager) applyStoredToken() {
	tmpl := &m.Config.Spec.Template
	if tmpl.GitHubToken != "" || m.TokenSource == nil {
		return
	}

	tmpl.GitHubToken, _ = m.TokenSource(GitHubHost)
}

func (m *ConfigManager) readConfig(silent bool) error {
	for _, path := range m.configPaths {
		m.Viper.AddConfigPath(path)
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	if !silent {
		notify.Activityf(m.Writer, "using config '%s'", m.Viper.ConfigFileUsed())
	}

	return nil
}

func (m *ConfigManager) unmarshal() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			trimmedStringSliceHook(),
		)
	}

	err := m.Viper.Unmarshal(&m.Config.Spec, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return nil
}

// trimmedStringSliceHook splits comma separated strings, as given by environment
// variables, into trimmed non-empty elements.
func trimmedStringSliceHook() mapstructure.DecodeHookFuncType {
	stringSlice := reflect.TypeOf([]string(nil))

	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != stringSlice {
			return data, nil
		}

		raw, _ := data.(string)
		parts := strings.Split(raw, ",")
		cleaned := make([]string, 0, len(parts))

		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part != "" {
				cleaned = append(cleaned, part)
			}
		}

		return cleaned, nil
	}
}

func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
