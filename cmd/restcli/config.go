package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/loykin/restcli/internal/common"
	"github.com/loykin/restcli/internal/constants"
	"github.com/loykin/restcli/internal/httpc"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type ClientConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
}

// Httpc builds the transport factory for these client options.
func (c ClientConfig) Httpc() *httpc.Httpc {
	return &httpc.Httpc{TlsConfig: httpc.TLSConfig(c.Insecure, c.MinTLSVersion, c.MaxTLSVersion)}
}

type LoggingConfig struct {
	Level         common.LogLevel `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format        string          `mapstructure:"format" yaml:"format"` // text, json, color
	MaskSensitive bool            `mapstructure:"mask_sensitive" yaml:"mask_sensitive"`
}

// Settings is the merged result of defaults, config file, environment and flags.
type Settings struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Client  ClientConfig  `mapstructure:"client" yaml:"client"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ConfigError marks a problem with configuration input.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// ConfigDoc is the raw YAML document named by --config.
type ConfigDoc map[string]interface{}

func (c *ConfigDoc) Load(path string) error {
	clean := filepath.Clean(path)
	// Ensure path points to a regular file to avoid opening directories/special files
	if info, statErr := os.Stat(clean); statErr != nil || !info.Mode().IsRegular() {
		if statErr != nil {
			return statErr
		}
		return fmt.Errorf("not a regular file: %s", clean)
	}
	// #nosec G304 -- config path is provided intentionally by the user; cleaned and validated above
	f, err := os.Open(clean)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	doc := ConfigDoc{}
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s: %w", clean, err)
	}
	*c = doc
	return nil
}

// settingDefaults lists every leaf key Settings is decoded from.
var settingDefaults = []struct {
	key   string
	value any
}{
	{"base_url", constants.DefaultBaseURL},
	{"client.insecure", false},
	{"client.min_tls_version", ""},
	{"client.max_tls_version", ""},
	{"logging.level", constants.DefaultLogLevel},
	{"logging.format", common.FormatText},
	{"logging.mask_sensitive", true},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	for _, d := range settingDefaults {
		v.SetDefault(d.key, d.value)
	}

	// Environment variables support: RESTCLI_BASE_URL, RESTCLI_LOGGING_LEVEL, ...
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// settingsMap resolves each key through v.Get so flags and env beat a
// merged config file even for nested keys, which v.AllSettings does not.
func settingsMap(v *viper.Viper) map[string]any {
	out := map[string]any{}
	for _, d := range settingDefaults {
		parts := strings.Split(d.key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v.Get(d.key)
	}
	return out
}

// loadDotEnv reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ConfigError{Err: fmt.Errorf("load %s: %w", path, err)}
	}
	return nil
}

// loadSettings merges the optional config file into v and decodes the result.
func loadSettings(v *viper.Viper) (*Settings, error) {
	if path := strings.TrimSpace(v.GetString("config")); path != "" {
		var doc ConfigDoc
		if err := doc.Load(path); err != nil {
			return nil, &ConfigError{Err: err}
		}
		if err := v.MergeConfigMap(doc); err != nil {
			return nil, &ConfigError{Err: err}
		}
	}

	var s Settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := dec.Decode(settingsMap(v)); err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return &s, nil
}

// Validate checks the base URL is an absolute http(s) URL.
func (s *Settings) Validate() error {
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	if s.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", s.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: expected http(s)://host", s.BaseURL)
	}
	return nil
}

// SetupLogging builds the logger described by the logging section, writing
// to w, and installs it as the global default.
func (c LoggingConfig) SetupLogging(w io.Writer) (*common.Logger, error) {
	logger, err := common.New(w, c.Level, c.Format)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	logger.EnableMasking(c.MaskSensitive)
	common.SetDefaultLogger(logger)
	logger.Debug("logging configured",
		"level", c.Level.String(),
		"format", c.Format,
		"mask_sensitive", c.MaskSensitive)
	return logger, nil
}
