package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	appDirName = "expert-notes"
	envPrefix  = "NOTES_"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// GetConfigPath resolves the config file: $NOTES_CONFIG first, then the
// per-user config directory.
func GetConfigPath() (string, error) {
	if customConfig := os.Getenv("NOTES_CONFIG"); customConfig != "" {
		return customConfig, nil
	}

	var configPath string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			configPath = filepath.Join(appData, appDirName, "config.yaml")
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to determine home directory: %w", err)
			}
			configPath = filepath.Join(homeDir, "AppData", "Roaming", appDirName, "config.yaml")
		}

	default:
		configDir, err := os.UserConfigDir()
		if err != nil {
			homeDir, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return "", fmt.Errorf("failed to determine home directory: %w", homeErr)
			}
			configPath = filepath.Join(homeDir, "."+appDirName, "config.yaml")
			slog.Warn("user config directory unavailable, using fallback", "path", configPath)
		} else {
			configPath = filepath.Join(configDir, appDirName, "config.yaml")
		}
	}

	return configPath, nil
}

// Expand `~` to the home directory
func expandHomeDir(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("failed to get home directory", "error", err)
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

func defaults() map[string]any {
	d := model.DefaultConfig()
	return map[string]any{
		"data_dir":    d.DataDir,
		"storage_key": d.StorageKey,
		"editor":      d.Editor,

		"dictation.command":          d.Dictation.Command,
		"dictation.language":         d.Dictation.Language,
		"dictation.continuous":       d.Dictation.Continuous,
		"dictation.interim_results":  d.Dictation.InterimResults,
		"dictation.max_alternatives": d.Dictation.MaxAlternatives,
		"dictation.stop_on_error":    d.Dictation.StopOnError,

		"notify.success_duration": d.Notify.SuccessDuration.String(),
		"notify.warning_duration": d.Notify.WarningDuration.String(),

		"log.level":       d.Log.Level,
		"log.format":      d.Log.Format,
		"log.file":        d.Log.File,
		"log.max_size":    d.Log.MaxSizeMB,
		"log.max_backups": d.Log.MaxBackups,
		"log.max_age":     d.Log.MaxAgeDays,
	}
}

// LoadConfig reads the config at GetConfigPath.
func LoadConfig() (*model.Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom layers defaults, the YAML file at path (when it exists) and
// NOTES_ environment variables, then validates the result. A double
// underscore in a variable name separates nested keys, so
// NOTES_DICTATION__COMMAND sets dictation.command.
func LoadConfigFrom(path string) (*model.Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse config file (%s): %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file (%s): %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		if s == envPrefix+"CONFIG" {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var config model.Config
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.DataDir = expandHomeDir(config.DataDir)
	config.Log.File = expandHomeDir(config.Log.File)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConfig reports every invalid field in one error.
func ValidateConfig(config model.Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config:\n  %s", strings.Join(msgs, "\n  "))
}

func formatFieldError(e validator.FieldError) string {
	parts := strings.Split(e.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	field := strings.ToLower(strings.Join(parts, "."))

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "excludesall":
		return fmt.Sprintf("%s must not contain any of %q", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// SaveConfig writes config as YAML to GetConfigPath.
func SaveConfig(config model.Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveConfigTo(configPath, config)
}

func SaveConfigTo(path string, config model.Config) error {
	if err := ValidateConfig(config); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to convert config to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file (%s): %w", path, err)
	}
	return nil
}
