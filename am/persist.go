package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup",
			logger.FieldFile, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// IsBackupFile reports whether path is one of the rotated config backups.
func IsBackupFile(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range []string{".back1", ".back2", ".back3"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// ParseValue converts text to the type of key's default value.
func ParseValue(key, text string) (any, error) {
	v := viper.New()
	SetDefaults(v)
	if !v.IsSet(key) {
		return nil, errors.WithHintf(errors.Newf("unknown config key %q", key),
			"known keys: %s", strings.Join(v.AllKeys(), ", "))
	}
	switch v.Get(key).(type) {
	case bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s expects a bool", key)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s expects an integer", key)
		}
		return n, nil
	default:
		return text, nil
	}
}

// SetValue writes key = value into the TOML file at configPath, creating it
// when missing. The previous file is kept as a rotated backup.
func SetValue(configPath, key string, value any) error {
	config := make(map[string]any)
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return errors.Wrapf(err, "failed to parse %s", configPath)
		}
	}

	section := config
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := section[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			section[part] = next
		}
		section = next
	}
	section[parts[len(parts)-1]] = value

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", configPath)
	}

	logger.Infow("Config value saved",
		logger.FieldConfig, key,
		logger.FieldFile, configPath)
	return nil
}
