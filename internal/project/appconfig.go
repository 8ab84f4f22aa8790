// Package project persists application preferences and user canvas presets.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/GangSheet/internal/model"
)

// HomeEnv overrides the directory holding config.json and presets.json.
const HomeEnv = "GANGSHEET_HOME"

const configFileName = "config.json"

// DefaultConfigDir is $GANGSHEET_HOME when set, else ~/.gangsheet. Without a
// home directory it falls back to .gangsheet in the working directory.
func DefaultConfigDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".gangsheet")
	}
	return ".gangsheet"
}

// DefaultConfigPath is config.json inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), configFileName)
}

// SaveAppConfig writes config as indented JSON, replacing path through a
// temporary sibling file.
func SaveAppConfig(path string, config model.AppConfig) error {
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig, so keys
// missing from the file keep their defaults. A missing file yields the
// defaults. An unknown default_algorithm is rejected rather than ignored.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	if _, ok := model.ParseAlgorithm(string(config.DefaultAlgorithm)); !ok {
		return model.AppConfig{}, fmt.Errorf("%s: unknown default_algorithm %q", path, config.DefaultAlgorithm)
	}
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
