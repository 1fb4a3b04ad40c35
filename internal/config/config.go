// Package config loads gitsetup's optional settings file. Everything has
// a sensible default; running without a config file is the normal case.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"gitsetup/internal/errors"
)

// ConfigFileName is the settings file looked up in the working directory
// and the home directory.
const ConfigFileName = ".gitsetup.yaml"

// Config holds operator-tunable settings.
type Config struct {
	// Packages are the executables the dependency check requires.
	Packages []string `mapstructure:"packages" yaml:"packages"`

	Key   KeyConfig   `mapstructure:"key" yaml:"key"`
	Clone CloneConfig `mapstructure:"clone" yaml:"clone"`
}

// KeyConfig sets the defaults offered by the key flow.
type KeyConfig struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`
	Name    string `mapstructure:"name" yaml:"name"`
	Comment string `mapstructure:"comment" yaml:"comment"`
}

// CloneConfig sets the defaults offered by the clone flow.
type CloneConfig struct {
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Packages: []string{"git", "ssh", "ssh-keygen"},
		Key: KeyConfig{
			Name:    "id_ed25519",
			Comment: "git-setup-key",
		},
	}
}

// Load reads the settings file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'gitsetup config init' to create one, or drop the --config flag")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check that "+path+" is valid YAML")
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML structure in "+path)
	}
	return cfg, nil
}

// Find locates the settings file: explicit path first, then the working
// directory, then the home directory. Empty means no file, which is fine.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+explicit,
				"Check the path is correct")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, ConfigFileName)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads the found settings file, or the defaults when none
// exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// WriteDefault writes the built-in settings to path as a starting point.
// It refuses to clobber an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Remove it first if you want a fresh one")
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render default config", "")
	}

	header := []byte("# gitsetup settings. Every field is optional.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check directory permissions")
	}
	return nil
}
