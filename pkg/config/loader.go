package config

import (
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// Path is a YAML file. A missing file is not an error.
	Path string
	// EnvFiles are loaded with godotenv. When empty, a .env file in the
	// working directory is loaded if present.
	EnvFiles []string
	// Environ replaces os.Environ when set. Used by tests.
	Environ map[string]string
}

// Default returns a config holding only the tag defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	return cfg, nil
}

// Load builds a Config from defaults, the YAML file, .env files and the
// environment, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if opts.Path != "" {
		if err := readFile(opts.Path, cfg); err != nil {
			return nil, err
		}
	}

	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if opts.Environ != nil {
		envOpts.Environment = opts.Environ
	}
	if err := env.ParseWithOptions(cfg, envOpts); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.WithStack(err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		// the default .env file is optional
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Wrap(err, "load env files")
	}
	return nil
}
