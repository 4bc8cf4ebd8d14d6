// Package config loads androidfix settings.
//
// Settings live in androidfix.yaml at the Flutter project root. The path can
// be overridden with the ANDROIDFIX_CONFIG environment variable or the
// --config flag. A missing file is not an error: the defaults reproduce the
// settings the Flutter Android template expects (compileSdk 36, Java 11).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/androidfix/internal/fsops"
	"github.com/danieljhkim/androidfix/internal/namespace"
)

const (
	// FileName is the config file looked up at the project root.
	FileName = "androidfix.yaml"

	// EnvConfig overrides the config file path.
	EnvConfig = "ANDROIDFIX_CONFIG"

	DefaultCompileSdk  = 36
	DefaultJavaVersion = "11"
	DefaultJvmTarget   = "11"
	DefaultWorkers     = 4
)

// ErrInvalid indicates a config value failed validation.
var ErrInvalid = errors.New("invalid config")

// Config contains the settings applied to every subproject.
type Config struct {
	// NamespacePrefix is prepended to derived namespaces
	NamespacePrefix string `yaml:"namespacePrefix"`

	// Overrides maps subproject names to fixed namespaces
	Overrides map[string]string `yaml:"overrides"`

	// CompileSdk is forced on every subproject, 0 disables
	CompileSdk int `yaml:"compileSdk"`

	// JavaVersion is forced as source and target compatibility, "" disables
	JavaVersion string `yaml:"javaVersion"`

	// JvmTarget is forced on Kotlin subprojects, "" disables
	JvmTarget string `yaml:"jvmTarget"`

	// Workers bounds parallel subproject scanning
	Workers int `yaml:"workers"`

	// ExtraSubprojects are subproject directories not listed by Flutter
	ExtraSubprojects []string `yaml:"extraSubprojects"`

	// Path is the file the config was loaded from, empty for defaults
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		NamespacePrefix: namespace.DefaultPrefix,
		Overrides: map[string]string{
			"ar_flutter_plugin": "com.carius.ar_flutter_plugin",
		},
		CompileSdk:  DefaultCompileSdk,
		JavaVersion: DefaultJavaVersion,
		JvmTarget:   DefaultJvmTarget,
		Workers:     DefaultWorkers,
	}
}

// Resolve picks the config path: explicit, then $ANDROIDFIX_CONFIG, then
// androidfix.yaml under root.
func Resolve(explicit, root string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return filepath.Join(root, FileName)
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults unless required is set.
func Load(fs fsops.FS, path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.CompileSdk < 0 {
		return fmt.Errorf("%w: compileSdk must not be negative, got %d", ErrInvalid, c.CompileSdk)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	for _, v := range []struct{ key, val string }{
		{"javaVersion", c.JavaVersion},
		{"jvmTarget", c.JvmTarget},
	} {
		if v.val != "" && !validVersion(v.val) {
			return fmt.Errorf("%w: %s must look like 11 or 1.8, got %q", ErrInvalid, v.key, v.val)
		}
	}
	if c.NamespacePrefix != "" && !strings.HasSuffix(c.NamespacePrefix, ".") {
		return fmt.Errorf("%w: namespacePrefix must end with '.', got %q", ErrInvalid, c.NamespacePrefix)
	}
	return nil
}

// Resolver builds the namespace resolver for this config.
func (c *Config) Resolver() *namespace.Resolver {
	return namespace.NewResolver(c.NamespacePrefix, c.Overrides)
}

func validVersion(v string) bool {
	for _, part := range strings.Split(v, ".") {
		if _, err := strconv.Atoi(part); err != nil {
			return false
		}
	}
	return true
}
