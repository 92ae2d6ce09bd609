// Package config loads the jn configuration file.
//
// The file lives at <user-config-dir>/jn/config.yaml and every field is
// optional; a missing file yields a usable zero-value configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the configuration leaves a field empty.
const (
	// DefaultWorkspace is used when no workspace is configured or given.
	DefaultWorkspace = "default"

	// configDirName is the directory under the user config dir.
	configDirName = "jn"

	// FileName is the configuration file name.
	FileName = "config.yaml"

	// defaultRootDirName is the journal root under the home directory
	// when no root is configured.
	defaultRootDirName = ".jn"
)

// Config is the jn configuration schema.
type Config struct {
	// Root overrides the journal root directory. Supports a leading ~.
	Root string `yaml:"root"`

	// DefaultWorkspace is the workspace used when none is given.
	DefaultWorkspace string `yaml:"default-workspace"`

	// Templates maps a file extension (without dot) to a template body
	// applied when creating an entry with that extension.
	Templates map[string]string `yaml:"templates"`

	// Export configures the export targets.
	Export ExportConfig `yaml:"export"`
}

// ExportConfig holds per-target export settings.
type ExportConfig struct {
	Zip   *ZipConfig `yaml:"zip"`
	AwsS3 *S3Config  `yaml:"aws-s3"`
}

// ZipConfig configures the zip export target.
type ZipConfig struct {
	// Dir is the output directory; defaults to the working directory.
	Dir string `yaml:"dir"`
}

// S3Config configures the aws-s3 export target.
type S3Config struct {
	// Bucket is the destination bucket. Required for S3 export.
	Bucket string `yaml:"bucket"`

	// Workspaces optionally restricts which workspaces are exported.
	Workspaces []string `yaml:"workspaces"`
}

// DefaultPath returns the expected configuration file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, configDirName, FileName), nil
}

// Load reads the configuration from path. A missing file is not an error;
// it yields the zero-value configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// JournalRoot returns the journal root directory, falling back to
// ~/.jn when no root is configured. A configured root may start with
// "~/" to refer to the home directory.
func (c *Config) JournalRoot() (string, error) {
	if c.Root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, defaultRootDirName), nil
	}

	root := c.Root
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: failed to resolve home directory: %w", err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	return root, nil
}

// Workspace returns the workspace to use: the explicit name if given,
// otherwise the configured default, otherwise DefaultWorkspace.
func (c *Config) Workspace(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c.DefaultWorkspace != "" {
		return c.DefaultWorkspace
	}
	return DefaultWorkspace
}

// Template returns the template body configured for an extension.
func (c *Config) Template(ext string) (string, bool) {
	body, ok := c.Templates[strings.TrimPrefix(ext, ".")]
	return body, ok
}
