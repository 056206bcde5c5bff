package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	internalerrors "github.com/Schera-ole/jmx-telegraf/internal/errors"
)

// Config is the process-wide configuration of a run.
type Config struct {
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`

	OutputFile string `yaml:"output_file"`
	MetricList string `yaml:"metric_list"`

	// Hostname is the host tag of every emitted line
	Hostname string `yaml:"hostname"`

	// AdditionalTags is a comma separated list of key=value tags
	AdditionalTags string `yaml:"additional_tags"`

	IndexUnmappedFields bool `yaml:"index_unmapped_fields"`

	// Timeout bounds agent requests; zero leaves them unbounded
	Timeout time.Duration `yaml:"timeout"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	return &Config{
		LogFile:       "/tmp/telegraf_jmx.log",
		LogLevel:      "info",
		LogMaxSizeMB:  2,
		LogMaxBackups: 5,
		OutputFile:    "/tmp/telegraf_jmx.out",
		MetricList:    "telegraf_jmx.list",
		Hostname:      hostname,
	}
}

// Load builds the configuration from the defaults, the YAML file at fname
// (skipped when fname is empty) and the environment, in that order.
func Load(fname string) (*Config, error) {
	config := Default()

	if fname != "" {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", internalerrors.ErrInvalidConfig, fname, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	envStrVars := map[string]*string{
		"JMX_LOG_FILE":        &c.LogFile,
		"JMX_LOG_LEVEL":       &c.LogLevel,
		"JMX_OUTPUT_FILE":     &c.OutputFile,
		"JMX_METRIC_LIST":     &c.MetricList,
		"JMX_HOSTNAME":        &c.Hostname,
		"JMX_ADDITIONAL_TAGS": &c.AdditionalTags,
		"JMX_USERNAME":        &c.Username,
		"JMX_PASSWORD":        &c.Password,
	}

	for envVar, value := range envStrVars {
		if envValue, ok := os.LookupEnv(envVar); ok {
			*value = envValue
		}
	}

	if envValue := os.Getenv("JMX_INDEX_UNMAPPED_FIELDS"); envValue != "" {
		index, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("%w: JMX_INDEX_UNMAPPED_FIELDS: %w", internalerrors.ErrInvalidConfig, err)
		}
		c.IndexUnmappedFields = index
	}

	if envValue := os.Getenv("JMX_TIMEOUT"); envValue != "" {
		timeout, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("%w: JMX_TIMEOUT: %w", internalerrors.ErrInvalidConfig, err)
		}
		c.Timeout = timeout
	}
	return nil
}

// Validate checks the settings that would otherwise fail late in the run.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", internalerrors.ErrInvalidConfig, err)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("%w: output_file is empty", internalerrors.ErrInvalidConfig)
	}
	if c.MetricList == "" {
		return fmt.Errorf("%w: metric_list is empty", internalerrors.ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", internalerrors.ErrInvalidConfig)
	}
	for _, tag := range c.StaticTags() {
		if k, v, ok := strings.Cut(tag, "="); !ok || k == "" || v == "" {
			return fmt.Errorf("%w: additional tag %q is not key=value", internalerrors.ErrInvalidConfig, tag)
		}
	}
	return nil
}

// StaticTags splits AdditionalTags into tokens, dropping empty ones.
func (c *Config) StaticTags() []string {
	var tags []string
	for _, tag := range strings.Split(c.AdditionalTags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
