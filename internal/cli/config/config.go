package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/spring-attic/spring-native-aot/internal/compiler/processors"
)

// FileName is the configuration file looked up in the project directory
const FileName = "aotgen.yml"

// EnvPrefix prefixes the environment variables overriding configuration keys,
// e.g. AOTGEN_OUTPUT_PACKAGE
const EnvPrefix = "AOTGEN"

// Config represents the aotgen configuration
type Config struct {
	ProjectName string          `mapstructure:"project_name"`
	Snapshot    string          `mapstructure:"snapshot" validate:"required"`
	Hints       []string        `mapstructure:"hints"`
	Output      OutputConfig    `mapstructure:"output"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Log         LogConfig       `mapstructure:"log"`
	Watch       WatchConfig     `mapstructure:"watch"`
}

// OutputConfig locates the generated sources and native configuration
type OutputConfig struct {
	Dir       string `mapstructure:"dir" validate:"required"`
	Package   string `mapstructure:"package" validate:"required,javapackage"`
	ClassName string `mapstructure:"class_name" validate:"required,javaidentifier"`
}

// GeneratorConfig tunes bean selection and native configuration
type GeneratorConfig struct {
	ExcludeTypes []string `mapstructure:"exclude_types"`
	ExcludeNames []string `mapstructure:"exclude_names"`
	// nil keeps the default infrastructure bean names
	InfrastructureBeans []string                 `mapstructure:"infrastructure_beans"`
	Attributes          []string                 `mapstructure:"attributes"`
	FeatureFlags        []processors.FeatureFlag `mapstructure:"feature_flags" validate:"dive"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
}

// Defaults lists the value of every key when neither the file nor the
// environment sets it
var Defaults = map[string]interface{}{
	"snapshot":          "snapshot.yml",
	"output.dir":        "build/aot",
	"output.package":    "com.example",
	"output.class_name": "ContextBootstrapInitializer",
	"log.level":         "info",
	"log.format":        "console",
	"watch.debounce":    300 * time.Millisecond,
}

var (
	validate       = newValidator()
	javaIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("javapackage", func(fl validator.FieldLevel) bool {
		return IsJavaPackage(fl.Field().String())
	})
	v.RegisterValidation("javaidentifier", func(fl validator.FieldLevel) bool {
		return javaIdentifier.MatchString(fl.Field().String())
	})
	return v
}

// IsJavaPackage reports whether name is a dot-separated list of identifiers
func IsJavaPackage(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if !javaIdentifier.MatchString(part) {
			return false
		}
	}
	return true
}

// Load loads the configuration from path, or from aotgen.yml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate checks the configuration against its struct tags
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, e.Param(), e.Value())
	case "javapackage":
		return fmt.Sprintf("%s must be a Java package name, got %q", field, e.Value())
	case "javaidentifier":
		return fmt.Sprintf("%s must be a Java identifier, got %q", field, e.Value())
	default:
		return fmt.Sprintf("%s failed the %s check", field, e.Tag())
	}
}

// Write saves cfg as a YAML configuration file at path
func Write(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	v := viper.New()
	v.Set("project_name", cfg.ProjectName)
	v.Set("snapshot", cfg.Snapshot)
	v.Set("hints", cfg.Hints)
	v.Set("output.dir", cfg.Output.Dir)
	v.Set("output.package", cfg.Output.Package)
	v.Set("output.class_name", cfg.Output.ClassName)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("watch.debounce", cfg.Watch.Debounce.String())
	if len(cfg.Generator.ExcludeTypes) > 0 {
		v.Set("generator.exclude_types", cfg.Generator.ExcludeTypes)
	}
	if len(cfg.Generator.ExcludeNames) > 0 {
		v.Set("generator.exclude_names", cfg.Generator.ExcludeNames)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FindProjectRoot walks up from the working directory to the first directory
// holding an aotgen.yml or aotgen.yaml file
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{FileName, "aotgen.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an aotgen project (no %s found)", FileName)
		}
		dir = parent
	}
}

// InputFiles returns the snapshot and hint files relative to baseDir
func (c *Config) InputFiles(baseDir string) []string {
	files := []string{resolve(baseDir, c.Snapshot)}
	for _, h := range c.Hints {
		files = append(files, resolve(baseDir, h))
	}
	return files
}

func resolve(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
