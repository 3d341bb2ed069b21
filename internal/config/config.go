package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
	"github.com/oshokin/variant-resolver/internal/repository/credentials"
	"github.com/oshokin/variant-resolver/internal/repository/flutter"
)

// Config holds the static declarations of the application build.
type Config struct {
	// Application identifies the application.
	Application Application `yaml:"application"`
	// Sdk declares the API level triple.
	Sdk Sdk `yaml:"sdk"`
	// Toolchain carries variant-independent build settings.
	Toolchain Toolchain `yaml:"toolchain,omitempty"`
	// Variants holds the optimization policy of each variant.
	Variants Variants `yaml:"variants"`
	// Signing locates the optional credentials file.
	Signing Signing `yaml:"signing,omitempty"`
	// Flutter locates the files the version is read from when Application leaves it unset.
	Flutter Flutter `yaml:"flutter,omitempty"`

	// dir is the directory of the loaded file. Relative paths resolve against it.
	dir string
}

// Application declares the application identity.
type Application struct {
	ID          string `yaml:"id"`
	Namespace   string `yaml:"namespace,omitempty"`
	Name        string `yaml:"name"`
	VersionCode int    `yaml:"version_code,omitempty"`
	VersionName string `yaml:"version_name,omitempty"`
}

// Sdk declares the (minimum, target, compile) API levels.
type Sdk struct {
	Min     ApiLevel `yaml:"min"`
	Target  ApiLevel `yaml:"target"`
	Compile ApiLevel `yaml:"compile"`
}

// Toolchain carries build settings shared by all variants.
type Toolchain struct {
	NdkVersion                    string     `yaml:"ndk_version,omitempty"`
	JavaVersion                   string     `yaml:"java_version,omitempty"`
	MultiDex                      bool       `yaml:"multidex,omitempty"`
	TestInstrumentationRunner     string     `yaml:"test_instrumentation_runner,omitempty"`
	VectorDrawablesSupportLibrary bool       `yaml:"vector_drawables_support_library,omitempty"`
	ResValues                     []ResValue `yaml:"res_values,omitempty"`
}

// ResValue declares a generated resource value.
type ResValue struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// VariantPolicy is the optimization policy of one variant.
type VariantPolicy struct {
	Minify          bool     `yaml:"minify"`
	ShrinkResources bool     `yaml:"shrink_resources"`
	Debuggable      bool     `yaml:"debuggable,omitempty"`
	ProguardFiles   []string `yaml:"proguard_files,omitempty"`
}

// Variants lists the policy of each variant explicitly.
type Variants struct {
	Debug   VariantPolicy `yaml:"debug"`
	Release VariantPolicy `yaml:"release"`
}

// Signing locates the signing credentials file.
type Signing struct {
	// CredentialsFile is the key.properties path.
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	// StoreBaseDir resolves a relative storeFile; defaults to the credentials file directory.
	StoreBaseDir string `yaml:"store_base_dir,omitempty"`
}

// Flutter locates the Flutter version sources.
type Flutter struct {
	Pubspec         string `yaml:"pubspec,omitempty"`
	LocalProperties string `yaml:"local_properties,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for build declarations.
	DefaultConfigFilename = "build-variant.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// MaxVersionCode is the largest version code app stores accept.
	MaxVersionCode = 2_100_000_000
)

var (
	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	ErrUnknownConfigField = errors.New("unknown config field")
	// ErrVersionNotSet is returned when neither the config nor the Flutter project declare a version.
	ErrVersionNotSet = errors.New("application version is not set")

	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errApplicationIDRequired is returned when the application ID is missing.
	errApplicationIDRequired = errors.New("application id must be provided")
	// errApplicationNameRequired is returned when the display name is missing.
	errApplicationNameRequired = errors.New("application name must be provided")
	// errInvalidApplicationID is returned for IDs that are not valid Java package names.
	errInvalidApplicationID = errors.New("invalid application id")

	// applicationIDPattern matches two or more dot-separated segments starting with a letter.
	applicationIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)+$`)
)

// Default returns the declarations of the SimLog application.
func Default() *Config {
	return &Config{
		Application: Application{
			ID:        "com.simlog.app",
			Namespace: "com.simlog.app",
			Name:      "SimLog",
		},
		Sdk: Sdk{
			Min:     23,
			Target:  33,
			Compile: 35,
		},
		Toolchain: Toolchain{
			NdkVersion:                    "27.0.12077973",
			JavaVersion:                   "17",
			MultiDex:                      true,
			TestInstrumentationRunner:     "androidx.test.runner.AndroidJUnitRunner",
			VectorDrawablesSupportLibrary: true,
			ResValues: []ResValue{
				{Type: "string", Name: "app_name", Value: "SimLog"},
			},
		},
		Variants: Variants{
			Debug: VariantPolicy{
				Debuggable: true,
			},
			Release: VariantPolicy{
				ProguardFiles: []string{"proguard-android-optimize.txt", "proguard-rules.pro"},
			},
		},
		Signing: Signing{
			CredentialsFile: credentials.DefaultFilename,
			StoreBaseDir:    "app",
		},
		Flutter: Flutter{
			Pubspec:         filepath.Join("..", flutter.DefaultPubspecFilename),
			LocalProperties: flutter.DefaultLocalPropertiesFilename,
		},
	}
}

// Load reads declarations from the provided path, fills the version from the
// Flutter project when unset, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	path = filepath.Clean(path)

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg, err := Parse(contents)
	if err != nil {
		return nil, err
	}

	cfg.dir = filepath.Dir(path)

	if err = cfg.fillVersion(); err != nil {
		return nil, err
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML declarations, rejecting unknown keys.
// Paths in the result resolve against the working directory.
func Parse(contents []byte) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unmarshal settings: empty document")
		}

		if strings.Contains(err.Error(), "not found in type") {
			return nil, fmt.Errorf("unmarshal settings: %w: %w", ErrUnknownConfigField, err)
		}

		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	cfg.dir = "."

	return &cfg, nil
}

// Save writes declarations to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided declarations for required fields and formatting.
// SDK ordering is left to resolution; only positivity of each level is checked here.
// Version fields are checked when set.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	app := cfg.Application

	if app.ID == "" {
		return errApplicationIDRequired
	}

	if !applicationIDPattern.MatchString(app.ID) {
		return fmt.Errorf("%q: %w", app.ID, errInvalidApplicationID)
	}

	if app.Namespace != "" && !applicationIDPattern.MatchString(app.Namespace) {
		return fmt.Errorf("namespace %q: %w", app.Namespace, errInvalidApplicationID)
	}

	if strings.TrimSpace(app.Name) == "" {
		return errApplicationNameRequired
	}

	// Zero leaves the version code to the Flutter project.
	if app.VersionCode < 0 || app.VersionCode > MaxVersionCode {
		return fmt.Errorf("version code %d: must be 0 (unset) or between 1 and %d", app.VersionCode, MaxVersionCode)
	}

	levels := []struct {
		name  string
		level ApiLevel
	}{
		{name: "min", level: cfg.Sdk.Min},
		{name: "target", level: cfg.Sdk.Target},
		{name: "compile", level: cfg.Sdk.Compile},
	}

	for _, l := range levels {
		if l.level <= 0 {
			return fmt.Errorf("sdk %s level must be positive, got %d", l.name, l.level)
		}
	}

	for i, rv := range cfg.Toolchain.ResValues {
		if rv.Type == "" || rv.Name == "" {
			return fmt.Errorf("res_values[%d]: type and name must be provided", i)
		}
	}

	return nil
}

// Static converts the declarations into resolver input.
func (c *Config) Static() domain.StaticConfig {
	namespace := c.Application.Namespace
	if namespace == "" {
		namespace = c.Application.ID
	}

	resValues := make([]domain.ResValue, 0, len(c.Toolchain.ResValues))
	for _, rv := range c.Toolchain.ResValues {
		resValues = append(resValues, domain.ResValue{
			Type:  rv.Type,
			Name:  rv.Name,
			Value: rv.Value,
		})
	}

	return domain.StaticConfig{
		Identity: domain.ApplicationIdentity{
			ID:          c.Application.ID,
			Namespace:   namespace,
			Name:        c.Application.Name,
			VersionCode: c.Application.VersionCode,
			VersionName: c.Application.VersionName,
		},
		Sdk: domain.SdkConstraints{
			Min:     int(c.Sdk.Min),
			Target:  int(c.Sdk.Target),
			Compile: int(c.Sdk.Compile),
		},
		Policies: domain.Policies{
			Debug:   c.Variants.Debug.optimization(),
			Release: c.Variants.Release.optimization(),
		},
		Toolchain: domain.Toolchain{
			NdkVersion:                    c.Toolchain.NdkVersion,
			JavaVersion:                   c.Toolchain.JavaVersion,
			MultiDex:                      c.Toolchain.MultiDex,
			TestInstrumentationRunner:     c.Toolchain.TestInstrumentationRunner,
			VectorDrawablesSupportLibrary: c.Toolchain.VectorDrawablesSupportLibrary,
			ResValues:                     resValues,
		},
	}
}

// CredentialsPath returns the credentials file location relative to the config file.
func (c *Config) CredentialsPath() string {
	name := c.Signing.CredentialsFile
	if name == "" {
		name = credentials.DefaultFilename
	}

	return c.resolve(name)
}

// StoreBaseDir returns the directory relative store files resolve against,
// or an empty string for the credentials file directory.
func (c *Config) StoreBaseDir() string {
	if c.Signing.StoreBaseDir == "" {
		return ""
	}

	return c.resolve(c.Signing.StoreBaseDir)
}

// fillVersion reads version fields the declarations leave unset from the Flutter project.
func (c *Config) fillVersion() error {
	app := &c.Application
	if app.VersionCode > 0 && app.VersionName != "" {
		return nil
	}

	pubspec := c.Flutter.Pubspec
	if pubspec == "" {
		pubspec = filepath.Join("..", flutter.DefaultPubspecFilename)
	}

	localProperties := c.Flutter.LocalProperties
	if localProperties == "" {
		localProperties = flutter.DefaultLocalPropertiesFilename
	}

	version, err := flutter.Load(c.resolve(pubspec), c.resolve(localProperties))
	if err != nil {
		if errors.Is(err, flutter.ErrNotFound) {
			return ErrVersionNotSet
		}

		return fmt.Errorf("load flutter version: %w", err)
	}

	if app.VersionCode <= 0 {
		app.VersionCode = version.Code
	}

	if app.VersionName == "" {
		app.VersionName = version.Name
	}

	if app.VersionCode <= 0 || app.VersionName == "" {
		return ErrVersionNotSet
	}

	return nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return filepath.Clean(path)
	}

	return filepath.Join(c.dir, path)
}

func (p VariantPolicy) optimization() domain.Optimization {
	var files []string
	if len(p.ProguardFiles) > 0 {
		files = append(files, p.ProguardFiles...)
	}

	return domain.Optimization{
		MinifyEnabled:   p.Minify,
		ShrinkResources: p.ShrinkResources,
		Debuggable:      p.Debuggable,
		ProguardFiles:   files,
	}
}
