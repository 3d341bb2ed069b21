package flutter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPubspecFilename is the Flutter project manifest.
	DefaultPubspecFilename = "pubspec.yaml"
	// DefaultLocalPropertiesFilename is the Gradle local properties file.
	DefaultLocalPropertiesFilename = "local.properties"

	// versionNameKey and versionCodeKey are written by the Flutter tool into local.properties.
	versionNameKey = "flutter.versionName"
	versionCodeKey = "flutter.versionCode"

	// defaultVersionCode is used when pubspec.yaml declares no build number.
	defaultVersionCode = 1
)

// ErrNotFound is returned when neither pubspec.yaml nor local.properties exist.
var ErrNotFound = errors.New("flutter version sources not found")

// Version is the application version declared by the Flutter project.
type Version struct {
	// Name is the user-facing version string.
	Name string
	// Code is the numeric build number.
	Code int
}

// pubspec is the subset of pubspec.yaml the loader needs.
type pubspec struct {
	Version string `yaml:"version"`
}

// Load reads the version from pubspecPath and applies overrides from localPropertiesPath.
// Either file may be missing; ErrNotFound is returned only when both are.
func Load(pubspecPath, localPropertiesPath string) (*Version, error) {
	var (
		version Version
		found   bool
	)

	if pubspecPath != "" {
		ok, err := loadPubspec(filepath.Clean(pubspecPath), &version)
		if err != nil {
			return nil, err
		}

		found = found || ok
	}

	if localPropertiesPath != "" {
		ok, err := loadLocalProperties(filepath.Clean(localPropertiesPath), &version)
		if err != nil {
			return nil, err
		}

		found = found || ok
	}

	if !found {
		return nil, ErrNotFound
	}

	return &version, nil
}

// ParseVersion splits a pubspec version string ("1.2.3+45") into name and code.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, errors.New("empty version")
	}

	name, build, hasBuild := strings.Cut(s, "+")
	if !hasBuild {
		return Version{Name: name, Code: defaultVersionCode}, nil
	}

	code, err := strconv.Atoi(build)
	if err != nil || code <= 0 {
		return Version{}, fmt.Errorf("invalid build number %q in version %q", build, s)
	}

	return Version{Name: name, Code: code}, nil
}

func loadPubspec(path string, version *Version) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("read pubspec: %w", err)
	}

	var spec pubspec
	if err = yaml.Unmarshal(contents, &spec); err != nil {
		return false, fmt.Errorf("unmarshal pubspec: %w", err)
	}

	if spec.Version == "" {
		return true, nil
	}

	parsed, err := ParseVersion(spec.Version)
	if err != nil {
		return false, fmt.Errorf("pubspec %s: %w", path, err)
	}

	*version = parsed

	return true, nil
}

func loadLocalProperties(path string, version *Version) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("read local properties: %w", err)
	}

	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

	values, err := loader.LoadBytes(contents)
	if err != nil {
		return false, fmt.Errorf("parse local properties: %w", err)
	}

	if name := strings.TrimSpace(values.GetString(versionNameKey, "")); name != "" {
		version.Name = name
	}

	if raw := strings.TrimSpace(values.GetString(versionCodeKey, "")); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil || code <= 0 {
			return false, fmt.Errorf("local properties %s: invalid %s %q", path, versionCodeKey, raw)
		}

		version.Code = code
	}

	return true, nil
}
