package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
)

const sampleConfig = `application:
  id: com.simlog.app
  name: SimLog
  version_code: 7
  version_name: 1.0.7
sdk:
  min: M
  target: 33
  compile: VanillaIceCream
variants:
  debug:
    minify: false
    shrink_resources: false
    debuggable: true
  release:
    minify: true
    shrink_resources: true
    proguard_files: [proguard-android-optimize.txt, proguard-rules.pro]
signing:
  credentials_file: key.properties
`

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()

	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(contents), DefaultFilePermissions))

	return path
}

// TestValidate checks required fields and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing config.
	require.Error(t, Validate(nil))

	// Missing application ID.
	cfg := Default()
	cfg.Application.ID = ""
	require.Error(t, Validate(cfg))

	// Single-segment application ID.
	cfg = Default()
	cfg.Application.ID = "simlog"
	require.Error(t, Validate(cfg))

	// Segment starting with a digit.
	cfg = Default()
	cfg.Application.ID = "com.1simlog.app"
	require.Error(t, Validate(cfg))

	// Missing display name.
	cfg = Default()
	cfg.Application.Name = " "
	require.Error(t, Validate(cfg))

	// Missing SDK level.
	cfg = Default()
	cfg.Sdk.Target = 0
	require.ErrorContains(t, Validate(cfg), "sdk target level")

	// Missing SDK levels are reported in declaration order.
	for i := 0; i < 10; i++ {
		cfg = Default()
		cfg.Sdk.Compile = 0
		cfg.Sdk.Min = 0
		require.ErrorContains(t, Validate(cfg), "sdk min level")
	}

	// Version code out of range.
	cfg = Default()
	cfg.Application.VersionCode = MaxVersionCode + 1
	require.ErrorContains(t, Validate(cfg), "must be 0 (unset) or between 1 and")

	cfg = Default()
	cfg.Application.VersionCode = -1
	require.Error(t, Validate(cfg))

	// Zero version code is taken from the Flutter project later.
	cfg = Default()
	cfg.Application.VersionCode = 0
	require.NoError(t, Validate(cfg))

	// SDK ordering is not a config concern.
	cfg = Default()
	cfg.Sdk.Target = 36
	require.NoError(t, Validate(cfg))
}

// TestLoad_ParsesCodenamesAndPaths verifies codename levels and path resolution against the config directory.
func TestLoad_ParsesCodenamesAndPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(writeConfig(t, dir, sampleConfig))
	require.NoError(t, err)

	static := cfg.Static()
	require.Equal(t, domain.SdkConstraints{Min: 23, Target: 33, Compile: 35}, static.Sdk)
	require.Equal(t, "com.simlog.app", static.Identity.Namespace)
	require.Equal(t, 7, static.Identity.VersionCode)
	require.True(t, static.Policies.Release.MinifyEnabled)
	require.True(t, static.Policies.Release.ShrinkResources)
	require.Equal(t, []string{"proguard-android-optimize.txt", "proguard-rules.pro"}, static.Policies.Release.ProguardFiles)
	require.True(t, static.Policies.Debug.Debuggable)
	require.Nil(t, static.Policies.Debug.ProguardFiles)

	require.Equal(t, filepath.Join(dir, "key.properties"), cfg.CredentialsPath())
	require.Empty(t, cfg.StoreBaseDir())
}

// TestLoad_UnknownField ensures strict decoding rejects unknown keys, including unknown variants.
func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()

	contents := strings.Replace(sampleConfig, "signing:", "  profile:\n    minify: true\nsigning:", 1)

	_, err := Load(writeConfig(t, t.TempDir(), contents))
	require.ErrorIs(t, err, ErrUnknownConfigField)
}

// TestLoad_UnknownApiLevel rejects codenames missing from the table.
func TestLoad_UnknownApiLevel(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("sdk:\n  min: Zebra\n"))
	require.ErrorIs(t, err, domain.ErrUnknownApiLevel)
}

// TestLoad_FlutterVersion fills an unset version from pubspec.yaml next to the Gradle root.
func TestLoad_FlutterVersion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	androidDir := filepath.Join(root, "android")
	require.NoError(t, os.MkdirAll(androidDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte("name: simlog\nversion: 2.3.0+41\n"), 0o600))

	contents := `application:
  id: com.simlog.app
  name: SimLog
sdk: {min: 23, target: 33, compile: 35}
variants:
  debug: {minify: false, shrink_resources: false}
  release: {minify: false, shrink_resources: false}
`

	cfg, err := Load(writeConfig(t, androidDir, contents))
	require.NoError(t, err)
	require.Equal(t, 41, cfg.Application.VersionCode)
	require.Equal(t, "2.3.0", cfg.Application.VersionName)
}

// TestLoad_VersionNotSet fails when no version source exists.
func TestLoad_VersionNotSet(t *testing.T) {
	t.Parallel()

	contents := `application: {id: com.simlog.app, name: SimLog}
sdk: {min: 23, target: 33, compile: 35}
variants:
  debug: {minify: false, shrink_resources: false}
  release: {minify: false, shrink_resources: false}
`

	_, err := Load(writeConfig(t, t.TempDir(), contents))
	require.ErrorIs(t, err, ErrVersionNotSet)
}

// TestSaveLoadRoundtrip ensures declarations are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "build-variant.yaml")

	cfg := Default()
	cfg.Application.VersionCode = 3
	cfg.Application.VersionName = "1.0.3"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Static(), loaded.Static())
	require.Equal(t, filepath.Join(dir, "app"), loaded.StoreBaseDir())

	// Saving nil is rejected.
	require.Error(t, Save(path, nil))
}
