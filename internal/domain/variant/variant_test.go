package variant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseVariant verifies case-insensitive parsing and rejection of unknown names.
func TestParseVariant(t *testing.T) {
	t.Parallel()

	v, err := ParseVariant(" Release ")
	require.NoError(t, err)
	require.Equal(t, Release, v)

	v, err = ParseVariant("debug")
	require.NoError(t, err)
	require.Equal(t, Debug, v)

	_, err = ParseVariant("profile")
	require.ErrorIs(t, err, ErrUnknownVariant)
}

// TestVariantCanSign checks that only release carries signing credentials.
func TestVariantCanSign(t *testing.T) {
	t.Parallel()

	require.True(t, Release.CanSign())
	require.False(t, Debug.CanSign())
	require.False(t, Variant("profile").CanSign())
}

// TestSdkConstraintsValidate covers ordering of the API level triple.
func TestSdkConstraintsValidate(t *testing.T) {
	t.Parallel()

	valid := []SdkConstraints{
		{Min: 23, Target: 33, Compile: 35},
		{Min: 21, Target: 21, Compile: 21},
		{Min: 1, Target: 35, Compile: 35},
	}
	for _, c := range valid {
		require.NoError(t, c.Validate(), "%+v", c)
	}

	invalid := []SdkConstraints{
		{Min: 23, Target: 36, Compile: 35},
		{Min: 34, Target: 33, Compile: 35},
		{Min: 36, Target: 35, Compile: 34},
	}
	for _, c := range invalid {
		err := c.Validate()

		var constraintErr *InvalidConstraintError
		require.True(t, errors.As(err, &constraintErr), "%+v", c)
		require.Equal(t, c, constraintErr.Constraints)
	}
}

// TestInvalidConstraintErrorMessage ensures the message names the violated pair.
func TestInvalidConstraintErrorMessage(t *testing.T) {
	t.Parallel()

	err := SdkConstraints{Min: 23, Target: 36, Compile: 35}.Validate()
	require.EqualError(t, err, "invalid sdk constraints: target sdk 36 is greater than compile sdk 35")

	err = SdkConstraints{Min: 34, Target: 33, Compile: 35}.Validate()
	require.EqualError(t, err, "invalid sdk constraints: min sdk 34 is greater than target sdk 33")
}

// TestParseApiLevel verifies numeric and codename levels.
func TestParseApiLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"23":              23,
		"M":               23,
		"tiramisu":        33,
		"VanillaIceCream": 35,
		" 35 ":            35,
	}
	for in, want := range cases {
		got, err := ParseApiLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseApiLevel("Zebra")
	require.ErrorIs(t, err, ErrUnknownApiLevel)

	_, err = ParseApiLevel("0")
	require.Error(t, err)
}

// TestCloneHelpers verifies nested slices and credentials are deep-copied.
func TestCloneHelpers(t *testing.T) {
	t.Parallel()

	d := &Descriptor{
		Identity: ApplicationIdentity{ID: "com.simlog.app", Name: "SimLog", VersionCode: 1, VersionName: "1.0.0"},
		Sdk:      SdkConstraints{Min: 23, Target: 33, Compile: 35},
		Variant:  Release,
		Signing: &SigningCredentials{
			KeyAlias:      "upload",
			KeyPassword:   "key-secret",
			StoreFile:     "/keys/upload.jks",
			StorePassword: "store-secret",
		},
		Optimization: Optimization{ProguardFiles: []string{"proguard-rules.pro"}},
		Toolchain:    Toolchain{ResValues: []ResValue{{Type: "string", Name: "app_name", Value: "SimLog"}}},
	}

	signing := d.Signing.Clone()
	require.Equal(t, d.Signing, signing)
	require.NotSame(t, d.Signing, signing)

	optimization := d.Optimization.Clone()
	optimization.ProguardFiles[0] = "other.pro"
	toolchain := d.Toolchain.Clone()
	toolchain.ResValues[0].Value = "Other"
	require.Equal(t, "proguard-rules.pro", d.Optimization.ProguardFiles[0])
	require.Equal(t, "SimLog", d.Toolchain.ResValues[0].Value)

	require.True(t, d.Signed())
	d.Signing = nil
	require.False(t, d.Signed())
	require.Nil(t, (*SigningCredentials)(nil).Clone())
}
