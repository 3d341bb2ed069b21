package variant

import (
	"fmt"
	"slices"
)

// ApplicationIdentity identifies the application being built.
type ApplicationIdentity struct {
	// ID is the unique application identifier (Android applicationId).
	ID string
	// Namespace is the package used for generated R and BuildConfig classes.
	Namespace string
	// Name is the human-readable display name.
	Name string
	// VersionCode is the monotonically increasing numeric version.
	VersionCode int
	// VersionName is the user-facing version string.
	VersionName string
}

// SdkConstraints is the (minimum, target, compile) API level triple.
type SdkConstraints struct {
	Min     int
	Target  int
	Compile int
}

// Validate checks that Min <= Target <= Compile.
func (c SdkConstraints) Validate() error {
	if c.Min > c.Target || c.Target > c.Compile {
		return &InvalidConstraintError{Constraints: c}
	}

	return nil
}

// SigningCredentials holds the key material used to sign a release artifact.
type SigningCredentials struct {
	// KeyAlias names the key inside the certificate store.
	KeyAlias string
	// KeyPassword unlocks the key.
	KeyPassword string
	// StoreFile is the path to the certificate store (keystore).
	StoreFile string
	// StorePassword unlocks the certificate store.
	StorePassword string
}

// Clone returns a copy of the credentials.
func (c *SigningCredentials) Clone() *SigningCredentials {
	if c == nil {
		return nil
	}

	cloned := *c

	return &cloned
}

// Optimization is the per-variant optimization policy.
type Optimization struct {
	// MinifyEnabled turns on code shrinking.
	MinifyEnabled bool
	// ShrinkResources turns on resource shrinking.
	ShrinkResources bool
	// Debuggable marks the artifact as debuggable.
	Debuggable bool
	// ProguardFiles lists shrinker rule files in application order.
	ProguardFiles []string
}

// Clone returns a deep copy of the policy.
func (o Optimization) Clone() Optimization {
	o.ProguardFiles = slices.Clone(o.ProguardFiles)

	return o
}

// Policies holds the optimization policy of every variant.
// Each variant is configured on its own; nothing is inherited.
type Policies struct {
	Debug   Optimization
	Release Optimization
}

// For returns the policy of the given variant.
func (p Policies) For(v Variant) (Optimization, error) {
	switch v {
	case Debug:
		return p.Debug.Clone(), nil
	case Release:
		return p.Release.Clone(), nil
	default:
		return Optimization{}, fmt.Errorf("%q: %w", v, ErrUnknownVariant)
	}
}

// StaticConfig is the declarative input to resolution.
type StaticConfig struct {
	Identity  ApplicationIdentity
	Sdk       SdkConstraints
	Policies  Policies
	Toolchain Toolchain
}

// ResValue is a generated Android resource value.
type ResValue struct {
	Type  string
	Name  string
	Value string
}

// Toolchain carries build settings that do not depend on the variant.
type Toolchain struct {
	// NdkVersion pins the native development kit.
	NdkVersion string
	// JavaVersion is the Java source/target compatibility and JVM target.
	JavaVersion string
	// MultiDex enables multidex packaging.
	MultiDex bool
	// TestInstrumentationRunner is the instrumentation runner class.
	TestInstrumentationRunner string
	// VectorDrawablesSupportLibrary enables the vector drawable support library.
	VectorDrawablesSupportLibrary bool
	// ResValues are generated resource values.
	ResValues []ResValue
}

// Clone returns a deep copy of the toolchain settings.
func (t Toolchain) Clone() Toolchain {
	t.ResValues = slices.Clone(t.ResValues)

	return t
}

// Descriptor is the fully resolved build configuration for one variant.
type Descriptor struct {
	Identity     ApplicationIdentity
	Sdk          SdkConstraints
	Variant      Variant
	Signing      *SigningCredentials
	Optimization Optimization
	Toolchain    Toolchain
}

// Signed reports whether signing credentials are attached.
func (d *Descriptor) Signed() bool {
	return d.Signing != nil
}
