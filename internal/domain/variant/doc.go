// Package variant contains core domain types for build-variant resolution.
//
// It defines the application identity, SDK constraints, signing credentials,
// per-variant optimization policy and the resolved Descriptor handed to the
// packager, together with the typed errors resolution can fail with.
package variant
