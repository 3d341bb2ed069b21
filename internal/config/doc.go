// Package config defines the static build declarations of the application and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the application identity, SDK levels, toolchain
// settings, per-variant optimization policy and the locations of the signing
// credentials and Flutter version sources. Version fields left unset are
// filled from the Flutter project during Load.
package config
