// Package resolver turns static build declarations, an optional signing
// credentials source and a variant selection into a build descriptor.
//
// Resolve is the pure core: no caching, no state between calls. Run wraps it
// with config loading, logging and descriptor output for the CLI.
package resolver
