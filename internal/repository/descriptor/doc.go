// Package descriptor writes resolved build descriptors for the packager.
//
// Descriptors are encoded as YAML or as protobuf JSON and written to a stream
// or atomically to a file. An unsigned descriptor carries an explicit null
// signing slot so consumers can tell "unsigned" from "field missing".
package descriptor
