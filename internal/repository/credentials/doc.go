// Package credentials implements lookup of release signing credentials.
//
// The FileSource reads a key.properties style file on demand and exposes a
// Source interface that the resolver depends on. A missing file is reported
// as "not found", never as an error.
package credentials
