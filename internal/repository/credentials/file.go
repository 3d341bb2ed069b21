package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"

	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
)

// Recognized keys of the credentials file.
const (
	KeyAlias      = "keyAlias"
	KeyPassword   = "keyPassword"
	StoreFile     = "storeFile"
	StorePassword = "storePassword"
)

// DefaultFilename is the conventional name of the credentials file.
const DefaultFilename = "key.properties"

// loader reads properties the way java.util.Properties does: no ${key} expansion.
//
//nolint:gochecknoglobals // Read-only loader settings.
var loader = &properties.Loader{
	Encoding:         properties.UTF8,
	DisableExpansion: true,
}

// Source looks up signing credentials.
type Source interface {
	// TryLoad returns the credentials and true when the source exists,
	// nil and false when it does not, and an error when it exists but cannot be used.
	TryLoad(ctx context.Context) (*domain.SigningCredentials, bool, error)
}

// FileSource reads signing credentials from a properties file on disk.
type FileSource struct {
	// path is the filesystem location of the credentials file.
	path string
	// storeBaseDir resolves a relative storeFile entry.
	storeBaseDir string
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithStoreBaseDir sets the directory a relative storeFile is resolved against.
// By default it is the directory containing the credentials file.
func WithStoreBaseDir(dir string) Option {
	return func(s *FileSource) {
		if dir != "" {
			s.storeBaseDir = filepath.Clean(dir)
		}
	}
}

// NewFileSource creates a source for the credentials file at path.
func NewFileSource(path string, opts ...Option) *FileSource {
	if path == "" {
		path = DefaultFilename
	}

	path = filepath.Clean(path)

	source := &FileSource{
		path:         path,
		storeBaseDir: filepath.Dir(path),
	}

	for _, opt := range opts {
		opt(source)
	}

	return source
}

// Path returns the location of the credentials file.
func (s *FileSource) Path() string {
	return s.path
}

// TryLoad reads and parses the credentials file once.
func (s *FileSource) TryLoad(_ context.Context) (*domain.SigningCredentials, bool, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("read credentials file: %w", err)
	}

	creds, err := ParseBytes(contents, s.path)
	if err != nil {
		return nil, false, err
	}

	if !filepath.IsAbs(creds.StoreFile) {
		creds.StoreFile = filepath.Join(s.storeBaseDir, creds.StoreFile)
	}

	return creds, true, nil
}

// Parse decodes a Java properties document into credentials.
// All four recognized keys must be present and non-empty; other keys are ignored.
// The path is only used in error messages.
func Parse(r io.Reader, path string) (*domain.SigningCredentials, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	return ParseBytes(contents, path)
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(contents []byte, path string) (*domain.SigningCredentials, error) {
	values, err := loader.LoadBytes(contents)
	if err != nil {
		return nil, &domain.MalformedCredentialsError{
			Path: path,
			Err:  err,
		}
	}

	var missing []string

	get := func(key string) string {
		value, _ := values.Get(key)

		value = strings.TrimSpace(value)
		if value == "" {
			missing = append(missing, key)
		}

		return value
	}

	creds := &domain.SigningCredentials{
		KeyAlias:      get(KeyAlias),
		KeyPassword:   get(KeyPassword),
		StoreFile:     get(StoreFile),
		StorePassword: get(StorePassword),
	}

	if len(missing) > 0 {
		return nil, &domain.MalformedCredentialsError{
			Path:    path,
			Missing: missing,
		}
	}

	return creds, nil
}
