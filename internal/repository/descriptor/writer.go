package descriptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/renameio/v2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
	"github.com/oshokin/variant-resolver/internal/logger"
)

// Format selects the descriptor encoding.
type Format string

const (
	// FormatYAML encodes descriptors as YAML.
	FormatYAML Format = "yaml"
	// FormatJSON encodes descriptors as protobuf JSON.
	FormatJSON Format = "json"
)

// DefaultFileMode restricts descriptor files: they carry signing passwords.
const DefaultFileMode = 0o600

var (
	// ErrUnknownFormat is returned for an unsupported encoding name.
	ErrUnknownFormat = errors.New("unknown descriptor format")
	// errDescriptorIsNotSet is returned when a nil descriptor is provided.
	errDescriptorIsNotSet = errors.New("descriptor is not set")
)

// ParseFormat converts user input into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Writer encodes descriptors in one format.
type Writer struct {
	// format is the encoding used by Encode.
	format Format
}

// NewWriter creates a writer for the given format.
func NewWriter(format Format) (*Writer, error) {
	parsed, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	return &Writer{format: parsed}, nil
}

// Encode renders the descriptor.
func (w *Writer) Encode(d *domain.Descriptor) ([]byte, error) {
	if d == nil {
		return nil, errDescriptorIsNotSet
	}

	doc := fromDomain(d)

	switch w.format {
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode descriptor: %w", err)
		}

		return data, nil
	case FormatJSON:
		st, err := structpb.NewStruct(doc.toMap())
		if err != nil {
			return nil, fmt.Errorf("encode descriptor: %w", err)
		}

		marshalOptions := protojson.MarshalOptions{
			Multiline:       true,
			Indent:          "  ",
			EmitUnpopulated: true,
		}

		data, err := marshalOptions.Marshal(st)
		if err != nil {
			return nil, fmt.Errorf("encode descriptor: %w", err)
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%q: %w", w.format, ErrUnknownFormat)
	}
}

// Write encodes the descriptor to out.
func (w *Writer) Write(out io.Writer, d *domain.Descriptor) error {
	data, err := w.Encode(d)
	if err != nil {
		return err
	}

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}

	return nil
}

// WriteFile encodes the descriptor and atomically replaces the file at path.
func (w *Writer) WriteFile(ctx context.Context, path string, d *domain.Descriptor) error {
	data, err := w.Encode(d)
	if err != nil {
		return err
	}

	// renameio handles temp file creation, fsync, atomic rename and cleanup on error.
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(DefaultFileMode))
	if err != nil {
		return fmt.Errorf("create pending descriptor file: %w", err)
	}

	defer func() {
		if cleanupErr := pendingFile.Cleanup(); cleanupErr != nil {
			logger.DebugKV(ctx, "Cleanup pending descriptor file", "error", cleanupErr)
		}
	}()

	if _, err = pendingFile.Write(data); err != nil {
		return fmt.Errorf("write descriptor data: %w", err)
	}

	if err = pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace descriptor file: %w", err)
	}

	return nil
}
