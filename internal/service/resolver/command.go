package resolver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/variant-resolver/internal/config"
	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
	"github.com/oshokin/variant-resolver/internal/logger"
	"github.com/oshokin/variant-resolver/internal/repository/credentials"
	"github.com/oshokin/variant-resolver/internal/repository/descriptor"
)

// StdoutPath selects standard output as the descriptor destination.
const StdoutPath = "-"

// Options contains inputs for the resolver entry point.
type Options struct {
	// ConfigPath is the path to the build declarations YAML.
	ConfigPath string
	// CredentialsPath overrides the credentials file named by the declarations.
	CredentialsPath string
	// Variant is the build variant name (debug or release).
	Variant string
	// OutputPath is where the descriptor is written; empty or "-" means Stdout.
	OutputPath string
	// Format is the descriptor encoding (yaml or json).
	Format string
	// RequireSigning fails release builds that have no credentials.
	RequireSigning bool
	// Stdout receives the descriptor when no output file is set. Defaults to os.Stdout.
	Stdout io.Writer
}

// Run resolves the descriptor for the selected variant and writes it for the packager.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "variant-resolver")

	v, err := domain.ParseVariant(opts.Variant)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = string(descriptor.FormatYAML)
	}

	parsedFormat, err := descriptor.ParseFormat(format)
	if err != nil {
		return err
	}

	writer, err := descriptor.NewWriter(parsedFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load build declarations: %w", err)
	}

	credentialsPath := cfg.CredentialsPath()
	if opts.CredentialsPath != "" {
		credentialsPath = opts.CredentialsPath
	}

	ctx = logger.WithKV(ctx, "variant", v.String())

	source := credentials.NewFileSource(credentialsPath, credentials.WithStoreBaseDir(cfg.StoreBaseDir()))

	d, err := Resolve(ctx, v, cfg.Static(), source, Policy{RequireSigning: opts.RequireSigning})
	if err != nil {
		return fmt.Errorf("resolve %s variant: %w", v, err)
	}

	logDescriptor(ctx, d, source.Path())

	if err = ctx.Err(); err != nil {
		return err
	}

	if opts.OutputPath == "" || opts.OutputPath == StdoutPath {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}

		return writer.Write(out, d)
	}

	if err = writer.WriteFile(ctx, opts.OutputPath, d); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Descriptor written", "path", opts.OutputPath, "format", parsedFormat)

	return nil
}

// logDescriptor reports the resolution outcome without leaking secrets.
func logDescriptor(ctx context.Context, d *domain.Descriptor, credentialsPath string) {
	logger.InfoKV(
		ctx,
		"Build variant resolved",
		"application_id", d.Identity.ID,
		"version_name", d.Identity.VersionName,
		"version_code", d.Identity.VersionCode,
		"min_sdk", d.Sdk.Min,
		"target_sdk", d.Sdk.Target,
		"compile_sdk", d.Sdk.Compile,
		"minify", d.Optimization.MinifyEnabled,
		"shrink_resources", d.Optimization.ShrinkResources,
	)

	if d.Optimization.ShrinkResources && !d.Optimization.MinifyEnabled {
		logger.Warn(ctx, "Resource shrinking is enabled without code shrinking; the Android Gradle plugin rejects this combination")
	}

	switch {
	case d.Signed():
		logger.InfoKV(ctx, "Signing credentials attached", logger.MaskKV(
			"key_alias", d.Signing.KeyAlias,
			"key_password", d.Signing.KeyPassword,
			"store_file", d.Signing.StoreFile,
			"store_password", d.Signing.StorePassword,
		)...)
	case d.Variant.CanSign():
		logger.WarnKV(ctx, "No signing credentials found, the release artifact will be unsigned",
			"credentials_file", credentialsPath)
	default:
		logger.DebugKV(ctx, "Variant is never signed with release credentials")
	}
}
