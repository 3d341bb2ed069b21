package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/variant-resolver/internal/config"
	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
	"github.com/oshokin/variant-resolver/internal/logger"
	"github.com/oshokin/variant-resolver/internal/repository/descriptor"
	"github.com/oshokin/variant-resolver/internal/service/resolver"
	"github.com/oshokin/variant-resolver/internal/version"
)

// NewRootCommand builds the variant-resolver command tree.
func NewRootCommand() *cobra.Command {
	var (
		options  resolver.Options
		logLevel string
	)

	validVariants := make([]string, 0, len(domain.Variants()))
	for _, v := range domain.Variants() {
		validVariants = append(validVariants, v.String())
	}

	rootCmd := &cobra.Command{
		Use:           "variant-resolver [debug|release]",
		Short:         "Resolve the build descriptor of an Android build variant",
		Long:          "Resolve application identity, SDK levels, signing credentials and optimization flags of a build variant and print the descriptor consumed by the packager.",
		Version:       version.Short(),
		Args:          cobra.ExactArgs(1),
		ValidArgs:     validVariants,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.Variant = args[0]
			options.Stdout = cmd.OutOrStdout()

			return resolver.Run(ctx, &options)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&options.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to build declarations file")
	flags.StringVar(&options.CredentialsPath, "credentials", "", "path to signing credentials file (overrides the declarations)")
	flags.StringVarP(&options.OutputPath, "output", "o", resolver.StdoutPath, "descriptor output file, \"-\" for stdout")
	flags.StringVarP(&options.Format, "format", "f", string(descriptor.FormatYAML), "descriptor format: yaml or json")
	flags.BoolVar(&options.RequireSigning, "require-signing", false, "fail release builds without signing credentials")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newInitCommand())
	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// Execute runs the variant-resolver CLI and exits with non-zero status on error.
func Execute() {
	defer logger.Sync()

	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		logger.Error(context.Background(), err)
		logger.Sync()
		os.Exit(1)
	}
}
