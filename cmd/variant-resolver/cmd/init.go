package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/variant-resolver/internal/config"
	"github.com/oshokin/variant-resolver/internal/logger"
)

// errConfigExists is returned when init would overwrite existing declarations.
var errConfigExists = errors.New("build declarations already exist, use --force to overwrite")

func newInitCommand() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write default build declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s: %w", configPath, errConfigExists)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat %s: %w", configPath, err)
			}

			if err := config.Save(configPath, config.Default()); err != nil {
				return err
			}

			logger.InfoKV(cmd.Context(), "Build declarations written", "path", configPath)

			return nil
		},
	}

	initCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to build declarations file")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return initCmd
}
