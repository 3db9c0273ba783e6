package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize insurebook storage",
		Long:  "Create configuration and data directories, write a default config.yaml, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) (err error) {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	dataDir, err := a.dataDir()
	if err != nil {
		return err
	}
	wrote, err := writeConfigIfMissing(a.configDir, dataDir)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if wrote {
		a.logger.Info("config written", "config_dir", a.configDir)
	}

	// Loading and saving validates existing data and creates the backend's
	// file on first run.
	s, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "insurebook initialized\nconfig: %s\ndata:   %s\n", a.configDir, dataDir)
	return nil
}
