package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"termcal/internal/config"
	appLog "termcal/internal/log"
	"termcal/internal/theme"
)

const defaultThemeName = "default"

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file and the builtin theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(opts.configPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			cfg := config.DefaultConfig()
			cfg.Theme = defaultThemeName
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			if err := config.Save(opts.configPath, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			themePath := theme.Path(cfg.ThemeDir, cfg.Theme)
			if err := theme.Write(themePath, theme.Default()); err != nil {
				return fmt.Errorf("write theme: %w", err)
			}

			appLog.Info("config initialized", "config_path", opts.configPath, "theme_path", themePath)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\nwrote %s\n", opts.configPath, themePath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
