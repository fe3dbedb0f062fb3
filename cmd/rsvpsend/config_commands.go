package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rsvpsend/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.input_file to your recipient CSV before running rsvpsend send.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}

			inputKind, inputMsg := statusOK, cfg.Paths.InputFile
			if _, err := os.Stat(cfg.Paths.InputFile); err != nil {
				inputKind, inputMsg = statusWarn, cfg.Paths.InputFile+" (not found)"
			}
			fmt.Fprintln(out, renderStatusLine("Input file", inputKind, inputMsg, colorize))
			fmt.Fprintln(out, renderStatusLine("Ledger", statusInfo, cfg.LedgerPath(), colorize))
			fmt.Fprintln(out, renderStatusLine("Provider host", statusInfo, cfg.Provider.Host, colorize))
			fmt.Fprintln(out, renderStatusLine("Session mode", statusInfo, cfg.Session.Mode, colorize))
			fmt.Fprintln(out, renderStatusLine("Hourly cap", statusInfo, hourlyCapLabel(cfg.Dispatch.MaxPerHour), colorize))
			notifyKind := statusOK
			if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
				notifyKind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Notifications", notifyKind, yesNo(notifyKind == statusOK), colorize))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func hourlyCapLabel(limit int) string {
	if limit <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(limit) + "/hour"
}
