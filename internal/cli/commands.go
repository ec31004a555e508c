package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"searchline/internal/config"
	"searchline/internal/eventbus"
)

func newEnginesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the configured engine prefixes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := eventbus.New(nil)
			defer bus.Close()

			loaded, err := loadSettings(config.NewConfigService(opts.configPath), bus, zap.NewNop())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range loaded.notices {
				fmt.Fprintln(cmd.ErrOrStderr(), n)
			}

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("PREFIX", "NAME", "SUGGESTIONS", "SEARCH")
			for _, id := range loaded.registry.IDs() {
				e, _ := loaded.registry.Get(id)
				prefix := id
				if prefix == "" {
					prefix = "(default)"
				}
				suggestions := "-"
				if e.HasSuggestions() {
					suggestions = string(e.Adapter.Kind)
				}
				t.Row(prefix, e.Name, suggestions, e.SearchURL)
			}
			fmt.Fprintln(out, t.Render())

			if loaded.problems != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Skipped config entries:\n%v\n", loaded.problems)
			}
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(opts.configPath).Path())
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in defaults to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(opts.configPath)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(pathCmd, initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "searchline %s\n", Version)
		},
	}
}
