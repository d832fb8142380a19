package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arangotui/arangotui/internal/config"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/keybinds"
	"github.com/arangotui/arangotui/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version and the server version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())

		s, err := setup(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		server, err := s.handshake(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "server: unreachable (%v)\n", err)
			return nil
		}
		fmt.Fprintf(out, "server: %s %s (%s) at %s\n", server.Server, server.Version, server.License, s.conn.Endpoint)

		if s.conn.GAEEndpoint != "" {
			if gae, err := s.gaeHandshake(cmd.Context()); err == nil {
				fmt.Fprintf(out, "gae: %s (api %d-%d)\n", gae.Version, gae.APIMinVersion, gae.APIMaxVersion)
			}
		}
		return nil
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Inspect and validate key bindings",
}

var keybindsOutput string

var keybindsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the default key bindings as a keybinds.json template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := keybinds.ExportDefaults()
		if keybindsOutput != "" {
			if err := keybinds.SaveConfig(cfg, keybindsOutput); err != nil {
				return fmt.Errorf("failed to write %s: %w", keybindsOutput, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", keybindsOutput)
			return nil
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode key bindings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var keybindsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a keybinds.json file (default ~/.arangotui/keybinds.json)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			path = config.KeybindsFile
		}

		cfg, err := keybinds.LoadConfig(path)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s does not exist, defaults are used\n", path)
				return nil
			}
			return err
		}

		result := keybinds.NewValidator().ValidateConfig(cfg)
		fmt.Fprint(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("%s has invalid key bindings", path)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the fetch history",
}

var (
	historyLimit int
	historyJSON  bool
	historyAll   bool
)

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent gateway calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, endpoint, err := openHistory()
		if err != nil {
			return err
		}
		defer mgr.Close()

		entries, err := mgr.Load(endpoint, historyLimit)
		if err != nil {
			return err
		}

		if historyJSON {
			return history.ExportJSON(cmd.OutOrStdout(), entries)
		}
		return history.WriteTable(cmd.OutOrStdout(), entries)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the fetch history of the selected endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, endpoint, err := openHistory()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Clear(endpoint); err != nil {
			return err
		}

		if endpoint == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "History cleared for %s\n", endpoint)
		}
		return nil
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List or delete saved JMESPath filters",
}

var filtersListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List saved filters, optionally only those containing query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		bookmarks, err := mgr.Bookmarks(query)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSAVED\tEXPRESSION")
		for _, b := range bookmarks {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", b.ID, b.CreatedAt, b.Expression)
		}
		return tw.Flush()
	},
}

var filtersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid filter id %q", args[0])
		}

		mgr, err := openStore()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.DeleteBookmark(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted filter %d\n", id)
		return nil
	},
}

// openStore opens the SQLite database holding history and saved filters
func openStore() (*history.Manager, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return history.NewManager(config.DatabasePath)
}

// openHistory opens the history database without contacting the server.
// The returned endpoint is empty with --all.
func openHistory() (*history.Manager, string, error) {
	if err := config.Initialize(); err != nil {
		return nil, "", fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load(config.GetConfigFilePath())
	if err != nil {
		return nil, "", err
	}

	endpoint := ""
	if !historyAll {
		conn, err := cfg.Resolve(flagProfile, config.Overrides{Endpoint: flagEndpoint})
		if err != nil {
			return nil, "", err
		}
		endpoint = conn.Endpoint
	}

	mgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return nil, "", err
	}
	return mgr, endpoint, nil
}

func init() {
	keybindsExportCmd.Flags().StringVarP(&keybindsOutput, "output", "o", "", "Write to file instead of stdout")
	keybindsCmd.AddCommand(keybindsExportCmd)
	keybindsCmd.AddCommand(keybindsValidateCmd)

	historyCmd.PersistentFlags().BoolVar(&historyAll, "all", false, "Every endpoint, not only the selected one")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Number of entries (0 for all)")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	filtersCmd.AddCommand(filtersListCmd)
	filtersCmd.AddCommand(filtersDeleteCmd)
}
