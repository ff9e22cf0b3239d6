package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dbtabs/pkg/querystore"
	"github.com/vango-dev/dbtabs/pkg/tabstate"
)

func decodeCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "decode <url>",
		Short: "Print the tab state carried by a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := querystore.ParseURL(args[0])
			if err != nil {
				return err
			}
			codec := tabstate.New(src)

			configs, err := codec.AllConfigs(db)
			if err != nil {
				return err
			}
			if len(configs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no open tables")
			}
			for _, cfg := range configs {
				fmt.Fprintln(cmd.OutOrStdout(), formatConfig(cfg))
			}

			if active, ok := codec.ActiveTable(db); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "active: %d\n", active)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "active: none")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "database identifier (first path segment)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// formatConfig renders one table config as a single line.
func formatConfig(cfg tabstate.TableConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "table %d", cfg.ID)
	if cfg.HasLimit() {
		fmt.Fprintf(&b, "  limit=%d", cfg.Limit)
	}
	if cfg.HasOffset() {
		fmt.Fprintf(&b, "  offset=%d", cfg.Offset)
	}
	if len(cfg.Sort) > 0 {
		parts := make([]string, 0, len(cfg.Sort))
		for _, s := range cfg.Sort {
			parts = append(parts, fmt.Sprintf("%s:%s", s.Column, s.Direction))
		}
		fmt.Fprintf(&b, "  sort=%s", strings.Join(parts, ","))
	}
	return b.String()
}
