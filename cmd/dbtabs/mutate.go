package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dbtabs/pkg/querystore"
	"github.com/vango-dev/dbtabs/pkg/tabstate"
)

func addCmd() *cobra.Command {
	var (
		db       string
		position int
		inactive bool
	)
	flags := &tabFlags{}

	cmd := &cobra.Command{
		Use:   "add <url> <id>",
		Short: "Open a table in a URL and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := querystore.ParseURL(args[0])
			if err != nil {
				return err
			}
			id, err := parseTableID(args[1])
			if err != nil {
				return err
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("position") {
				opts = append(opts, tabstate.AtPosition(position))
			}
			if inactive {
				opts = append(opts, tabstate.Inactive())
			}

			if err := tabstate.New(src).AddTable(db, id, opts...); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), src.String())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&db, "db", "", "database identifier (first path segment)")
	cmd.Flags().IntVar(&position, "position", 0, "insertion index within the open-table list")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "open the table without focusing it")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func removeCmd() *cobra.Command {
	var (
		db       string
		fallback int
	)

	cmd := &cobra.Command{
		Use:   "remove <url> <id>",
		Short: "Close a table in a URL and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := querystore.ParseURL(args[0])
			if err != nil {
				return err
			}
			id, err := parseTableID(args[1])
			if err != nil {
				return err
			}

			if err := tabstate.New(src).RemoveTable(db, id, fallback); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), src.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "database identifier (first path segment)")
	cmd.Flags().IntVar(&fallback, "fallback", 0, "table id to activate after removal")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
