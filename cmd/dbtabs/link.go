package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dbtabs/pkg/tabstate"
)

// tabFlags are the per-table option flags shared by link and add.
type tabFlags struct {
	limit  int
	offset int
	sort   []string
}

func (f *tabFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 0, "row limit override")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "row offset override")
	cmd.Flags().StringSliceVar(&f.sort, "sort", nil, "sort keys, e.g. name:asc,age:desc")
}

// options converts the flags into codec options. With no flags set it
// returns nil, which encodes as the minimal [id] entry.
func (f *tabFlags) options() ([]tabstate.TabOption, error) {
	var opts []tabstate.TabOption
	if f.limit != 0 {
		opts = append(opts, tabstate.WithLimit(f.limit))
	}
	if f.offset != 0 {
		opts = append(opts, tabstate.WithOffset(f.offset))
	}
	if len(f.sort) > 0 {
		order, err := parseSortKeys(f.sort)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tabstate.WithSort(order))
	}
	return opts, nil
}

// parseSortKeys parses "col", "col:asc", and "col:desc" specs.
func parseSortKeys(specs []string) (tabstate.SortOrder, error) {
	var order tabstate.SortOrder
	for _, spec := range specs {
		column, dir, found := strings.Cut(spec, ":")
		if column == "" {
			return nil, fmt.Errorf("empty column in sort spec %q", spec)
		}
		if !found {
			order = order.Set(column, tabstate.Asc)
			continue
		}
		switch dir {
		case "asc":
			order = order.Set(column, tabstate.Asc)
		case "desc":
			order = order.Set(column, tabstate.Desc)
		default:
			return nil, fmt.Errorf("bad sort direction %q in %q (want asc or desc)", dir, spec)
		}
	}
	return order, nil
}

// parseTableID parses a table id argument.
func parseTableID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("table id %q is not an integer", arg)
	}
	return id, nil
}

func linkCmd() *cobra.Command {
	flags := &tabFlags{}

	cmd := &cobra.Command{
		Use:   "link <id>",
		Short: "Build a query string opening one table",
		Long: `Build a "?t=...&a=..." query string that opens exactly one table and
makes it active. Append it to a database page path to get a shareable
link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTableID(args[0])
			if err != nil {
				return err
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tabstate.TableLink(id, opts...))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
