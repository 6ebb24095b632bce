package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their dimensions and options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			t, err := loadTables(cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tBASE\tDIMENSION\tOPTIONS")
			for _, c := range t.additive.Categories() {
				base := fmt.Sprintf("%g", t.multiplier.Base(c))
				dims := t.additive.Dimensions(c)
				if len(dims) == 0 {
					fmt.Fprintf(tw, "%s\t%s\t-\t-\n", c, base)
					continue
				}
				for i, d := range dims {
					name := string(c)
					if i > 0 {
						name, base = "", ""
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, base, d.Name, strings.Join(d.OptionNames(), ", "))
				}
			}
			return tw.Flush()
		},
	}
}
