package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/meritsim/internal/domain/model"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single claim",
		Long: `Score one claim against the configured rule tables.

Each --select names one dimension and the option picked for it.

Examples:
  meritsim score --category Hackathon --select Level=National --select Organizer=Industry \
    --select "Mode=Team Participation" --select "Outcome=Winner (1st)"
  meritsim score --policy multiplicative --category Research \
    --select "Publisher=Others" --select "Authorship=1st Author"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}

			category, _ := cmd.Flags().GetString("category")
			if category == "" {
				return errors.New("--category is required")
			}
			raw, _ := cmd.Flags().GetStringArray("select")
			selections, err := parseSelections(raw)
			if err != nil {
				return err
			}
			name := cfg.Policy
			if p, _ := cmd.Flags().GetString("policy"); p != "" {
				name = p
			}

			t, err := loadTables(cfg)
			if err != nil {
				return err
			}
			policy, err := buildPolicy(name, t)
			if err != nil {
				return err
			}
			points, err := policy.Compute(model.Category(category), selections)
			if err != nil {
				return errors.Wrap(err, "failed to score claim")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d\n", policy.Name(), category, points)
			return nil
		},
	}

	cmd.Flags().String("category", "", "Category of the claim")
	cmd.Flags().StringArray("select", nil, "Dimension=Option, repeatable")
	cmd.Flags().String("policy", "", "Scoring policy: additive or multiplicative (default from config)")
	return cmd
}

func parseSelections(raw []string) (model.Selections, error) {
	out := make(model.Selections, 0, len(raw))
	for _, s := range raw {
		dim, opt, ok := strings.Cut(s, "=")
		dim, opt = strings.TrimSpace(dim), strings.TrimSpace(opt)
		if !ok || dim == "" || opt == "" {
			return nil, errors.Errorf("invalid selection %q, want Dimension=Option", s)
		}
		if _, dup := out.Get(dim); dup {
			return nil, errors.Errorf("dimension %q selected twice", dim)
		}
		out = append(out, model.Selection{Dimension: dim, Option: opt})
	}
	return out, nil
}
