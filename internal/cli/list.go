package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/journal"
	"github.com/mesh-intelligence/journal/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List the entries of one category in the order they were logged",
		Long: `List prints every entry of one category in append order.

Valid categories: skill, milestone, reflection

An unreadable or corrupted file is reported as a warning and shown as empty.`,
		Example: "  journal list skill\n  journal list milestones --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := types.ParseCategory(args[0])
			if err != nil {
				return err
			}
			r, err := a.openRegistry()
			if err != nil {
				return err
			}

			// Read errors are already logged by the store; the listing
			// degrades to empty rather than failing.
			records, _ := r.List(category)

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			return printRecords(cmd.OutOrStdout(), category, records)
		},
	}
}

func newAllCmd(a *app) *cobra.Command {
	var (
		categoryArgs []string
		limit        int
	)
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Show entries from every category, newest first",
		Long: `All merges skill tasks, milestones, and reflections into one list sorted
by time, newest first. Entries with the same time are shown in category
order (skill, milestone, reflection) and then in the order they were logged.`,
		Example: "  journal all\n  journal all --category milestone --category reflection --limit 10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := types.StandardCategories
			if len(categoryArgs) > 0 {
				categories = nil
				for _, s := range categoryArgs {
					c, err := types.ParseCategory(s)
					if err != nil {
						return err
					}
					categories = append(categories, c)
				}
			}

			records, err := a.merged(categories)
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			return printTagged(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringSliceVar(&categoryArgs, "category", nil, "restrict to these categories (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many entries (0 for all)")
	return cmd
}

// merged returns the merged view for categories. Read errors degrade the
// affected categories to empty and are logged, never returned.
func (a *app) merged(categories []types.Category) ([]types.TaggedRecord, error) {
	r, err := a.openRegistry()
	if err != nil {
		return nil, err
	}
	records, readErr := journal.NewView(r).Sorted(categories...)
	if readErr != nil {
		a.logger.Warn("some categories could not be read", "err", readErr)
	}
	return records, nil
}
