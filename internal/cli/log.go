package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/pkg/types"
)

func newLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append a journal entry",
	}
	cmd.AddCommand(newLogSkillCmd(a))
	cmd.AddCommand(newLogMilestoneCmd(a))
	cmd.AddCommand(newLogReflectionCmd(a))
	return cmd
}

func newLogSkillCmd(a *app) *cobra.Command {
	var skill, task string
	cmd := &cobra.Command{
		Use:     "skill",
		Short:   "Log a skill task",
		Example: `  journal log skill --skill REMEMBER --task "Recall the planets in order"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.appendAndReport(cmd, types.CategorySkill, types.Fields{
				types.FieldSkill: skill,
				types.FieldTask:  task,
			})
		},
	}
	cmd.Flags().StringVar(&skill, "skill", "", "skill name, e.g. REMEMBER or UNDERSTAND (max 100 characters)")
	cmd.Flags().StringVar(&task, "task", "", "task description (max 1000 characters)")
	return cmd
}

func newLogMilestoneCmd(a *app) *cobra.Command {
	var milestone, status string
	cmd := &cobra.Command{
		Use:     "milestone",
		Short:   "Log a milestone",
		Example: `  journal log milestone --milestone "Finish module 2" --status completed`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := types.ParseMilestoneStatus(status)
			if err != nil {
				return err
			}
			return a.appendAndReport(cmd, types.CategoryMilestone, types.Fields{
				types.FieldMilestone: milestone,
				types.FieldStatus:    st,
			})
		},
	}
	cmd.Flags().StringVar(&milestone, "milestone", "", "milestone description (max 1000 characters)")
	cmd.Flags().StringVar(&status, "status", string(types.StatusInProgress), "status: "+statusChoices())
	return cmd
}

// statusChoices lists the milestone states for help text.
func statusChoices() string {
	quoted := make([]string, len(types.MilestoneStatuses))
	for i, st := range types.MilestoneStatuses {
		quoted[i] = strconv.Quote(string(st))
	}
	return strings.Join(quoted, ", ")
}

func newLogReflectionCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:     "reflection",
		Short:   "Log a reflection",
		Example: `  journal log reflection --text "Spacing the reviews made recall easier"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.appendAndReport(cmd, types.CategoryReflection, types.Fields{
				types.FieldReflection: text,
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "reflection content (max 1000 characters)")
	return cmd
}

// appendAndReport stores one record and prints a confirmation.
func (a *app) appendAndReport(cmd *cobra.Command, category types.Category, fields types.Fields) error {
	r, err := a.openRegistry()
	if err != nil {
		return err
	}
	rec, err := r.Append(category, fields)
	if err != nil {
		return err
	}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s logged successfully (%s)\n", category.Label(), rec[types.FieldID])
	return nil
}
