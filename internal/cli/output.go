package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/journal/pkg/types"
)

const noLogsMessage = "No logs found."

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// summarize renders the payload of a record on one line.
func summarize(c types.Category, r types.Record) string {
	switch c {
	case types.CategorySkill:
		return fmt.Sprintf("%s: %s", r[types.FieldSkill], oneLine(r[types.FieldTask]))
	case types.CategoryMilestone:
		return fmt.Sprintf("[%s] %s", r[types.FieldStatus], oneLine(r[types.FieldMilestone]))
	case types.CategoryReflection:
		return oneLine(r[types.FieldReflection])
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+oneLine(r[k]))
	}
	return strings.Join(parts, " ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// printRecords writes one category's records in append order.
func printRecords(w io.Writer, c types.Category, records []types.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, noLogsMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range records {
		ts, _ := r.Time()
		fmt.Fprintf(tw, "%s\t%s\n", ts, summarize(c, r))
	}
	return tw.Flush()
}

// printTagged writes merged-view records, newest first.
func printTagged(w io.Writer, records []types.TaggedRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, noLogsMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tr := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tr.Time, tr.Category.Label(), summarize(tr.Category, tr.Fields))
	}
	return tw.Flush()
}
