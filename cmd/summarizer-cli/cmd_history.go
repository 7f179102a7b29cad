package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recent summaries or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of summaries to list (1-100)")
	historyCmd.Flags().StringP("output", "o", formatText, "Output format: text, json, yaml")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("output")
	c := newClient(cmd)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		s, err := c.GetSummary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if handled, err := writeStructured(out, format, s); handled {
			return err
		}
		fmt.Fprintln(out, s.Summary)
		return nil
	}

	list, err := c.History(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if handled, err := writeStructured(out, format, list); handled {
		return err
	}
	if len(list.Data) == 0 {
		fmt.Fprintln(out, "No summaries yet")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tIN\tOUT\tPREVIEW")
	for _, s := range list.Data {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.InputLength, s.OutputLength, s.InputPreview)
	}
	return tw.Flush()
}
