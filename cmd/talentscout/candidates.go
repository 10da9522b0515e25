package main

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/spf13/cobra"
	"github.com/tbxark/talentscout/store"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Inspect saved candidates",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print saved candidates as a markdown table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listCandidates(cmd.Context(), store.NewCSVStore(appConfig.CandidatesPath()), cmd.OutOrStdout())
	},
}

var candidatesDeleteLastCmd = &cobra.Command{
	Use:   "delete-last",
	Short: "Remove the most recently saved candidate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return deleteLastCandidate(cmd.Context(), store.NewCSVStore(appConfig.CandidatesPath()), cmd.OutOrStdout())
	},
}

func init() {
	candidatesCmd.AddCommand(candidatesListCmd, candidatesDeleteLastCmd)
	rootCmd.AddCommand(candidatesCmd)
}

func listCandidates(ctx context.Context, s store.Store, out io.Writer) error {
	rows, err := s.ReadAll(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No candidates saved in %s.\n", s.Path())
		return nil
	}
	table := tablewriter.NewTable(out, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header(toAny(store.Header)...)
	for _, row := range rows {
		if err := table.Append(toAny(row.Columns())...); err != nil {
			return err
		}
	}
	return table.Render()
}

func deleteLastCandidate(ctx context.Context, s store.Store, out io.Writer) error {
	removed, err := s.TruncateLast(ctx)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(out, "No candidates saved in %s.\n", s.Path())
		return nil
	}
	fmt.Fprintln(out, "Removed the last saved candidate.")
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
