package types

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// markdownTable renders a titled markdown table, or "" when there are no rows.
func markdownTable(title string, header []any, rows [][]any) string {
	if len(rows) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(title)
	buf.WriteString("\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header(header...)
	for _, row := range rows {
		_ = table.Append(row...)
	}
	_ = table.Render()
	return buf.String()
}

func missingFieldsSection(fields []FieldInfo) string {
	rows := make([][]any, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []any{field.DisplayName, field.JSONPointer, field.Description})
	}
	return markdownTable("# Missing required fields (ask in this order):", []any{"Field", "Pointer", "Description"}, rows)
}

func validationErrorsSection(fields []FieldInfo) string {
	rows := make([][]any, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []any{field.DisplayName, field.JSONPointer, field.Description})
	}
	return markdownTable("# Values that failed validation:", []any{"Field", "Pointer", "Problem"}, rows)
}

// FormatToolRequest renders the structured part of a request as a markdown
// prompt section. Messages are not included; callers pass them separately.
func FormatToolRequest[T any](req *ToolRequest[T]) (string, error) {
	stateJSON, err := sonic.MarshalString(req.State)
	if err != nil {
		return "", err
	}
	sections := []string{
		fmt.Sprintf("# Candidate record JSON:\n```json\n%s\n```", stateJSON),
	}
	if req.StateSchema != "" {
		sections = append(sections, fmt.Sprintf("# Candidate record schema JSON:\n```json\n%s\n```", req.StateSchema))
	}
	if req.Phase != "" {
		sections = append(sections, fmt.Sprintf("# Current Phase:\n%s", req.Phase))
	}
	if s := missingFieldsSection(req.MissingFields); s != "" {
		sections = append(sections, s)
	}
	if s := validationErrorsSection(req.ValidationErrors); s != "" {
		sections = append(sections, s)
	}
	return strings.Join(sections, "\n\n"), nil
}
