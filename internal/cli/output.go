package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/columns"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected table|json)", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printList renders one page of a read view. Records are printed as received.
func printList(w io.Writer, format string, res domain.Resource, out usecase.ListResult) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		page := map[string]any{
			"number":   out.Page.Number,
			"size":     out.Page.Size,
			"count":    out.Page.Count,
			"has_prev": out.Page.HasPrev(),
			"has_next": out.Page.HasNext(),
		}
		if out.Page.Known {
			page["total"] = out.Page.Total
			page["total_pages"] = out.Page.LastPage()
		}
		payload := map[string]any{
			"resource": res.Name,
			"records":  out.Records,
			"page":     page,
		}
		return printJSON(w, payload)
	}

	if len(out.Records) == 0 {
		fmt.Fprintln(w, "(no records)")
		return nil
	}

	cols := columns.For(res.Columns, out.Records)

	rows := make([][]string, 0, len(out.Records)+1)
	rows = append(rows, columns.Titles(cols))
	for _, rec := range out.Records {
		rows = append(rows, columns.Row(rec, cols))
	}
	if err := renderTable(w, rows); err != nil {
		return err
	}

	fmt.Fprintln(w, pageFooter(out.Page))
	return nil
}

func pageFooter(p domain.Page) string {
	nav := []string{p.Label()}
	if p.Known {
		nav = append(nav, fmt.Sprintf("%d total", p.Total))
	}
	if p.HasPrev() {
		nav = append(nav, fmt.Sprintf("prev: --page %d", p.Number-1))
	}
	if p.HasNext() {
		nav = append(nav, fmt.Sprintf("next: --page %d", p.Number+1))
	}
	return strings.Join(nav, "  ")
}

// printRecord renders a single record as field/value rows.
func printRecord(w io.Writer, format string, rec domain.Record) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return printJSON(w, rec)
	}
	if len(rec) == 0 {
		fmt.Fprintln(w, "(empty)")
		return nil
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := [][]string{{"Field", "Value"}}
	for _, k := range keys {
		rows = append(rows, []string{k, columns.Text(rec[k])})
	}
	return renderTable(w, rows)
}

func renderTable(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func printSuccess(w io.Writer, msg string) {
	_, _ = color.New(color.FgHiGreen, color.Bold).Fprintln(w, msg)
}

// parseAssignments turns repeated key=value flags into a map. Later keys win.
func parseAssignments(in []string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for _, a := range in {
		k, v, ok := strings.Cut(a, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", a)
		}
		out[k] = v
	}
	return out, nil
}

// readValuesFile loads a flat YAML mapping of form values.
// Scalars are kept as written so dates and numbers reach validation untouched.
func readValuesFile(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &domain.OpError{Op: "cli.values", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}
	out := map[string]string{}
	if len(doc.Content) == 0 {
		return out, nil
	}

	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, &domain.OpError{
			Op:   "cli.values",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("expected a mapping of field: value"),
		}
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, &domain.OpError{
				Op:   "cli.values",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("field %q: expected a scalar value (line %d)", k.Value, v.Line),
			}
		}
		if v.Tag == "!!null" {
			continue
		}
		out[k.Value] = v.Value
	}
	return out, nil
}

// formValues merges --from file values with --set assignments; assignments win.
func formValues(fromFile string, sets []string) (map[string]string, error) {
	values := map[string]string{}
	if strings.TrimSpace(fromFile) != "" {
		fv, err := readValuesFile(fromFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fv {
			values[k] = v
		}
	}
	sv, err := parseAssignments(sets)
	if err != nil {
		return nil, err
	}
	for k, v := range sv {
		values[k] = v
	}
	return values, nil
}
