package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/counsel/internal/client"
	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/ui"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// tableColumns lists the fields shown per kind in list output.
var tableColumns = map[model.Kind][]string{
	model.KindLawyer:       {"name", "specialization", "location", "experience", "rating", "status"},
	model.KindCustomer:     {"name", "email", "location", "join_date"},
	model.KindHistory:      {"title", "lawyer", "date", "status"},
	model.KindCase:         {"case_number", "title", "lawyer", "status", "next_hearing"},
	model.KindAppointment:  {"lawyer", "type", "date", "time", "status"},
	model.KindNotification: {"type", "title", "read"},
}

// maxCell bounds free-text columns so rows stay on one line.
const maxCell = 32

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func formatCell(name string, v any) string {
	s := formatValue(v)
	if name == "status" {
		return ui.RenderStatus(s)
	}
	return ui.Truncate(s, maxCell)
}

func printRecordTable(w io.Writer, kind model.Kind, records []*model.Record, total int) error {
	cols := tableColumns[kind]
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := append([]string{"ID"}, cols...)
	for i, h := range header {
		header[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range records {
		row := []string{r.ID}
		for _, c := range cols {
			row = append(row, formatCell(c, r.Fields[c]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if total > len(records) {
		fmt.Fprintln(w, ui.RenderMuted(fmt.Sprintf("showing %d of %d", len(records), total)))
	} else {
		fmt.Fprintln(w, ui.RenderMuted(fmt.Sprintf("%d %s record(s)", total, kind)))
	}
	return nil
}

// printRecord prints every field of a record, schema fields first.
func printRecord(w io.Writer, r *model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Kind:\t%s\n", r.Kind)

	var names []string
	for _, f := range model.SchemaFor(r.Kind).Fields {
		if _, ok := r.Fields[f.Name]; ok {
			names = append(names, f.Name)
		}
	}
	var extra []string
	for name := range r.Fields {
		if !slices.Contains(names, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)

	for _, name := range append(names, extra...) {
		v := formatValue(r.Fields[name])
		if name == "status" {
			v = ui.RenderStatus(v)
		}
		fmt.Fprintf(tw, "%s:\t%s\n", name, v)
	}
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created At:\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !r.UpdatedAt.IsZero() {
		fmt.Fprintf(tw, "Updated At:\t%s\n", r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func printDashboard(w io.Writer, d *client.Dashboard) error {
	tabs := make([]string, len(d.Tabs))
	for i, t := range d.Tabs {
		if t == d.Tab {
			tabs[i] = ui.RenderAccent("[" + t + "]")
		} else {
			tabs[i] = t
		}
	}
	fmt.Fprintf(w, "%s: %s\n", d.Role, strings.Join(tabs, " "))
	for _, p := range d.Panels {
		fmt.Fprintf(w, "\n%s\n", ui.RenderAccent(p.Name))
		if err := printRecordTable(w, p.Kind, p.Records, p.Total); err != nil {
			return err
		}
	}
	return nil
}

func printSchema(w io.Writer, s *model.Schema) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tTYPE\tREQUIRED\tVALUES")
	for _, f := range s.Fields {
		req := ""
		if f.Required {
			req = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Type, req, strings.Join(f.Values, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.SearchFields) > 0 {
		fmt.Fprintln(w, ui.RenderMuted("search matches: "+strings.Join(s.SearchFields, ", ")))
	}
	return nil
}
