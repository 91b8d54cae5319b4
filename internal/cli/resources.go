package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func resourcesCmd(g *globalOpts) *cobra.Command {
	var apiDomain string

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List the resources bmectl can view and edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			all := app.catalog.All()
			if d := strings.TrimSpace(apiDomain); d != "" {
				all = app.catalog.ByDomain(domain.APIDomain(strings.ToLower(d)))
			}
			return printResources(cmd.OutOrStdout(), app.format(g), all)
		},
	}

	cmd.Flags().StringVar(&apiDomain, "domain", "", "Only show one API domain (ddex, tax, licensing, ...)")
	return cmd
}

func printResources(w io.Writer, format string, all []domain.Resource) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		out := make([]map[string]any, 0, len(all))
		for _, r := range all {
			out = append(out, map[string]any{
				"name":       r.Name,
				"domain":     r.Domain,
				"title":      r.Title,
				"operations": operations(r),
				"filters":    r.Filters,
			})
		}
		return printJSON(w, out)
	}

	if len(all) == 0 {
		fmt.Fprintln(w, "(no resources)")
		return nil
	}
	rows := [][]string{{"Resource", "Title", "Operations", "Filters"}}
	for _, r := range all {
		rows = append(rows, []string{
			r.Name,
			r.Title,
			strings.Join(operations(r), ","),
			strings.Join(r.Filters, ","),
		})
	}
	return renderTable(w, rows)
}

func operations(r domain.Resource) []string {
	var ops []string
	if r.CanList() {
		ops = append(ops, "list")
	}
	if r.CanShow() {
		ops = append(ops, "show")
	}
	if r.CanCreate() {
		ops = append(ops, "create")
	}
	if r.CanUpdate() {
		ops = append(ops, "update")
	}
	if r.CanDelete() {
		ops = append(ops, "delete")
	}
	return ops
}

func listCmd(g *globalOpts) *cobra.Command {
	var page, limit int
	var filters []string

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Fetch one page of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			res, err := app.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			fs, err := parseAssignments(filters)
			if err != nil {
				return err
			}

			size := limit
			if size <= 0 {
				size = app.cfg.API.PageSize
			}
			p := domain.FirstPage(size)
			if page > 1 {
				p.Number = page
			}

			out, err := app.views.List(cmd.Context(), res, p, fs)
			if err != nil {
				app.log.Warn("view.load.failed", "resource", res.Name, "page", p.Number, "err", err)
				return err
			}
			app.log.Info("view.load.ok", "resource", res.Name, "page", out.Page.Number, "count", out.Page.Count)
			return printList(cmd.OutOrStdout(), app.format(g), res, out)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default from config)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Filter as key=value (repeatable)")
	return cmd
}

func showCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show <resource> [id]",
		Short: "Fetch a single record",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			res, err := app.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			rec, err := app.views.Show(cmd.Context(), res, argAt(args, 1))
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), app.format(g), rec)
		},
	}
}

func createCmd(g *globalOpts) *cobra.Command {
	return writeCmd(g, domain.OpCreate, "create <resource>", "Submit a create form", cobra.ExactArgs(1))
}

func updateCmd(g *globalOpts) *cobra.Command {
	return writeCmd(g, domain.OpUpdate, "update <resource> [id]", "Submit an update form (blank fields are left unchanged)", cobra.RangeArgs(1, 2))
}

func writeCmd(g *globalOpts, op domain.Operation, use, short string, args cobra.PositionalArgs) *cobra.Command {
	var sets []string
	var from string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := formValues(from, sets)
			if err != nil {
				return err
			}

			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			res, err := app.catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			out, err := app.forms.Execute(cmd.Context(), res, op, argAt(args, 1), values)
			if err != nil {
				app.log.Warn("form.submit.failed", "resource", res.Name, "op", op, "err", err)
				return err
			}
			app.log.Info("form.submit.ok", "resource", res.Name, "op", op)

			w := cmd.OutOrStdout()
			if app.format(g) == formatJSON {
				return printJSON(w, map[string]any{"message": out.Message, "record": out.Record})
			}
			printSuccess(w, out.Message)
			if len(out.Record) > 0 {
				return printRecord(w, formatTable, out.Record)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as name=value (repeatable)")
	cmd.Flags().StringVarP(&from, "from", "f", "", "YAML file with field values (--set wins)")
	return cmd
}

func deleteCmd(g *globalOpts) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s %s without --yes", args[0], args[1])
			}

			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			res, err := app.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			out, err := app.forms.Delete(cmd.Context(), res, args[1])
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
