package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/intake"
	"zenvor/internal/domain/lead"
)

const timeLayout = "2006-01-02 15:04"

// view is a command result in both machine and table form.
type view struct {
	data    any
	headers []string
	rows    [][]string
}

// triageKind binds the generic triage verbs to one record type.
type triageKind struct {
	name     string
	statuses []string
	list     func(ctx context.Context, status string, limit, offset int) (view, error)
	show     func(ctx context.Context, id string) (view, error)
	update   func(ctx context.Context, id, status string, assignedTo, note *string) (*intake.SubmitResult, error)
	stats    func(ctx context.Context) (view, error)
}

func newTriageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Review and update leads and demo requests (admin)",
	}
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json or yaml")
	cmd.AddCommand(
		newKindCmd(leadKind(a)),
		newKindCmd(demoKind(a)),
	)
	return cmd
}

func newKindCmd(k triageKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.name,
		Short: "Triage " + k.name,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + k.name + ", newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			v, err := k.list(cmd.Context(), status, limit, offset)
			if err != nil {
				return err
			}
			return printView(cmd, v)
		},
	}
	list.Flags().String("status", "", "only this status ("+strings.Join(k.statuses, ", ")+")")
	list.Flags().Int("limit", intake.DefaultListLimit, "page size (1-200)")
	list.Flags().Int("offset", 0, "records to skip")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := k.show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printView(cmd, v)
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Set status, assignee and note",
		Long: `Set status, assignee and note.

The update replaces all three. Omitting --assigned-to or --note clears
the stored value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			res, err := k.update(cmd.Context(), args[0], status,
				optionalFlag(cmd, "assigned-to"), optionalFlag(cmd, "note"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), passStyle.Render(iconPass+" updated "+res.ID))
			return nil
		},
	}
	update.Flags().String("status", "", "new status ("+strings.Join(k.statuses, ", ")+")")
	update.Flags().String("assigned-to", "", "owner of the record")
	update.Flags().String("note", "", "internal note")
	_ = update.MarkFlagRequired("status")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count records per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := k.stats(cmd.Context())
			if err != nil {
				return err
			}
			return printView(cmd, v)
		},
	}

	cmd.AddCommand(list, show, update, stats)
	return cmd
}

func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func printView(cmd *cobra.Command, v view) error {
	format, _ := cmd.Flags().GetString("output")
	return writeView(cmd.OutOrStdout(), format, v)
}

func writeView(w io.Writer, format string, v view) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.data)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v.data); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		if len(v.rows) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("No records."))
			return nil
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(mutedStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers(v.headers...).
			Rows(v.rows...)
		fmt.Fprintln(w, t.String())
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func leadKind(a *app) triageKind {
	statuses := make([]string, 0, len(lead.Pipeline))
	for _, s := range lead.Pipeline {
		statuses = append(statuses, string(s))
	}
	return triageKind{
		name:     "leads",
		statuses: statuses,
		list: func(ctx context.Context, status string, limit, offset int) (view, error) {
			leads, err := a.api.ListLeads(ctx, lead.ListQuery{Status: lead.Status(status), Limit: limit, Offset: offset})
			if err != nil {
				return view{}, err
			}
			v := view{data: leads, headers: []string{"ID", "Created", "Name", "Email", "Company", "Status", "Assigned"}}
			for _, l := range leads {
				v.rows = append(v.rows, []string{
					l.ID, l.CreatedAt.Local().Format(timeLayout), l.FullName, l.Email,
					l.CompanyName, string(l.Status), deref(l.AssignedTo),
				})
			}
			return v, nil
		},
		show: func(ctx context.Context, id string) (view, error) {
			l, err := a.api.GetLead(ctx, id)
			if err != nil {
				return view{}, err
			}
			return detailView(l, [][]string{
				{"ID", l.ID},
				{"Created", l.CreatedAt.Local().Format(timeLayout)},
				{"Name", l.FullName},
				{"Email", l.Email},
				{"Company", l.CompanyName},
				{"Team size", string(l.CompanySize)},
				{"Tools", deref(l.CurrentTools)},
				{"Pain point", deref(l.PainPoint)},
				{"Pain point (other)", deref(l.PainPointOther)},
				{"Budget", deref(l.Budget)},
				{"Context", deref(l.AdditionalContext)},
				{"Status", string(l.Status)},
				{"Assigned to", deref(l.AssignedTo)},
				{"Note", deref(l.InternalNote)},
			}), nil
		},
		update: func(ctx context.Context, id, status string, assignedTo, note *string) (*intake.SubmitResult, error) {
			return a.api.UpdateLeadStatus(ctx, &lead.UpdateStatusRequest{
				ID: id, Status: lead.Status(status), AssignedTo: assignedTo, InternalNote: note,
			})
		},
		stats: func(ctx context.Context) (view, error) {
			counts, err := a.api.LeadStats(ctx)
			if err != nil {
				return view{}, err
			}
			v := view{data: counts, headers: []string{"Status", "Count"}}
			for _, s := range lead.Pipeline {
				v.rows = append(v.rows, []string{string(s), fmt.Sprint(counts[s])})
			}
			return v, nil
		},
	}
}

func demoKind(a *app) triageKind {
	statuses := make([]string, 0, len(demo.Pipeline))
	for _, s := range demo.Pipeline {
		statuses = append(statuses, string(s))
	}
	return triageKind{
		name:     "demos",
		statuses: statuses,
		list: func(ctx context.Context, status string, limit, offset int) (view, error) {
			reqs, err := a.api.ListDemos(ctx, demo.ListQuery{Status: demo.Status(status), Limit: limit, Offset: offset})
			if err != nil {
				return view{}, err
			}
			v := view{data: reqs, headers: []string{"ID", "Created", "Name", "Email", "Interest", "Status", "Assigned"}}
			for _, r := range reqs {
				v.rows = append(v.rows, []string{
					r.ID, r.CreatedAt.Local().Format(timeLayout), r.FullName, r.Email,
					deref(r.ServiceInterest), string(r.Status), deref(r.AssignedTo),
				})
			}
			return v, nil
		},
		show: func(ctx context.Context, id string) (view, error) {
			r, err := a.api.GetDemo(ctx, id)
			if err != nil {
				return view{}, err
			}
			return detailView(r, [][]string{
				{"ID", r.ID},
				{"Created", r.CreatedAt.Local().Format(timeLayout)},
				{"Name", r.FullName},
				{"Email", r.Email},
				{"Phone", deref(r.Phone)},
				{"Company", deref(r.CompanyName)},
				{"Job title", deref(r.JobTitle)},
				{"Interest", deref(r.ServiceInterest)},
				{"Message", deref(r.Message)},
				{"Referral", deref(r.ReferralSource)},
				{"Status", string(r.Status)},
				{"Assigned to", deref(r.AssignedTo)},
				{"Note", deref(r.InternalNote)},
			}), nil
		},
		update: func(ctx context.Context, id, status string, assignedTo, note *string) (*intake.SubmitResult, error) {
			return a.api.UpdateDemoStatus(ctx, &demo.UpdateStatusRequest{
				ID: id, Status: demo.Status(status), AssignedTo: assignedTo, InternalNote: note,
			})
		},
		stats: func(ctx context.Context) (view, error) {
			counts, err := a.api.DemoStats(ctx)
			if err != nil {
				return view{}, err
			}
			v := view{data: counts, headers: []string{"Status", "Count"}}
			for _, s := range demo.Pipeline {
				v.rows = append(v.rows, []string{string(s), fmt.Sprint(counts[s])})
			}
			return v, nil
		},
	}
}

func detailView(data any, pairs [][]string) view {
	return view{data: data, headers: []string{"Field", "Value"}, rows: pairs}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
