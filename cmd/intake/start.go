package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"zenvor/internal/domain/intake"
	"zenvor/internal/wizard"
)

type navChoice string

const (
	navNext navChoice = "next"
	navBack navChoice = "back"
)

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Fill in the 3-step get started wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) {
				return errors.New(copyFor(a.locale).NeedTerminal)
			}
			return runWizard(cmd.Context(), cmd.OutOrStdout(), wizard.NewController(a.api, a.locale))
		},
	}
}

func runWizard(ctx context.Context, out io.Writer, c *wizard.Controller) error {
	t := copyFor(c.State().Locale)

	for {
		st := c.State()
		if st.Phase == wizard.PhaseSuccess {
			fmt.Fprintln(out, passStyle.Render(iconPass+" "+t.Submitted+" "+st.SubmittedID))
			return nil
		}

		fmt.Fprintln(out, headerStyle.Render(t.StepTitle[st.Step-1]))
		printFieldErrors(out, t, st.Errors)
		if st.Phase == wizard.PhaseError {
			fmt.Fprintln(out, warnStyle.Render(iconWarn+" "+st.ErrorMessage))
		}

		var err error
		switch st.Step {
		case 1:
			err = contactStep(ctx, c, t)
		case 2:
			err = stackStep(ctx, c, t)
		default:
			err = challengeStep(ctx, c, t)
		}
		switch {
		case errors.Is(err, huh.ErrUserAborted):
			fmt.Fprintln(out, mutedStyle.Render(t.Cancelled))
			return nil
		case errors.Is(err, intake.ErrDuplicateSubmission):
			fmt.Fprintln(out, warnStyle.Render(iconWarn+" "+c.State().ErrorMessage))
			return nil
		case err != nil && c.State().Phase != wizard.PhaseError:
			return err
		}
	}
}

func contactStep(ctx context.Context, c *wizard.Controller, t copyText) error {
	st := c.State()
	name, email, company, size := st.Form.FullName, st.Form.Email, st.Form.CompanyName, st.Form.CompanySize

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(t.FullName).Value(&name),
		huh.NewInput().Title(t.Email).Value(&email),
		huh.NewInput().Title(t.Company).Value(&company),
		huh.NewSelect[string]().
			Title(t.CompanySize).
			Options(huhOptions(wizard.CompanySizeOptions(st.Locale))...).
			Value(&size),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	c.Dispatch(wizard.SetField{Field: wizard.FieldFullName, Value: name})
	c.Dispatch(wizard.SetField{Field: wizard.FieldEmail, Value: email})
	c.Dispatch(wizard.SetField{Field: wizard.FieldCompanyName, Value: company})
	c.Dispatch(wizard.SetField{Field: wizard.FieldCompanySize, Value: size})
	c.Dispatch(wizard.Next{})
	return nil
}

func stackStep(ctx context.Context, c *wizard.Controller, t copyText) error {
	st := c.State()
	groups := wizard.ToolGroups(st.Locale)

	known := map[string]bool{}
	selected := make([][]string, len(groups))
	fields := make([]huh.Field, 0, len(groups)+2)
	for i, g := range groups {
		opts := make([]huh.Option[string], 0, len(g.Tools))
		for _, tool := range g.Tools {
			known[tool] = true
			opts = append(opts, huh.NewOption(tool, tool))
			if st.Form.HasTool(tool) {
				selected[i] = append(selected[i], tool)
			}
		}
		fields = append(fields, huh.NewMultiSelect[string]().Title(g.Name).Options(opts...).Value(&selected[i]))
	}

	var others []string
	for _, tool := range st.Form.CurrentTools {
		if !known[tool] {
			others = append(others, tool)
		}
	}
	other := strings.Join(others, ", ")
	nav := navNext
	fields = append(fields,
		huh.NewInput().Title(t.OtherTools).Value(&other),
		navSelect(t.Continue, t.Back, &nav),
	)

	if err := huh.NewForm(huh.NewGroup(fields...)).RunWithContext(ctx); err != nil {
		return err
	}

	var want []string
	for _, s := range selected {
		want = append(want, s...)
	}
	for _, tool := range strings.Split(other, ",") {
		if tool = strings.TrimSpace(tool); tool != "" {
			want = append(want, tool)
		}
	}
	syncTools(c, want)

	if nav == navBack {
		c.Dispatch(wizard.Back{})
	} else {
		c.Dispatch(wizard.Next{})
	}
	return nil
}

// syncTools toggles tools until the selection matches want.
func syncTools(c *wizard.Controller, want []string) {
	wanted := map[string]bool{}
	for _, tool := range want {
		wanted[tool] = true
	}
	for _, tool := range c.State().Form.CurrentTools {
		if !wanted[tool] {
			c.Dispatch(wizard.ToggleTool{Tool: tool})
		}
	}
	for _, tool := range want {
		if !c.State().Form.HasTool(tool) {
			c.Dispatch(wizard.ToggleTool{Tool: tool})
		}
	}
}

func challengeStep(ctx context.Context, c *wizard.Controller, t copyText) error {
	st := c.State()
	f := st.Form
	pain, painOther, budget, extra := f.PainPoint, f.PainPointOther, f.Budget, f.AdditionalContext
	nav := navNext

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(t.PainPoint).
			Options(huhOptions(wizard.PainPointOptions(st.Locale))...).
			Value(&pain),
		huh.NewInput().Title(t.PainOther).CharLimit(300).Value(&painOther),
		huh.NewSelect[string]().
			Title(t.Budget).
			Options(append([]huh.Option[string]{huh.NewOption("—", "")}, huhOptions(wizard.BudgetOptions(st.Locale))...)...).
			Value(&budget),
		huh.NewText().Title(t.Context).CharLimit(1000).Value(&extra),
		navSelect(t.Submit, t.Back, &nav),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	c.Dispatch(wizard.SetField{Field: wizard.FieldPainPoint, Value: pain})
	c.Dispatch(wizard.SetField{Field: wizard.FieldPainPointOther, Value: painOther})
	c.Dispatch(wizard.SetField{Field: wizard.FieldBudget, Value: budget})
	c.Dispatch(wizard.SetField{Field: wizard.FieldAdditionalContext, Value: extra})

	if nav == navBack {
		c.Dispatch(wizard.Back{})
		return nil
	}
	_, err := c.Submit(ctx)
	return err
}

func navSelect(next, back string, v *navChoice) *huh.Select[navChoice] {
	return huh.NewSelect[navChoice]().
		Options(huh.NewOption(next, navNext), huh.NewOption(back, navBack)).
		Value(v)
}

func huhOptions(opts []wizard.Option) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

func printFieldErrors(out io.Writer, t copyText, errs map[wizard.Field]string) {
	if len(errs) == 0 {
		return
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	fmt.Fprintln(out, failStyle.Render(t.FixErrors))
	for _, f := range fields {
		fmt.Fprintln(out, failStyle.Render("  "+iconFail+" "+errs[wizard.Field(f)]))
	}
}
