package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"zenvor/internal/domain/intake"
	"zenvor/internal/wizard"
)

func newBookDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "book-demo",
		Short: "Request a product demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) {
				return errors.New(copyFor(a.locale).NeedTerminal)
			}
			return runDemoForm(cmd.Context(), cmd.OutOrStdout(), wizard.NewDemoController(a.api, a.locale))
		},
	}
}

func runDemoForm(ctx context.Context, out io.Writer, c *wizard.DemoController) error {
	t := copyFor(c.State().Locale)
	fmt.Fprintln(out, headerStyle.Render(t.DemoTitle))

	for {
		st := c.State()
		if st.Phase == wizard.PhaseSuccess {
			fmt.Fprintln(out, passStyle.Render(iconPass+" "+t.DemoBooked+" "+st.SubmittedID))
			return nil
		}
		printFieldErrors(out, t, st.Errors)
		if st.Phase == wizard.PhaseError {
			fmt.Fprintln(out, warnStyle.Render(iconWarn+" "+st.ErrorMessage))
		}

		f := st.Form
		interests := append([]huh.Option[string]{huh.NewOption("—", "")},
			huhOptions(wizard.ServiceInterestOptions(st.Locale))...)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title(t.FullName).Value(&f.FullName),
				huh.NewInput().Title(t.Email).Value(&f.Email),
				huh.NewInput().Title(t.Phone).Value(&f.Phone),
				huh.NewInput().Title(t.Company).Value(&f.CompanyName),
				huh.NewInput().Title(t.JobTitle).Value(&f.JobTitle),
			),
			huh.NewGroup(
				huh.NewSelect[string]().Title(t.Interest).Options(interests...).Value(&f.ServiceInterest),
				huh.NewText().Title(t.Message).CharLimit(2000).Value(&f.Message),
				huh.NewInput().Title(t.Referral).Value(&f.ReferralSource),
			),
		)
		err := form.RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, mutedStyle.Render(t.Cancelled))
			return nil
		}
		if err != nil {
			return err
		}

		for field, value := range map[wizard.Field]string{
			wizard.FieldFullName:        f.FullName,
			wizard.FieldEmail:           f.Email,
			wizard.FieldPhone:           f.Phone,
			wizard.FieldCompanyName:     f.CompanyName,
			wizard.FieldJobTitle:        f.JobTitle,
			wizard.FieldServiceInterest: f.ServiceInterest,
			wizard.FieldMessage:         f.Message,
			wizard.FieldReferralSource:  f.ReferralSource,
		} {
			c.Dispatch(wizard.SetField{Field: field, Value: value})
		}

		_, err = c.Submit(ctx)
		switch {
		case errors.Is(err, intake.ErrDuplicateSubmission):
			fmt.Fprintln(out, warnStyle.Render(iconWarn+" "+c.State().ErrorMessage))
			return nil
		case err != nil && c.State().Phase != wizard.PhaseError:
			return err
		}
	}
}
