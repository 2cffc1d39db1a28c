package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zenvor/internal/client"
	"zenvor/internal/i18n"
)

const defaultAPIURL = "http://localhost:8080"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	api    *client.Client
	locale i18n.Locale
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "intake",
		Short: "Terminal client for the Zenvor intake API",
		Long: `Terminal client for the Zenvor intake API.

Settings come from flags, then INTAKE_* environment variables, then an
optional config file:
  --api-url      INTAKE_API_URL      (default ` + defaultAPIURL + `)
  --admin-token  INTAKE_ADMIN_TOKEN  (triage commands only)
  --lang         INTAKE_LANG         (en or ru, defaults to $LANG)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-url", defaultAPIURL, "intake API base URL")
	pf.String("admin-token", "", "bearer token for triage commands")
	pf.String("lang", "", "interface language (en, ru)")
	pf.String("config", "", "config file (yaml, toml or json)")
	_ = a.v.BindPFlags(pf)

	a.v.SetEnvPrefix("INTAKE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newStartCmd(a),
		newBookDemoCmd(a),
		newChatCmd(a),
		newTriageCmd(a),
	)
	return root
}

func (a *app) init() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if lang := a.v.GetString("lang"); lang != "" {
		a.locale = i18n.Parse(lang)
	} else {
		a.locale = i18n.FromEnv(os.Getenv("LANG"))
	}

	a.api = client.New(a.v.GetString("api-url"),
		client.WithAdminToken(a.v.GetString("admin-token")),
		client.WithLanguage(string(a.locale)),
	)
	return nil
}
