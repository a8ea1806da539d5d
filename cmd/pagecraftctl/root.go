package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pagecraft/internal/client"
)

const defaultServer = "http://localhost:8080"

// app carries the state shared by every subcommand.
type app struct {
	server      string
	sessionPath string
	timeout     time.Duration

	session *client.Session
	api     *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pagecraftctl",
		Short:         "Manage PageCraft content from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.server, "server", envOr("PAGECRAFT_URL", defaultServer), "API base URL")
	flags.StringVar(&a.sessionPath, "session", defaultSessionPath(), "session file")
	flags.DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newAdminCmd(a),
	)
	return root
}

// open loads the session and builds the API client.
func (a *app) open() error {
	s, err := client.LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	a.session = s
	a.api = client.New(a.server, s, &http.Client{Timeout: a.timeout})
	return nil
}

// saveSession persists the session after it changed.
func (a *app) saveSession() error {
	return a.session.Save(a.sessionPath)
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pagecraft", "session.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
