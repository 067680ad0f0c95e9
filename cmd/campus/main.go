package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/config"
	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/events"
	"github.com/alfredjeanlab/campus/internal/notify"
	"github.com/alfredjeanlab/campus/internal/session"
	"github.com/alfredjeanlab/campus/internal/ui"
)

var (
	apiURL     string
	jsonOutput bool

	cfg       *config.Config
	logger    *slog.Logger
	sessions  *session.Store
	sess      *session.Session
	portal    client.PortalClient
	notifier  notify.Notifier
	publisher events.Publisher
)

// errReported marks a failure the notifier has already shown.
var errReported = errors.New("reported")

// sessionToken prefers CAMPUS_TOKEN over the saved session.
type sessionToken struct {
	env  string
	sess *session.Session
}

func (t sessionToken) Token() string {
	if t.env != "" {
		return t.env
	}
	return t.sess.Token()
}

var rootCmd = &cobra.Command{
	Use:           "campus <command>",
	Short:         "Command-line dashboards for the campus placement portal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)

		sessions, err = session.NewStore(cfg.SessionFile)
		if err != nil {
			return err
		}
		sess, err = sessions.Load()
		if err != nil {
			return err
		}

		// Precedence: --api-url, then CAMPUS_API_URL, then the URL saved at login.
		switch {
		case cmd.Flags().Changed("api-url"):
			cfg.APIURL = apiURL
		case os.Getenv("CAMPUS_API_URL") == "" && sess.APIURL != "":
			cfg.APIURL = sess.APIURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		portal = client.NewHTTPClient(cfg.BaseURL(), sessionToken{env: cfg.Token, sess: sess},
			client.WithTimeout(cfg.RequestTimeout),
			client.WithLogger(logger),
		)
		notifier = notify.NewTerminal(os.Stderr, logger)
		publisher = newPublisher()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if portal != nil {
			portal.Close()
		}
		if publisher != nil {
			publisher.Close()
		}
	},
}

// newPublisher connects to NATS when CAMPUS_NATS_URL is set. A failed
// connection is logged and events are dropped.
func newPublisher() events.Publisher {
	if cfg.NATSURL == "" {
		return &events.NoopPublisher{}
	}
	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		logger.Warn("events disabled", "error", err)
		return &events.NoopPublisher{}
	}
	return pub
}

func deps() dashboard.Deps {
	return dashboard.Deps{Client: portal, Notifier: notifier, Publisher: publisher, Logger: logger}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "portal API URL (overrides CAMPUS_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "dashboards", Title: "Dashboards:"},
		&cobra.Group{ID: "session", Title: "Session:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Dashboards
	rootCmd.AddCommand(hrCmd)
	rootCmd.AddCommand(officerCmd)
	rootCmd.AddCommand(studentCmd)

	// Session
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(whoamiCmd)

	// System
	rootCmd.AddCommand(exportsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, ui.RenderError("Error:"), err)
		}
		os.Exit(1)
	}
}
