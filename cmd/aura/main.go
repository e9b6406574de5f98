package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/auranotes/aura/internal/api"
	"github.com/auranotes/aura/internal/config"
	"github.com/auranotes/aura/internal/logger"
	"github.com/auranotes/aura/internal/store"
	"github.com/auranotes/aura/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagServer string
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Terminal client for the Aura note service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aura %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return logout()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "server base URL")
	rootCmd.AddCommand(versionCmd, logoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup() (*api.Client, *store.Store, zerolog.Logger, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}

	log, closeLog, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}

	st, err := store.Open()
	if err != nil {
		closeLog()
		return nil, nil, zerolog.Logger{}, nil, err
	}

	client, err := api.New(cfg.ServerURL, cfg.RequestTimeout, log)
	if err != nil {
		st.Close()
		closeLog()
		return nil, nil, zerolog.Logger{}, nil, err
	}

	// Reuse the stored session only against the server it was minted by.
	if lastServer, _ := st.Get(store.KeyServerURL); lastServer == cfg.ServerURL {
		if session, _ := st.Get(store.KeySession); session != "" {
			client.SetSession(session)
		}
	}
	if err := st.Set(store.KeyServerURL, cfg.ServerURL); err != nil {
		log.Warn().Err(err).Msg("persist server url")
	}

	cleanup := func() {
		st.Close()
		closeLog()
	}
	return client, st, log, cleanup, nil
}

func run() error {
	client, st, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	app := ui.NewApp(client, st, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func logout() error {
	client, st, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if client.Session() == "" {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := client.Logout(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	if err := st.Delete(store.KeySession); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
