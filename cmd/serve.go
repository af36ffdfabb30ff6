package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cutlistlab/cabplan/internal/config"
	"github.com/cutlistlab/cabplan/internal/devserver"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local planning service",
	Long: `Run a local implementation of the planning API for development and
offline shops. Sessions and document snapshots are kept in sqlite; nesting
uses a simple first-fit packer rather than the hosted optimizer.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "Database path (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = config.GetServeAddr()
	}
	dbPath := serveDB
	if dbPath == "" {
		dbPath = config.GetServeDB()
	}

	server, err := devserver.New(dbPath, slog.Default())
	if err != nil {
		return err
	}
	defer server.Close()

	fmt.Printf("Planning service listening on http://%s (db: %s)\n", addr, dbPath)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
