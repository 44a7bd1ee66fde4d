// cmd/diet-manager/serve.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"diet-manager/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer JSON tool calls on stdin/stdout",
	Long: `serve reads one JSON tool call per line from stdin, for example
  {"name":"log_food","arguments":{"food_id":"3f2a","servings":2}}
and writes one JSON result per line to stdout. Changes are saved after
every call that modifies the catalog or the log.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	srv := server.NewDietServer(session)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving tool calls on stdio", "tools", len(srv.ToolNames()))
		errCh <- srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	}()

	select {
	case <-sigCh:
		slog.Info("received shutdown signal")
		cancel()
	case err = <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
		}
	}

	slog.Info("shutting down")
	if saveErr := srv.Save(); saveErr != nil {
		slog.Error("failed to save on shutdown", "error", saveErr)
	}
	return err
}
