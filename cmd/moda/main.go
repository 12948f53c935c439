// Command moda is a terminal chat client for the shopping agent backend.
//
// Usage:
//
//	moda [flags]
//
// Flags:
//
//	-server string   Backend base URL (default http://localhost:8000)
//	-debug string    Path to a debug log file (default: logging disabled)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/modachat/moda"
	bt "github.com/modachat/moda/bubbletea"
	"github.com/modachat/moda/shopagent"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "moda: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		server   = flag.String("server", "", "Backend base URL (default http://localhost:8000)")
		session  = flag.String("session", "", "Existing session id to resume")
		debugLog = flag.String("debug", "", "Path to a debug log file")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := buildLogger(*debugLog)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	opts := []shopagent.Option{shopagent.WithLogger(logger)}
	if *server != "" {
		opts = append(opts, shopagent.WithBaseURL(*server))
	}
	client := shopagent.New(opts...)

	var convOpts []moda.ConversationOption
	if *session != "" {
		convOpts = append(convOpts, moda.WithSessionID(*session))
	}
	conv := moda.NewConversation(convOpts...)
	loop := moda.NewLoop(client, conv)

	sendFn := func(ctx context.Context, text string, onUpdate func(moda.Session)) error {
		return loop.Send(ctx, text, moda.WithSnapshotHandler(onUpdate))
	}

	tuiModel := bt.New(sendFn, conv.Snapshot(), moda.DefaultTheme())
	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// buildLogger returns a file-backed debug logger, or a nop logger when
// no path is given. The TUI owns the terminal, so logs never go to
// stdout/stderr.
func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("debug log: %w", err)
	}
	return logger, nil
}
