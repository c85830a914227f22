package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/cutline/internal/config"
	"github.com/papapumpkin/cutline/internal/telemetry"
	"github.com/papapumpkin/cutline/internal/ui"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry [events.jsonl]",
	Short: "View JSONL editing events",
	Long: `Reads and formats a telemetry file written by "cutline open --telemetry".

Without an argument, reads the configured telemetry_file.
With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	telemetryCmd.Flags().String("session", "", "only show events from this session")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	follow, _ := cmd.Flags().GetBool("follow")
	session, _ := cmd.Flags().GetString("session")

	path, err := resolveTelemetryPath(args)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	tail := &eventTail{
		printer: ui.NewWriter(cmd.OutOrStdout()),
		reader:  bufio.NewReader(f),
		session: session,
	}
	if err := tail.drain(); err != nil {
		return fmt.Errorf("telemetry: read %s: %w", path, err)
	}

	if !follow {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return tailFollow(ctx, tail, path)
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx ends.
func tailFollow(ctx context.Context, tail *eventTail, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			if err := tail.drain(); err != nil {
				return fmt.Errorf("telemetry: read %s: %w", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("telemetry: watch %s: %w", path, err)
		}
	}
}

// eventTail prints complete JSONL lines as they become available. A
// trailing partial line is held until its newline arrives.
type eventTail struct {
	printer *ui.Printer
	reader  *bufio.Reader
	session string
	partial string
}

func (t *eventTail) drain() error {
	for {
		chunk, err := t.reader.ReadString('\n')
		t.partial += chunk
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		printEvent(t.printer, strings.TrimSpace(t.partial), t.session)
		t.partial = ""
	}
}

func printEvent(printer *ui.Printer, line, session string) {
	if line == "" {
		return
	}
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		printer.Info("??? " + line)
		return
	}
	if session != "" && evt.Session != session {
		return
	}
	printer.Event(evt)
}

// resolveTelemetryPath returns the file named on the command line or the
// configured telemetry_file.
func resolveTelemetryPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.TelemetryFile == "" {
		return "", errors.New("telemetry: no file given and telemetry_file is not configured")
	}
	return cfg.TelemetryFile, nil
}
