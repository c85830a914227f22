package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/cutline/internal/arrangement"
	"github.com/papapumpkin/cutline/internal/config"
	"github.com/papapumpkin/cutline/internal/engine"
	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/logging"
	"github.com/papapumpkin/cutline/internal/remote"
	"github.com/papapumpkin/cutline/internal/telemetry"
	"github.com/papapumpkin/cutline/internal/tui"
	"github.com/papapumpkin/cutline/internal/ui"
	"github.com/papapumpkin/cutline/internal/viewport"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// openCmd launches the interactive timeline.
var openCmd = &cobra.Command{
	Use:   "open [arrangement.toml]",
	Short: "Open the interactive timeline",
	Long: `Open the timeline in the terminal. With an arrangement file the clips it
lists are placed on the tracks and the file is watched: saving it reloads the
clips. Without one the timeline starts empty.

Space plays and pauses, +/- zoom, and the mouse scrubs the ruler and drags
clips. With --remote the timeline also serves its state over HTTP and a
websocket that accepts play, zoom and seek commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().Int("zoom", 0, "initial zoom level 1-6 (overrides the arrangement)")
	openCmd.Flags().Int("fps", 0, "frame rate while playing or scrolling")
	openCmd.Flags().Bool("remote", false, "serve state and accept commands over HTTP")
	openCmd.Flags().String("remote-addr", "", "listen address for --remote")
	openCmd.Flags().String("telemetry", "", "append JSONL editing events to this file")
	openCmd.Flags().Bool("no-watch", false, "do not reload the arrangement when it changes")
	_ = viper.BindPFlag("fps", openCmd.Flags().Lookup("fps"))
	_ = viper.BindPFlag("remote.enabled", openCmd.Flags().Lookup("remote"))
	_ = viper.BindPFlag("remote.addr", openCmd.Flags().Lookup("remote-addr"))
	_ = viper.BindPFlag("telemetry_file", openCmd.Flags().Lookup("telemetry"))
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var arr *arrangement.Arrangement
	if len(args) == 1 {
		arr, err = loadArrangement(ui.New(), args[0])
		if err != nil {
			return err
		}
	}

	if !isStderrTTY() {
		return errors.New("cutline open requires a TTY (terminal)")
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var emitter *telemetry.Emitter
	if cfg.TelemetryFile != "" {
		emitter, err = telemetry.NewEmitter(cfg.TelemetryFile)
		if err != nil {
			return err
		}
		defer emitter.Close()
	}

	level := startZoom(cmd, cfg, arr)
	if !level.Valid() {
		return fmt.Errorf("zoom level %d: %w", int(level), zoom.ErrInvalidZoomLevel)
	}
	q := frame.NewQueue()
	pane := viewport.NewPane()
	eng := engine.New(level, q, pane,
		engine.WithLogger(logger.With("component", "engine")),
		engine.WithRecorder(emitter),
		engine.WithTuning(engine.Tuning{
			FollowPaddingPx: cfg.FollowPaddingPx,
			EdgeThresholdPx: cfg.EdgeThresholdPx,
			EdgeMaxSpeedPx:  cfg.EdgeMaxSpeedPx,
		}),
	)
	defer eng.Close()

	model := tui.NewAppModel(eng, q, pane)
	model.SetFPS(cfg.FPS)
	model.StatusBar.Name = "untitled"
	if arr != nil {
		eng.LoadMediaItems(arr.MediaItems())
		model.StatusBar.Name = arrangementName(arr)
		if noWatch, _ := cmd.Flags().GetBool("no-watch"); !noWatch {
			w, err := arrangement.NewWatcher(args[0])
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()
			model.Changes = w.Changes
		}
	}

	sender := &lateSender{}
	bridge := tui.NewRemoteBridge(sender)
	var srv *remote.Server
	if cfg.Remote.Enabled {
		srv = remote.NewServer(bridge, remote.WithLogger(logger.With("component", "remote")))
		model.Publisher = srv
	}

	p := tui.NewProgram(model)
	sender.set(p)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	var wg sync.WaitGroup
	if srv != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveRemote(ctx, srv, cfg.Remote.Addr, bridge, logger)
		}()
	}

	logger.Info("timeline opened", "zoom", int(level), "remote", cfg.Remote.Enabled)
	_, runErr := p.Run()
	cancel()
	wg.Wait()
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// serveRemote runs the remote server until ctx ends and reports its
// lifecycle on the timeline's message line.
func serveRemote(ctx context.Context, srv *remote.Server, addr string, bridge *tui.RemoteBridge, logger *slog.Logger) {
	bridge.Info("remote listening on " + addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Error("remote server failed", "addr", addr, "error", err)
		bridge.Error("remote: " + err.Error())
	}
}

// loadArrangement loads and validates an arrangement file, printing every
// problem before failing.
func loadArrangement(printer *ui.Printer, path string) (*arrangement.Arrangement, error) {
	a, err := arrangement.Load(path)
	if err != nil {
		return nil, err
	}
	if errs := arrangement.Validate(a); len(errs) > 0 {
		printer.ArrangementValidateResult(a, errs)
		return nil, fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	return a, nil
}

// startZoom picks the initial zoom: the --zoom flag, then the arrangement's
// [timeline] zoom, then the configured zoom.
func startZoom(cmd *cobra.Command, cfg config.Config, arr *arrangement.Arrangement) zoom.Level {
	if z, _ := cmd.Flags().GetInt("zoom"); cmd.Flags().Changed("zoom") {
		return zoom.Level(z)
	}
	if arr != nil {
		if z, ok := arr.ZoomLevel(); ok {
			return z
		}
	}
	return zoom.Level(cfg.Zoom)
}

func arrangementName(a *arrangement.Arrangement) string {
	if a.Timeline.Name != "" {
		return a.Timeline.Name
	}
	return a.SourceFile
}

func isStderrTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// lateSender lets the remote bridge exist before the program it feeds.
// Messages sent before set are dropped.
type lateSender struct {
	mu sync.Mutex
	p  *tui.Program
}

func (s *lateSender) set(p *tui.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *lateSender) Send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
