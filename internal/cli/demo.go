package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/memwatch/internal/config"
	"github.com/Mr-Dark-debug/memwatch/internal/logging"
	"github.com/Mr-Dark-debug/memwatch/pkg/memwatch"
)

func newDemoCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Watch a set of changing variables live",
		Long: `demo plays the part of a host program: it watches one variable of every
type tag, changes them on a ticker and redraws the watch panel after each
tick. Stop it with Ctrl+C or --duration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(rf.configFile)
			if err != nil {
				return err
			}
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cfg)
		},
	}

	d := config.Default()
	f := cmd.Flags()
	f.Duration("interval", d.Interval, "time between ticks")
	f.Duration("duration", d.Duration, "stop after this long (0 runs until interrupted)")
	f.String("title", d.Title, "watch panel heading")
	f.String("log-level", d.Log.Level, "diagnostic log level: debug, info, warn, error")
	f.String("log-file", d.Log.File, "diagnostic log file (empty discards diagnostics)")
	f.Bool("log-timestamps", d.Log.Timestamps, "prefix log panel lines with the time")
	f.Int("log-scrollback", d.Log.Scrollback, "log panel lines kept")

	return cmd
}

// runDemo drives a Watcher from a ticker until ctx ends.
func runDemo(ctx context.Context, cfg *config.Config) error {
	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	w := memwatch.New(
		memwatch.WithLogger(logger),
		memwatch.WithTitle(cfg.Title),
		memwatch.WithSurface(memwatch.NewTerminalSurface(memwatch.TerminalOptions{
			Scrollback: cfg.Log.Scrollback,
			Timestamps: cfg.Log.Timestamps,
		})),
	)
	if err := w.Init(); err != nil {
		return fmt.Errorf("starting watch panel: %w", err)
	}
	defer w.End()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	panelLog := logging.NewPanel(w)
	vars := &demoVars{letter: 'A'}
	vars.watch(w)
	w.Refresh()
	panelLog.Info("demo started", "rows", w.Capacity(), "interval", cfg.Interval)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("demo stopped", "ticks", vars.tick)
			return nil
		case <-ticker.C:
			vars.step(w)
			w.Refresh()
			if vars.tick%50 == 0 {
				panelLog.Info("checkpoint", "tick", vars.tick, "counter", vars.counter, "temp", vars.temp)
			}
		}
	}
}

// demoVars is the fake host state, one field per type tag.
type demoVars struct {
	tick uint64

	letter  byte
	small   int8
	short   int16
	counter int32
	big     int64
	flags   uint8
	port    uint16
	hits    uint32
	total   uint64
	temp    float32
	ratio   float64
	ptr     uintptr
}

// pointerRow is unwatched and watched again periodically.
const pointerRow = 11

func (d *demoVars) watch(w *memwatch.Watcher) {
	w.Watch(unsafe.Pointer(&d.letter), 0, memwatch.Char)
	w.WatchVar(1, &d.small)
	w.WatchVar(2, &d.short)
	w.WatchVar(3, &d.counter)
	w.WatchVar(4, &d.big)
	w.WatchVar(5, &d.flags)
	w.WatchVar(6, &d.port)
	w.WatchVar(7, &d.hits)
	w.WatchVar(8, &d.total)
	w.WatchVar(9, &d.temp)
	w.WatchVar(10, &d.ratio)
	w.WatchVar(pointerRow, &d.ptr)
}

func (d *demoVars) step(w *memwatch.Watcher) {
	d.tick++

	d.letter = 'A' + byte(d.tick%26)
	d.small++
	d.short -= 3
	d.counter++
	d.big -= 1 << 33
	d.flags ^= 1 << (d.tick % 8)
	d.port = uint16(d.tick * 7)
	if d.tick%3 == 0 {
		d.hits++
	}
	d.total += d.tick * 1_000_003
	d.temp = 20 + 5*float32(math.Sin(float64(d.tick)/10))
	d.ratio = float64(d.hits) / float64(d.tick)

	if d.tick%2 == 0 {
		d.ptr = uintptr(unsafe.Pointer(&d.counter))
	} else {
		d.ptr = uintptr(unsafe.Pointer(&d.big))
	}

	switch d.tick % 80 {
	case 40:
		w.Unwatch(pointerRow)
		w.Logf("row %d unwatched\n", pointerRow)
	case 0:
		w.WatchVar(pointerRow, &d.ptr)
		w.Logf("row %d watched again\n", pointerRow)
	}
}
