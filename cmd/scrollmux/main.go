// Package main is the scrollmux demo viewer: a virtualized list that
// scrolls inside the terminal through the scroll coordination subsystem.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollmux/internal/config"
	"github.com/dshills/scrollmux/internal/mux"
	"github.com/dshills/scrollmux/internal/script"
	"github.com/dshills/scrollmux/internal/surface"
	"github.com/dshills/scrollmux/internal/tracker"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	scriptPath string
	rows       int
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	settings, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	scriptPath := opts.scriptPath
	if scriptPath == "" {
		scriptPath = settings.ScriptPath
	}

	var engine *script.Engine
	if scriptPath != "" {
		engine, err = script.NewEngine(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer engine.Close()
	}

	term, err := surface.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	notifier := surface.NewResizeNotifier()
	view := surface.NewViewport(term)
	registry := mux.New()

	v := &viewer{
		screen: term.Screen(),
		rows:   opts.rows,
		engine: engine,
	}

	tr := tracker.New(registry, notifier,
		tracker.WithSurface(view),
		tracker.WithResetInterval(settings.ResetInterval()),
		tracker.WithFallbackSize(settings.FallbackWidth, settings.FallbackHeight),
		tracker.WithRender(v.render),
		tracker.WithOnResize(v.resized),
	)
	v.trackerID = tr.ID()
	if err := tr.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer tr.Stop()

	// Live reload of the reset interval while the viewer runs.
	if opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath, func(s config.Settings) {
			tr.SetResetInterval(s.ResetInterval())
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		if err := watcher.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	// Restore the terminal on SIGINT/SIGTERM delivered outside the
	// event loop.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Screen().PostEvent(tcell.NewEventInterrupt(nil))
	}()

	return v.loop(term, view, notifier)
}

// viewer draws a virtualized list of rows: only the slice of rows inside
// the tracked window is rendered, and rendering dims while a scroll burst
// is in flight.
type viewer struct {
	mu        sync.Mutex
	screen    tcell.Screen
	rows      int
	frame     tracker.Frame
	engine    *script.Engine
	trackerID string
	scriptErr string
}

// render is the tracker's rendering callback.
func (v *viewer) render(f tracker.Frame) {
	// Script failures never interrupt rendering; they are reported on
	// the status line.
	var hookErr error
	if v.engine != nil {
		hookErr = v.engine.OnScroll(f)
	}

	v.mu.Lock()
	v.frame = f
	if hookErr != nil {
		v.scriptErr = hookErr.Error()
	}
	v.draw()
	v.mu.Unlock()
}

// resized forwards dimension changes to the script hook.
func (v *viewer) resized(size surface.Size) {
	if v.engine == nil {
		return
	}
	if err := v.engine.OnResize(size); err != nil {
		v.mu.Lock()
		v.scriptErr = err.Error()
		v.mu.Unlock()
	}
}

// draw paints the visible rows and a status line. Callers hold v.mu.
func (v *viewer) draw() {
	f := v.frame
	v.screen.Clear()

	rowStyle := tcell.StyleDefault
	if f.IsScrolling {
		rowStyle = rowStyle.Dim(true)
	}

	listHeight := f.Height - 1
	for y := 0; y < listHeight; y++ {
		idx := f.ScrollTop + y
		if idx >= v.rows {
			break
		}
		drawText(v.screen, 0, y, rowStyle, fmt.Sprintf("%6d  item %d", idx, idx))
	}

	state := "idle"
	if f.IsScrolling {
		state = "scrolling"
	}
	status := fmt.Sprintf(" %s  top %d/%d  %s  (q quit, j/k or wheel to scroll) ",
		shortID(v.trackerID), f.ScrollTop, v.rows, state)
	if v.scriptErr != "" {
		status += "script: " + v.scriptErr + " "
	}
	drawText(v.screen, 0, f.Height-1, tcell.StyleDefault.Reverse(true), status)

	v.screen.Show()
}

// loop runs the terminal event loop until quit.
func (v *viewer) loop(term *surface.Terminal, view *surface.Viewport, notifier *surface.ResizeNotifier) int {
	screen := term.Screen()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return 0
		}

		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return 0
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				return 0
			case ev.Rune() == 'j' || ev.Key() == tcell.KeyDown:
				v.scrollBy(view, 1)
			case ev.Rune() == 'k' || ev.Key() == tcell.KeyUp:
				v.scrollBy(view, -1)
			case ev.Key() == tcell.KeyPgDn:
				v.scrollBy(view, v.pageSize())
			case ev.Key() == tcell.KeyPgUp:
				v.scrollBy(view, -v.pageSize())
			case ev.Rune() == 'g':
				view.WriteScroll(surface.Offset{})
			case ev.Rune() == 'G':
				view.WriteScroll(surface.Offset{Top: v.maxScroll()})
			}
		default:
			term.HandleEvent(ev, view, notifier)
		}

		// Clamp against content length; the tracker itself only clamps
		// the lower bound.
		if top := view.ReadScroll().Top; top > v.maxScroll() {
			view.WriteScroll(surface.Offset{Top: v.maxScroll()})
		}
	}
}

func (v *viewer) scrollBy(view *surface.Viewport, delta int) {
	view.ScrollBy(0, delta)
}

func (v *viewer) pageSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frame.Height > 2 {
		return v.frame.Height - 2
	}
	return 1
}

func (v *viewer) maxScroll() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	listHeight := v.frame.Height - 1
	if listHeight < 1 {
		listHeight = 1
	}
	max := v.rows - listHeight
	if max < 0 {
		max = 0
	}
	return max
}

// shortID abbreviates a tracker ID for the status line.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// drawText writes a string starting at (x, y).
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Path to Lua hook script")
	flag.IntVar(&opts.rows, "rows", 10000, "Number of rows in the demo list")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scrollmux - scroll coordination demo viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scrollmux [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("scrollmux %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.rows < 1 {
		opts.rows = 1
	}

	return opts
}
