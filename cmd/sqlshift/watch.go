package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sqlshift/sqlshift"
)

// dirWatcher converts every .sql file in a directory as it appears or
// changes, writing the converted script next to it in the output directory.
// Events are debounced so editors that write in several steps trigger one
// conversion.
type dirWatcher struct {
	mu sync.Mutex

	engine *sqlshift.Engine
	cfg    *ToolConfig
	source sqlshift.Dialect
	target sqlshift.Dialect

	fsWatcher *fsnotify.Watcher
	debounce  time.Duration

	pending map[string]struct{}
	timer   *time.Timer
}

// watchMetrics counts conversion outcomes for the end-of-watch summary.
type watchMetrics struct {
	mu        sync.Mutex
	requests  int
	successes int
	errors    int
}

func (m *watchMetrics) RecordRequest(_, _ sqlshift.Dialect) {
	m.mu.Lock()
	m.requests++
	m.mu.Unlock()
}

func (m *watchMetrics) RecordSuccess(_, _ sqlshift.Dialect) {
	m.mu.Lock()
	m.successes++
	m.mu.Unlock()
}

func (m *watchMetrics) RecordError(_, _ sqlshift.Dialect) {
	m.mu.Lock()
	m.errors++
	m.mu.Unlock()
}

func (m *watchMetrics) RecordDuration(_, _ sqlshift.Dialect, _ time.Duration) {}

func (m *watchMetrics) summary() (requests, successes, errors int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests, m.successes, m.errors
}

func runWatch(cmd *cobra.Command, args []string) error {
	metrics := &watchMetrics{}
	cfg, engine, source, target, err := resolveSetup(sqlshift.WithMetrics(metrics))
	if err != nil {
		return err
	}
	if cfg.Watch.InputDir == "" || cfg.Watch.OutputDir == "" {
		return fmt.Errorf("watch requires watch.input_dir and watch.output_dir in the config file")
	}
	inputDir := cfg.resolvePath(cfg.Watch.InputDir)
	outputDir := cfg.resolvePath(cfg.Watch.OutputDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(inputDir); err != nil {
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}

	w := &dirWatcher{
		engine:    engine,
		cfg:       cfg,
		source:    source,
		target:    target,
		fsWatcher: fsw,
		debounce:  time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		pending:   make(map[string]struct{}),
	}

	log.Printf("watching %s (%s -> %s), output to %s", inputDir, source, target, outputDir)

	// Convert whatever is already there.
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("list input dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".sql") {
			w.convertFile(filepath.Join(inputDir, entry.Name()), outputDir)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			requests, successes, errors := metrics.summary()
			log.Printf("watcher stopped: %d conversions (%d ok, %d with failures)",
				requests, successes, errors)
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, outputDir)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
			if cfg.Watch.FailOnError {
				return err
			}
		}
	}
}

// handleEvent accumulates write/create events and schedules a debounced
// flush. The last event per file wins.
func (w *dirWatcher) handleEvent(event fsnotify.Event, outputDir string) {
	if !strings.HasSuffix(strings.ToLower(event.Name), ".sql") {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.flush(outputDir) })
}

func (w *dirWatcher) flush(outputDir string) {
	w.mu.Lock()
	files := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	for path := range files {
		w.convertFile(path, outputDir)
	}
}

func (w *dirWatcher) convertFile(path, outputDir string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("read %s: %v", path, err)
		return
	}

	result := w.engine.Convert(string(data), w.source, w.target, w.cfg.conversionOptions())
	reportResult(result)

	outPath := filepath.Join(outputDir, filepath.Base(path))
	if err := os.WriteFile(outPath, []byte(result.ConvertedSQL+"\n"), 0o644); err != nil {
		log.Printf("write %s: %v", outPath, err)
		return
	}
	status := "ok"
	if !result.Success {
		status = "with failed statements"
	}
	log.Printf("converted %s -> %s (%s)", filepath.Base(path), outPath, status)
}
