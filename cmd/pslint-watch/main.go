package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/linter/rules"
)

// scriptExtensions are the file suffixes the watcher re-lints.
var scriptExtensions = map[string]bool{
	".ps1":  true,
	".psm1": true,
	".psd1": true,
}

func main() {
	watchDir := flag.String("dir", ".", "Directory to watch for script changes")
	configFile := flag.String("config", "", "Path to lint config file (pslint.yaml)")
	delaySeconds := flag.Int("delay", 2, "Debounce delay in seconds before re-linting changed files")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := loadConfig(*configFile, *watchDir)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load lint config")
	}

	registry := rules.NewDefaultRegistry()
	engine := linter.NewEngine(registry, linter.WithConfig(cfg))
	runner := linter.NewRunner(engine, cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.WithError(err).Fatal("Failed to create watcher")
	}
	defer watcher.Close()

	if err := setupWatcher(watcher, *watchDir); err != nil {
		logger.WithError(err).Fatal("Failed to setup watcher")
	}

	relinter := newRelinter(runner, logger, time.Duration(*delaySeconds)*time.Second)
	relinter.Start()
	defer relinter.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logger.Infof("Watching for script changes in %s", *watchDir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 &&
				scriptExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				logger.WithField("file", event.Name).Info("Modified file")
				relinter.Queue(event.Name)
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.WithError(err).Warn("Error watching new directory")
					}
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.WithError(err).Warn("Watcher error")
		case <-sigCh:
			logger.Info("Shutting down")
			return
		}
	}
}

func loadConfig(configFile, dir string) (*linter.Config, error) {
	if configFile != "" {
		return linter.LoadConfig(configFile)
	}
	return linter.LoadConfigFromDir(dir)
}

// setupWatcher recursively adds all directories to the watcher
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if name := info.Name(); strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// relinter debounces file change events and re-lints the settled set.
type relinter struct {
	runner *linter.Runner
	logger *logrus.Logger
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	stopCh chan struct{}
	wg     sync.WaitGroup
	workCh chan []string
}

func newRelinter(runner *linter.Runner, logger *logrus.Logger, delay time.Duration) *relinter {
	return &relinter{
		runner:  runner,
		logger:  logger,
		delay:   delay,
		pending: make(map[string]struct{}),
		stopCh:  make(chan struct{}),
		workCh:  make(chan []string, 16),
	}
}

func (r *relinter) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case files := <-r.workCh:
				r.lint(files)
			case <-r.stopCh:
				return
			}
		}
	}()
}

func (r *relinter) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}

// Queue adds a changed file and (re)arms the debounce timer. Rapid saves
// of the same file collapse into one lint run.
func (r *relinter) Queue(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[path] = struct{}{}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.flush)
}

func (r *relinter) flush() {
	r.mu.Lock()
	files := make([]string, 0, len(r.pending))
	for f := range r.pending {
		files = append(files, f)
	}
	r.pending = make(map[string]struct{})
	r.mu.Unlock()

	if len(files) == 0 {
		return
	}
	select {
	case r.workCh <- files:
	case <-r.stopCh:
	}
}

func (r *relinter) lint(files []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results, err := r.runner.LintFiles(ctx, files)
	if err != nil {
		r.logger.WithError(err).Warn("Lint run failed")
		return
	}

	for _, fr := range results {
		entry := r.logger.WithField("file", fr.Path)
		if fr.Err != nil {
			entry.WithError(fr.Err).Warn("Lint error")
			continue
		}
		if fr.Result == nil || len(fr.Result.Diagnostics) == 0 {
			entry.Info("Clean")
			continue
		}
		for _, d := range fr.Result.Diagnostics {
			entry.WithFields(logrus.Fields{
				"line":     d.Span.StartLine,
				"rule":     d.Rule,
				"severity": string(d.Severity),
			}).Warn(d.Message)
		}
	}

	summary := linter.Summarize(results)
	r.logger.WithFields(logrus.Fields{
		"files":       summary.Files,
		"diagnostics": summary.Diagnostics,
		"errors":      summary.Errors,
		"warnings":    summary.Warnings,
	}).Info("Lint run complete")
}
