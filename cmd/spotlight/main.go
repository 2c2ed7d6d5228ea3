// Package main provides the spotlight demo CLI. It opens a browser session
// with the visible cursor overlay attached, walks the cursor through a
// short tour of the given page, and optionally captures a screenshot so
// the overlay can be inspected offline.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/spotlight/pkg/browser"
	"github.com/entrhq/spotlight/pkg/config"
	"github.com/entrhq/spotlight/pkg/log"
	"github.com/entrhq/spotlight/pkg/logging"
)

const version = "0.1.0" // Version of the spotlight CLI

// Config holds the application configuration
type Config struct {
	URL         string
	ConfigPath  string
	Headless    bool
	NoCursor    bool
	CursorColor string
	Screenshot  string
	LogLevel    string
	LogFile     bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("spotlight v%s\n", version)
		return
	}

	logger := log.NewLogger(log.ParseLevel(cfg.LogLevel))

	if err := cfg.validate(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	// Config file is optional; defaults apply when it cannot be loaded.
	if err := config.Initialize(cfg.ConfigPath); err != nil {
		logger.Warningf("could not load config: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.URL, "url", "", "URL to open (required)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to config file (default ~/.spotlight/config.json)")
	flag.BoolVar(&cfg.Headless, "headless", false, "Run the browser headless")
	flag.BoolVar(&cfg.NoCursor, "no-cursor", false, "Disable the cursor overlay")
	flag.StringVar(&cfg.CursorColor, "cursor-color", "", "CSS color for the cursor marker")
	flag.StringVar(&cfg.Screenshot, "screenshot", "", "Write a screenshot to this path after the tour")
	flag.StringVar(&cfg.LogLevel, "log-level", "normal", "Log level: quiet, normal, verbose, trace")
	flag.BoolVar(&cfg.LogFile, "log-file", false, "Write browser/overlay diagnostics to ~/.spotlight/logs/")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()

	return cfg
}

func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("-url is required")
	}
	return nil
}

func run(cfg *Config, logger *log.Logger) error {
	// Browser/overlay diagnostics go either to the console logger or to a
	// session log file.
	var browserLog browser.Logger = logger
	if cfg.LogFile {
		fileLog, err := logging.NewLogger("browser")
		if err != nil {
			logger.Warningf("file logging unavailable: %v", err)
		} else {
			defer fileLog.Close()
			logger.Infof("Diagnostics: %s", fileLog.LogPath())
			browserLog = fileLog
		}
	}

	manager := browser.NewSessionManager(browserLog)

	logger.Infof("Starting Playwright...")
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	// Shut the browser down cleanly on Ctrl-C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		manager.Shutdown()
		os.Exit(0)
	}()

	opts := browser.DefaultSessionOptions()
	opts.Headless = opts.Headless || cfg.Headless
	if cfg.NoCursor {
		opts.ShowCursor = false
	}
	if cfg.CursorColor != "" {
		opts.CursorColor = cfg.CursorColor
	}

	session, err := manager.StartSession("tour", opts)
	if err != nil {
		return err
	}
	defer manager.CloseSession("tour")

	logger.Infof("Navigating to %s", cfg.URL)
	if err := session.Navigate(cfg.URL, browser.NavigateOptions{WaitUntil: "load"}); err != nil {
		return err
	}

	if err := tour(session, opts, logger); err != nil {
		return err
	}

	if cfg.Screenshot != "" {
		if _, err := session.Screenshot(browser.ScreenshotOptions{Path: cfg.Screenshot}); err != nil {
			return err
		}
		logger.Successf("Screenshot written to %s", cfg.Screenshot)
	}

	logger.Successf("Done")
	return nil
}

// tour walks the cursor through the corners and center of the viewport and
// clicks the first link if there is one.
func tour(session *browser.Session, opts browser.SessionOptions, logger *log.Logger) error {
	w := float64(opts.Viewport.Width)
	h := float64(opts.Viewport.Height)

	stops := []struct{ x, y float64 }{
		{w / 2, h / 2},
		{w * 0.15, h * 0.15},
		{w * 0.85, h * 0.15},
		{w * 0.85, h * 0.85},
		{w * 0.15, h * 0.85},
		{w / 2, h / 2},
	}

	for _, stop := range stops {
		logger.Verbosef("moving to (%.0f, %.0f)", stop.x, stop.y)
		if err := session.MoveMouse(stop.x, stop.y); err != nil {
			return err
		}
	}

	if err := session.Click(browser.ClickOptions{Selector: "a"}); err != nil {
		// Pages without links are fine; the tour is best-effort.
		logger.Verbosef("no link to click: %v", err)
	}

	return nil
}
