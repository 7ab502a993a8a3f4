// Package main provides the entry point for maskform.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/abdullathedruid/maskform/internal/app"
	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/logger"
	"github.com/abdullathedruid/maskform/internal/submit"
	"github.com/abdullathedruid/maskform/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: <data dir>/config.yaml)")
	logPath := flag.String("log", "", "path to log file (default: <data dir>/maskform.log)")
	showVersion := flag.Bool("version", false, "print version and exit")
	showHistory := flag.Bool("history", false, "print all stored submissions as JSON and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Short())
		return
	}

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Ensure data directory exists
	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	if *showHistory {
		if err := printHistory(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading submissions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *logPath == "" {
		*logPath = cfg.LogFile()
	}
	if err := logger.Init(*logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	// Create and run the application
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting maskform: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if sub, ok := application.LastSubmission(); ok {
		data, err := json.MarshalIndent(sub, "", "  ")
		if err == nil {
			fmt.Println(string(data))
		}
	}
}

func printHistory(cfg *config.Config) error {
	store := submit.NewStore(cfg.SubmissionsFile())
	if err := store.Load(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store.GetAll(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
