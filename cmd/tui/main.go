// flatdango-tui is the terminal storefront.  It talks to the catalog over
// HTTP exactly like the web storefront and logs to a file because stdout
// belongs to the UI.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/config"
	"github.com/iliyamo/flatdango/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()
	defaults := config.LoadClient()

	var catalogURL, logFile string
	var timeout time.Duration

	flagSet := pflag.NewFlagSet("flatdango-tui", pflag.ContinueOnError)
	flagSet.StringVar(&catalogURL, "catalog-url", defaults.CatalogURL, "base URL of the movie catalog")
	flagSet.DurationVar(&timeout, "timeout", defaults.CatalogTimeout, "per-request catalog timeout")
	flagSet.StringVar(&logFile, "log-file", "flatdango-tui.log", "write log lines to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintln(os.Stderr, "usage: flatdango-tui [flags]")
		flagSet.PrintDefaults()
		return nil
	}

	f, err := tea.LogToFile(logFile, "tui")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	log.Printf("tui: starting against %s", catalogURL)

	model := tui.NewModel(catalog.NewClient(catalogURL, timeout), timeout)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
