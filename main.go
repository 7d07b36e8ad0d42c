package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/olivier-w/cadence/internal/config"
	"github.com/olivier-w/cadence/internal/media"
	"github.com/olivier-w/cadence/internal/player"
	"github.com/olivier-w/cadence/internal/queue"
	"github.com/olivier-w/cadence/internal/spectrum"
	"github.com/olivier-w/cadence/internal/ui"
)

const debugLog = "cadence-debug.log"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := config.ParseFlags(args)
	if err != nil {
		return err
	}

	if flags.Debug || os.Getenv("CADENCE_DEBUG") != "" {
		f, err := tea.LogToFile(debugLog, "cadence")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadOrDefault(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	targets := flags.Args()
	if len(targets) == 0 {
		targets = []string{cfg.Library.Dir}
	}
	files, start, err := media.Resolve(targets)
	if err != nil {
		return err
	}
	log.Printf("library: %d tracks", len(files))

	// FFT setup failure is fatal.
	fft, err := spectrum.NewFFT(cfg.Spectrum.WindowSize)
	if err != nil {
		return fmt.Errorf("spectrum setup: %w", err)
	}
	analyzer, err := spectrum.New(cfg.SpectrumTuning(), fft)
	if err != nil {
		return fmt.Errorf("spectrum setup: %w", err)
	}

	out, err := player.NewOutput(cfg.Audio.BufferSize, cfg.Audio.Volume)
	if err != nil {
		return err
	}
	defer out.Stop()

	model, err := ui.New(cfg, queue.New(files, start), out, analyzer)
	if err != nil {
		return err
	}

	program := tea.NewProgram(&model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*ui.Model); ok {
		return m.Err()
	}
	return nil
}
