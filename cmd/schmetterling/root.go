package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/schmetterling/audio"
	"github.com/lixenwraith/schmetterling/config"
	"github.com/lixenwraith/schmetterling/core"
	"github.com/lixenwraith/schmetterling/engine"
)

// rootOptions holds global flags for all commands
type rootOptions struct {
	ConfigPath string
	Debug      bool
	Mute       bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "schmetterling",
		Short: "Terminal piano that releases butterflies",
		Long: `Schmetterling is a ten-key terminal piano. Every key plays a note and a
short clip and lets a butterfly fly up to a free spot on screen.
Some key sequences unlock special clips.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "write debug log to logs/")
	cmd.Flags().BoolVar(&opts.Mute, "mute", false, "disable audio")

	cmd.AddCommand(newDetectCommand(opts))

	return cmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	logger, logFile := setupLogging(opts.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Mute {
		cfg.Audio.Enabled = false
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// Panic Recovery: ensure terminal is reset even if the loop crashes
	core.SetCrashScreen(screen)
	defer core.SetCrashScreen(nil)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	sound := audio.NewManager(cfg.Audio, logger.With("component", "audio"))
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio initialization failed, continuing without audio", "error", err)
	}
	logger.Info("audio", "enabled", cfg.Audio.Enabled, "active", sound.Active())
	defer sound.Close()

	session, err := engine.NewSession(cfg, sound, nil, logger)
	if err != nil {
		return err
	}

	loop := engine.NewLoop(screen, session, nil, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx)
}
