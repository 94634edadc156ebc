// Zaparoo Import
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Import.
//
// Zaparoo Import is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Import is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Import.  If not, see <http://www.gnu.org/licenses/>.

// Package cli implements the zaparoo-import command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/ZaparooProject/zaparoo-import/pkg/config"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var formats = []string{formatTable, formatJSON, formatCSV}

// Options customizes the command tree. The zero value reads the config
// file, logs to the user data directory and touches the real system.
type Options struct {
	// Config skips loading the config file.
	Config *config.Instance

	// InitLogging replaces the default log setup.
	InitLogging func(cfg *config.Instance, verbose bool, stderr io.Writer) error

	// Service is passed to every service the commands create. Its Config
	// and DryRun fields are set by the command.
	Service service.Options
}

type app struct {
	cfg     *config.Instance
	opts    Options
	cfgPath string
	format  string
	verbose bool
}

// Execute runs the command line with args and returns the process exit
// code.
//
//nolint:gocritic // options struct copied on purpose
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts Options) int {
	root := NewRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

//nolint:gocritic // options struct copied on purpose
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Import games from PC launchers into Steam as non-Steam shortcuts",
		Long: "zaparoo-import finds the games installed through Epic Games, Ubisoft Connect,\n" +
			"EA App, GOG Galaxy and Battle.net and adds them to your Steam library.\n" +
			"Close Steam before importing: it rewrites its shortcuts on exit.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to config file (default "+config.Path("")+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVarP(&a.format, "format", "f", formatTable, "output format: table, json or csv")

	root.AddCommand(
		a.detectCommand(),
		a.gamesCommand(),
		a.importCommand(),
		a.shortcutsCommand(),
		a.removeCommand(),
		a.watchCommand(),
		versionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(formats, a.format) {
		return fmt.Errorf("unknown format %q, expected table, json or csv", a.format)
	}

	a.cfg = a.opts.Config
	if a.cfg == nil {
		cfg, err := config.NewConfig(config.Path(a.cfgPath), config.BaseDefaults)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
	}

	initLogging := a.opts.InitLogging
	if initLogging == nil {
		initLogging = defaultLogging
	}
	if err := initLogging(a.cfg, a.verbose, cmd.ErrOrStderr()); err != nil {
		return err
	}

	log.Debug().
		Str("version", config.AppVersion).
		Str("command", cmd.Name()).
		Str("config", a.cfg.CfgPath()).
		Msg("starting")
	return nil
}

func defaultLogging(cfg *config.Instance, verbose bool, stderr io.Writer) error {
	var writers []io.Writer
	if verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: stderr})
	}
	if err := helpers.InitLogging(config.LogDir(), cfg.DebugLogging() || verbose, writers...); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

func (a *app) service(dryRun bool) *service.Service {
	opts := a.opts.Service
	opts.Config = a.cfg
	opts.DryRun = dryRun
	return service.New(opts)
}

// warnIfSteamRunning tells the user changes may be lost. Steam keeps its
// own copy of the shortcuts and writes it back when it exits.
func warnIfSteamRunning(cmd *cobra.Command, svc *service.Service) {
	if !svc.SteamRunning(cmd.Context()) {
		return
	}
	log.Warn().Msg("steam is running, changes may be overwritten")
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(),
		"Warning: Steam is running. Exit Steam before importing or it may overwrite your shortcuts.")
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s/%s)\n",
				config.AppName, config.AppVersion, runtime.GOOS, runtime.GOARCH)
			return err //nolint:wrapcheck // output error
		},
	}
}
