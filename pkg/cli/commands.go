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

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-import/pkg/importer"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/service"
	"github.com/ZaparooProject/zaparoo-import/pkg/steam"
	"github.com/ZaparooProject/zaparoo-import/pkg/steam/shortcuts"
	"github.com/spf13/cobra"
)

func (a *app) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), format: a.format}
}

func (a *app) detectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Show which launchers are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := a.service(false).DetectAll(cmd.Context())
			return a.printer(cmd).print(results, results, func(tw io.Writer) {
				_, _ = fmt.Fprintln(tw, "LAUNCHER\tNAME\tINSTALLED\tSOURCE\tPATH")
				for _, r := range results {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						r.ID, r.Name, yesNo(r.Detected), r.Source, r.InstallPath)
				}
			})
		},
	}
}

func (a *app) gamesCommand() *cobra.Command {
	var queries []string
	cmd := &cobra.Command{
		Use:       "games [launcher...]",
		Short:     "List installed games, from every detected launcher by default",
		ValidArgs: launchers.IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := a.service(false).Games(cmd.Context(), args...)
			if err != nil {
				return err //nolint:wrapcheck // service errors are user-facing
			}
			games = service.FilterGames(games, queries)
			return a.printer(cmd).print(games, games, func(tw io.Writer) {
				_, _ = fmt.Fprintln(tw, "LAUNCHER\tID\tNAME\tEXECUTABLE")
				for _, g := range games {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.LauncherID, g.ID, g.Name, g.Executable)
				}
			})
		},
	}
	cmd.Flags().StringArrayVarP(&queries, "game", "g", nil, "only games whose id or name matches (repeatable)")
	return cmd
}

type shortcutRow struct {
	AppID         string `json:"appId" csv:"app_id"`
	Name          string `json:"name" csv:"name"`
	Exe           string `json:"exe" csv:"exe"`
	StartDir      string `json:"startDir" csv:"start_dir"`
	LaunchOptions string `json:"launchOptions" csv:"launch_options"`
	Tags          string `json:"tags" csv:"tags"`
	RunURL        string `json:"runUrl" csv:"run_url"`
	Hidden        bool   `json:"hidden" csv:"hidden"`
}

func (a *app) shortcutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "List the non-Steam shortcuts of the Steam user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.service(false).Shortcuts()
			if err != nil {
				return err //nolint:wrapcheck // service errors are user-facing
			}

			rows := make([]shortcutRow, len(entries))
			for i, e := range entries {
				rows[i] = shortcutRow{
					AppID:         shortcuts.FormatAppID(e.AppID),
					Name:          e.AppName,
					Exe:           shortcuts.Unquote(e.Exe),
					StartDir:      shortcuts.Unquote(e.StartDir),
					LaunchOptions: e.LaunchOptions,
					Tags:          strings.Join(e.Tags, ";"),
					RunURL:        steam.RunGameURL(e.AppID),
					Hidden:        e.IsHidden,
				}
			}

			return a.printer(cmd).print(rows, rows, func(tw io.Writer) {
				_, _ = fmt.Fprintln(tw, "APP ID\tNAME\tEXE\tLAUNCH OPTIONS\tTAGS")
				for _, r := range rows {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.AppID, r.Name, r.Exe, r.LaunchOptions, r.Tags)
				}
			})
		},
	}
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <appid>",
		Short: "Remove a non-Steam shortcut by app id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := shortcuts.ParseAppID(args[0])
			if err != nil {
				return fmt.Errorf("invalid app id %q: %w", args[0], err)
			}

			svc := a.service(false)
			warnIfSteamRunning(cmd, svc)
			removed, err := svc.RemoveShortcut(appID)
			if err != nil {
				return err //nolint:wrapcheck // service errors are user-facing
			}

			out := cmd.OutOrStdout()
			if !removed {
				_, _ = fmt.Fprintf(out, "No shortcut with app id %s\n", args[0])
				return nil
			}
			_, _ = fmt.Fprintf(out, "Removed shortcut %s\n", shortcuts.FormatAppID(appID))
			return nil
		},
	}
}

type importRow struct {
	Status   string `csv:"status"`
	Launcher string `csv:"launcher"`
	Name     string `csv:"name"`
	AppID    string `csv:"app_id"`
	Reason   string `csv:"reason"`
}

func importRows(games []launchers.GameRecord, out *importer.Outcome) []importRow {
	launcherOf := make(map[uint32]string, len(games))
	for _, g := range games {
		launcherOf[shortcuts.GenerateAppID(g.Executable, g.Name)] = g.LauncherID
	}

	status := "imported"
	if out.DryRun {
		status = "would import"
	}

	rows := make([]importRow, 0, len(out.Entries)+len(out.Failed))
	for _, e := range out.Entries {
		rows = append(rows, importRow{
			Status:   status,
			Launcher: launcherOf[e.AppID],
			Name:     e.AppName,
			AppID:    shortcuts.FormatAppID(e.AppID),
		})
	}
	for _, f := range out.Failed {
		rows = append(rows, importRow{
			Status:   "failed",
			Launcher: f.LauncherID,
			Name:     f.Name,
			Reason:   f.Reason,
		})
	}
	return rows
}

func (a *app) importCommand() *cobra.Command {
	var (
		queries []string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "import [launcher...]",
		Short: "Add installed games to Steam, from every detected launcher by default",
		Long: "Add installed games to Steam as non-Steam shortcuts. Games that were\n" +
			"imported before are updated in place, so running import again is safe.",
		ValidArgs: launchers.IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.service(dryRun)
			games, err := svc.Games(cmd.Context(), args...)
			if err != nil {
				return err //nolint:wrapcheck // service errors are user-facing
			}
			games = service.FilterGames(games, queries)
			if len(queries) > 0 && len(games) == 0 {
				return fmt.Errorf("no installed game matches %s", strings.Join(queries, ", "))
			}

			if !dryRun {
				warnIfSteamRunning(cmd, svc)
			}

			out, importErr := svc.ImportGames(cmd.Context(), games)
			if importErr != nil && len(out.Failed) == 0 {
				return importErr //nolint:wrapcheck // service errors are user-facing
			}

			target := ""
			if t, err := svc.Target(); err == nil {
				target = t.Store.Path()
			}

			rows := importRows(games, &out)
			err = a.printer(cmd).print(out, rows, func(tw io.Writer) {
				_, _ = fmt.Fprintln(tw, "STATUS\tLAUNCHER\tNAME\tAPP ID\tREASON")
				for _, r := range rows {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Status, r.Launcher, r.Name, r.AppID, r.Reason)
				}
				_, _ = fmt.Fprintln(tw)
				switch {
				case importErr != nil:
					_, _ = fmt.Fprintf(tw, "Nothing was imported into %s\n", target)
				case out.DryRun:
					_, _ = fmt.Fprintf(tw, "Dry run: %d of %d games would be imported into %s\n",
						out.Success, len(games), target)
				default:
					_, _ = fmt.Fprintf(tw, "Imported %d of %d games into %s\n", out.Success, len(games), target)
				}
			})
			if importErr != nil {
				return importErr //nolint:wrapcheck // service errors are user-facing
			}
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&queries, "game", "g", nil, "only import games whose id or name matches (repeatable)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be imported without writing anything")
	return cmd
}

func (a *app) watchCommand() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Import games now and again whenever a launcher installs or removes one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := a.service(false)
			warnIfSteamRunning(cmd, svc)
			out := cmd.OutOrStdout()
			err := svc.Watch(cmd.Context(), service.WatchOptions{
				Interval: interval,
				OnImport: func(o importer.Outcome, err error) {
					if err != nil {
						_, _ = fmt.Fprintf(out, "Import failed: %v\n", err)
						return
					}
					_, _ = fmt.Fprintf(out, "Imported %d games, %d failed\n", o.Success, len(o.Failed))
				},
			})
			return err //nolint:wrapcheck // service errors are user-facing
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", service.DefaultWatchInterval, "minimum time between imports")
	return cmd
}
