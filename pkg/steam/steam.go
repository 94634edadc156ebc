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

// Package steam locates the local Steam installation and the per-user
// files non-Steam shortcuts are written to.
package steam

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/config"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	ErrSteamNotFound = errors.New("steam installation not found")
	ErrNoUser        = errors.New("no steam user found")
)

// registryLocations are checked in order; 64-bit systems first.
var registryLocations = []struct {
	path  string
	value string
	root  registry.Root
}{
	{root: registry.LocalMachine, path: `SOFTWARE\Wow6432Node\Valve\Steam`, value: "InstallPath"},
	{root: registry.LocalMachine, path: `SOFTWARE\Valve\Steam`, value: "InstallPath"},
	{root: registry.CurrentUser, path: `SOFTWARE\Valve\Steam`, value: "SteamPath"},
}

// Options configures a Client. Zero values select the real filesystem,
// registry and environment, and the platform's usual install locations.
type Options struct {
	Fs       afero.Fs
	Registry registry.Reader
	Env      helpers.EnvLookup
	// Candidates are install directories tried after the registry. They
	// may contain environment variable tokens.
	Candidates []string
	Processes  ProcessLister
}

// Client finds Steam and its users.
type Client struct {
	fs         afero.Fs
	reg        registry.Reader
	env        helpers.EnvLookup
	processes  ProcessLister
	candidates []string
}

// NewClient creates a new Steam client with the given options.
//
//nolint:gocritic // options struct copied on purpose
func NewClient(opts Options) *Client {
	c := &Client{
		fs:         opts.Fs,
		reg:        opts.Registry,
		env:        opts.Env,
		candidates: opts.Candidates,
		processes:  opts.Processes,
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.reg == nil {
		c.reg = registry.NewSystem()
	}
	if c.env == nil {
		c.env = os.LookupEnv
	}
	if c.candidates == nil {
		c.candidates = defaultCandidates()
	}
	if c.processes == nil {
		c.processes = systemProcesses
	}
	return c
}

// FindSteamDir locates the Steam installation directory: the configured
// install_dir first, then the registry, then the usual install locations.
func (c *Client) FindSteamDir(cfg *config.Instance) (string, error) {
	if cfg != nil {
		if dir := cfg.SteamInstallDir(); dir != "" {
			if helpers.DirExists(c.fs, dir) {
				log.Debug().Msgf("using user-configured Steam directory: %s", dir)
				return dir, nil
			}
			log.Warn().Msgf("user-configured Steam directory not found: %s", dir)
		}
	}

	for _, loc := range registryLocations {
		installPath, err := c.reg.StringValue(loc.root, loc.path, loc.value)
		if err != nil {
			continue
		}
		installPath = filepath.FromSlash(strings.TrimSpace(installPath))
		if helpers.DirExists(c.fs, installPath) {
			log.Debug().Msgf("found Steam installation via registry: %s", installPath)
			return installPath, nil
		}
	}

	for _, candidate := range c.candidates {
		path, ok := helpers.ExpandPath(candidate, c.env)
		if !ok {
			continue
		}
		if helpers.DirExists(c.fs, path) {
			log.Debug().Msgf("found Steam installation: %s", path)
			return path, nil
		}
	}

	return "", ErrSteamNotFound
}

// UserDir is the userdata directory of one Steam account.
func UserDir(steamDir string, accountID uint32) string {
	return filepath.Join(steamDir, "userdata", strconv.FormatUint(uint64(accountID), 10))
}

// ShortcutsPath is the location of an account's shortcuts.vdf.
func ShortcutsPath(steamDir string, accountID uint32) string {
	return filepath.Join(UserDir(steamDir, accountID), "config", "shortcuts.vdf")
}

// GridDir holds an account's custom library artwork.
func GridDir(steamDir string, accountID uint32) string {
	return filepath.Join(UserDir(steamDir, accountID), "config", "grid")
}

// ShortcutGameID converts a shortcut's app id to the 64-bit game id Steam
// uses for non-Steam games: (appid << 32) | 0x02000000.
func ShortcutGameID(appID uint32) uint64 {
	return (uint64(appID) << 32) | 0x02000000
}

// RunGameURL builds the steam:// URL that starts a non-Steam shortcut.
func RunGameURL(appID uint32) string {
	return "steam://rungameid/" + strconv.FormatUint(ShortcutGameID(appID), 10)
}
