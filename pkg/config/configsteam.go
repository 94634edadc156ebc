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

package config

const (
	DefaultConcurrency = 4
	MaxConcurrency     = 16
)

type Steam struct {
	InstallDir string `toml:"install_dir,omitempty" validate:"abspath"`
	UserID     string `toml:"user_id,omitempty" validate:"omitempty,numeric"`
	Backup     bool   `toml:"backup"`
}

type Import struct {
	GridIcons   bool `toml:"grid_icons"`
	TagLauncher bool `toml:"tag_launcher"`
}

type Detect struct {
	Concurrency int `toml:"concurrency"`
}

// SteamInstallDir returns the user configured Steam directory, if any.
func (c *Instance) SteamInstallDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.InstallDir
}

// SteamUserID returns the configured Steam account id (the userdata
// directory name), if any.
func (c *Instance) SteamUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.UserID
}

func (c *Instance) SetSteamUserID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Steam.UserID = id
}

// BackupShortcuts reports whether shortcuts.vdf is copied to a .bak file
// before each save.
func (c *Instance) BackupShortcuts() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.Backup
}

func (c *Instance) GridIcons() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Import.GridIcons
}

func (c *Instance) TagLauncher() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Import.TagLauncher
}

// DetectConcurrency returns the number of launchers probed at once,
// clamped to 1..MaxConcurrency. Zero or negative means the default.
func (c *Instance) DetectConcurrency() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := c.vals.Detect.Concurrency
	switch {
	case n <= 0:
		return DefaultConcurrency
	case n > MaxConcurrency:
		return MaxConcurrency
	default:
		return n
	}
}
