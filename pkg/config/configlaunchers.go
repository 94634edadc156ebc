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

import (
	"slices"
	"strings"
)

type Launchers struct {
	Disabled []string           `toml:"disabled,omitempty,multiline"`
	Default  []LaunchersDefault `toml:"default,omitempty" validate:"dive"`
}

// LaunchersDefault overrides detection for one launcher. InstallDir replaces
// the detected install path and ManifestDir the launcher's manifest location.
type LaunchersDefault struct {
	Launcher    string `toml:"launcher" validate:"required"`
	InstallDir  string `toml:"install_dir,omitempty" validate:"abspath"`
	ManifestDir string `toml:"manifest_dir,omitempty" validate:"abspath"`
}

func (c *Instance) LookupLauncherDefaults(launcherID string) (LaunchersDefault, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, defaultLauncher := range c.vals.Launchers.Default {
		if strings.EqualFold(defaultLauncher.Launcher, launcherID) {
			return defaultLauncher, true
		}
	}
	return LaunchersDefault{}, false
}

// LauncherDefaults returns every configured override.
func (c *Instance) LauncherDefaults() []LaunchersDefault {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Launchers.Default)
}

func (c *Instance) IsLauncherDisabled(launcherID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.ContainsFunc(c.vals.Launchers.Disabled, func(id string) bool {
		return strings.EqualFold(id, launcherID)
	})
}

func (c *Instance) DisabledLaunchers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Launchers.Disabled)
}
