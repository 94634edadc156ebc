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

// Package launchers knows which third-party game launchers exist, where
// they install themselves and how to hand a game back to them for launch.
package launchers

// Detection sources, reported in DetectionResult.Source.
const (
	SourceOverride = "override"
	SourceRegistry = "registry"
	SourcePath     = "path"

	// SourceRegistryKey marks a launcher whose registry key exists while no
	// install directory was found. InstallPath is then the default
	// location and may not exist.
	SourceRegistryKey = "registry-key"
)

// DetectionResult is the outcome of probing one launcher. InstallPath is
// set if and only if Detected is true.
type DetectionResult struct {
	ID          string `json:"id" csv:"id"`
	Name        string `json:"name" csv:"name"`
	Icon        string `json:"icon" csv:"-"`
	InstallPath string `json:"installPath,omitempty" csv:"install_path"`
	Source      string `json:"source,omitempty" csv:"source"`
	Detected    bool   `json:"detected" csv:"detected"`
}

// GameRecord is one installed game reported by a launcher. Executable is
// what Steam runs and InstallDir its working directory; for games started
// through their launcher's client these point at the client. LauncherID
// need not be in the catalog; such games get no launch options.
type GameRecord struct {
	ID         string `json:"id" csv:"id" validate:"required,nocontrol"`
	Name       string `json:"name" csv:"name" validate:"required,nocontrol"`
	Executable string `json:"executable" csv:"executable" validate:"exepath"`
	InstallDir string `json:"installDir" csv:"install_dir" validate:"abspath,nocontrol"`
	LauncherID string `json:"launcherId" csv:"launcher" validate:"required"`
	Icon       string `json:"icon,omitempty" csv:"icon" validate:"nocontrol"`
}
