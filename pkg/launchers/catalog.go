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

package launchers

import (
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
)

// Launcher IDs.
const (
	Epic      = "epic"
	Ubisoft   = "ubisoft"
	EA        = "ea"
	GOG       = "gog"
	BattleNet = "battlenet"
)

// Manifest kinds, one reader each.
const (
	ManifestEpicItems  = "epic-items"
	ManifestUbisoftReg = "ubisoft-registry"
	ManifestEAContent  = "ea-localcontent"
	ManifestGalaxyDB   = "galaxy-db"
	ManifestUninstall  = "uninstall-registry"
)

// RegistryProbe locates a launcher through the registry. With Value set
// the value holds the install directory; without it the key existing is
// enough to count the launcher as present.
type RegistryProbe struct {
	Key   string
	Value string
	Root  registry.Root
}

// ManifestConvention describes where a launcher records installed games.
// Paths are directories tried in order, RegistryKey a key whose subkeys
// list the games.
type ManifestConvention struct {
	Kind        string
	RegistryKey string
	Paths       []string
}

// Profile is the static description of a launcher. Paths may contain
// %VAR%, $VAR or ${VAR} tokens.
type Profile struct {
	Registry  *RegistryProbe
	ID        string
	Name      string
	Icon      string
	ClientExe string
	Manifest  ManifestConvention
	Paths     []string
}

var catalog = []Profile{
	{
		ID:   Epic,
		Name: "Epic Games",
		Icon: "🎮",
		Registry: &RegistryProbe{
			Root: registry.LocalMachine,
			Key:  `SOFTWARE\WOW6432Node\Epic Games\EpicGamesLauncher`,
		},
		Paths: []string{
			`C:\Program Files (x86)\Epic Games\Launcher`,
			`C:\Program Files\Epic Games\Launcher`,
			`%ProgramFiles(x86)%\Epic Games\Launcher`,
			`%ProgramFiles%\Epic Games\Launcher`,
		},
		Manifest: ManifestConvention{
			Kind: ManifestEpicItems,
			Paths: []string{
				`%ProgramData%\Epic\EpicGamesLauncher\Data\Manifests`,
				`C:\ProgramData\Epic\EpicGamesLauncher\Data\Manifests`,
			},
		},
	},
	{
		ID:   Ubisoft,
		Name: "Ubisoft Connect",
		Icon: "🎯",
		Registry: &RegistryProbe{
			Root:  registry.LocalMachine,
			Key:   `SOFTWARE\WOW6432Node\Ubisoft\Launcher`,
			Value: "InstallDir",
		},
		Paths: []string{
			`C:\Program Files (x86)\Ubisoft\Ubisoft Game Launcher`,
			`C:\Program Files\Ubisoft\Ubisoft Game Launcher`,
			`%ProgramFiles(x86)%\Ubisoft\Ubisoft Game Launcher`,
			`%ProgramFiles%\Ubisoft\Ubisoft Game Launcher`,
		},
		ClientExe: "upc.exe",
		Manifest: ManifestConvention{
			Kind:        ManifestUbisoftReg,
			RegistryKey: `SOFTWARE\WOW6432Node\Ubisoft\Launcher\Installs`,
		},
	},
	{
		ID:   EA,
		Name: "EA App",
		Icon: "⚡",
		Registry: &RegistryProbe{
			Root:  registry.LocalMachine,
			Key:   `SOFTWARE\WOW6432Node\Electronic Arts\EA Desktop`,
			Value: "InstallLocation",
		},
		Paths: []string{
			`C:\Program Files\Electronic Arts\EA Desktop`,
			`C:\Program Files (x86)\Electronic Arts\EA Desktop`,
			`%ProgramFiles%\Electronic Arts\EA Desktop`,
			`%ProgramFiles(x86)%\Electronic Arts\EA Desktop`,
		},
		ClientExe: "EADesktop.exe",
		Manifest: ManifestConvention{
			Kind: ManifestEAContent,
			Paths: []string{
				`%ProgramData%\Origin\LocalContent`,
				`C:\ProgramData\Origin\LocalContent`,
			},
		},
	},
	{
		ID:   GOG,
		Name: "GOG Galaxy",
		Icon: "🌟",
		Registry: &RegistryProbe{
			Root:  registry.LocalMachine,
			Key:   `SOFTWARE\WOW6432Node\GOG.com\GalaxyClient\paths`,
			Value: "client",
		},
		Paths: []string{
			`C:\Program Files (x86)\GOG Galaxy`,
			`C:\Program Files\GOG Galaxy`,
			`%ProgramFiles(x86)%\GOG Galaxy`,
			`%ProgramFiles%\GOG Galaxy`,
		},
		ClientExe: "GalaxyClient.exe",
		Manifest: ManifestConvention{
			Kind: ManifestGalaxyDB,
			Paths: []string{
				`%ProgramData%\GOG.com\Galaxy\storage`,
				`C:\ProgramData\GOG.com\Galaxy\storage`,
			},
		},
	},
	{
		ID:   BattleNet,
		Name: "Battle.net",
		Icon: "⚔️",
		Registry: &RegistryProbe{
			Root: registry.LocalMachine,
			Key:  `SOFTWARE\WOW6432Node\Blizzard Entertainment\Battle.net`,
		},
		Paths: []string{
			`C:\Program Files (x86)\Battle.net`,
			`C:\Program Files\Battle.net`,
			`%ProgramFiles(x86)%\Battle.net`,
			`%ProgramFiles%\Battle.net`,
		},
		ClientExe: "Battle.net.exe",
		Manifest: ManifestConvention{
			Kind: ManifestUninstall,
		},
	},
}

// Catalog returns every known launcher in display order. The returned
// profiles are copies and may be modified by the caller.
func Catalog() []Profile {
	out := make([]Profile, len(catalog))
	for i, p := range catalog {
		out[i] = p.clone()
	}
	return out
}

// IDs returns the id of every known launcher in display order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, p := range catalog {
		ids[i] = p.ID
	}
	return ids
}

// Lookup returns the profile with the given id, ignoring case.
func Lookup(id string) (Profile, bool) {
	for _, p := range catalog {
		if strings.EqualFold(p.ID, id) {
			return p.clone(), true
		}
	}
	return Profile{}, false
}

func (p Profile) clone() Profile {
	if p.Registry != nil {
		r := *p.Registry
		p.Registry = &r
	}
	p.Paths = slices.Clone(p.Paths)
	p.Manifest.Paths = slices.Clone(p.Manifest.Paths)
	return p
}
