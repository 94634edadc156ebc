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

package steam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcessLister returns the executable names of running processes.
type ProcessLister func(ctx context.Context) ([]string, error)

var steamProcessNames = []string{"steam.exe", "steam", "steam_osx"}

func systemProcesses(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// IsRunning reports whether a Steam client process is running. Steam
// rewrites shortcuts.vdf on exit, so imports made while it runs may be
// lost.
func (c *Client) IsRunning(ctx context.Context) bool {
	names, err := c.processes(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("could not check for running steam")
		return false
	}
	for _, name := range names {
		base := strings.ToLower(filepath.Base(name))
		for _, want := range steamProcessNames {
			if base == want {
				return true
			}
		}
	}
	return false
}
