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

package manifests

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
)

// uninstallEntry is the subset of an "Apps & features" registry entry the
// readers care about.
type uninstallEntry struct {
	Key             string `mapstructure:"-"`
	DisplayName     string `mapstructure:"DisplayName"`
	DisplayIcon     string `mapstructure:"DisplayIcon"`
	InstallLocation string `mapstructure:"InstallLocation"`
	Publisher       string `mapstructure:"Publisher"`
	UninstallString string `mapstructure:"UninstallString"`
}

func decodeUninstall(values map[string]any) (uninstallEntry, error) {
	var entry uninstallEntry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &entry,
	})
	if err != nil {
		return entry, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return entry, fmt.Errorf("failed to decode uninstall entry: %w", err)
	}
	return entry, nil
}

// lookupUninstall reads a single named uninstall entry from the first view
// that has it.
func lookupUninstall(reg registry.Reader, name string) (uninstallEntry, bool) {
	for _, base := range registry.UninstallKeys {
		values, err := reg.Values(registry.LocalMachine, registry.JoinPath(base, name))
		if err != nil {
			continue
		}
		entry, err := decodeUninstall(values)
		if err != nil {
			log.Debug().Err(err).Str("key", name).Msg("skipping uninstall entry")
			continue
		}
		entry.Key = name
		return entry, true
	}
	return uninstallEntry{}, false
}

// listUninstall reads every uninstall entry from both registry views. A
// view that does not exist is skipped; an error is only returned when no
// view could be read.
func listUninstall(ctx context.Context, reg registry.Reader) ([]uninstallEntry, error) {
	var (
		entries []uninstallEntry
		errs    []error
		read    bool
	)

	for _, base := range registry.UninstallKeys {
		names, err := reg.SubKeys(registry.LocalMachine, base)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		read = true

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err //nolint:wrapcheck // context error passed through
			}
			values, err := reg.Values(registry.LocalMachine, registry.JoinPath(base, name))
			if err != nil {
				continue
			}
			entry, err := decodeUninstall(values)
			if err != nil {
				log.Debug().Err(err).Str("key", name).Msg("skipping uninstall entry")
				continue
			}
			entry.Key = name
			entries = append(entries, entry)
		}
	}

	if !read {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}
