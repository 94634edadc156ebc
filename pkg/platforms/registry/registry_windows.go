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

//go:build windows

package registry

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	winreg "golang.org/x/sys/windows/registry"
)

// System reads the live Windows registry.
type System struct{}

// NewSystem returns a Reader backed by the Windows registry.
func NewSystem() Reader {
	return System{}
}

func rootKey(root Root) (winreg.Key, error) {
	switch root {
	case LocalMachine:
		return winreg.LOCAL_MACHINE, nil
	case CurrentUser:
		return winreg.CURRENT_USER, nil
	default:
		return 0, fmt.Errorf("unknown registry root: %d", root)
	}
}

func open(root Root, path string, access uint32) (winreg.Key, error) {
	rk, err := rootKey(root)
	if err != nil {
		return 0, err
	}
	key, err := winreg.OpenKey(rk, path, access)
	if errors.Is(err, winreg.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s\\%s", ErrNotExist, root, path)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open registry key %s\\%s: %w", root, path, err)
	}
	return key, nil
}

func closeKey(key winreg.Key) {
	if err := key.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing registry key")
	}
}

func (System) StringValue(root Root, path, name string) (string, error) {
	key, err := open(root, path, winreg.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer closeKey(key)

	v, _, err := key.GetStringValue(name)
	if errors.Is(err, winreg.ErrNotExist) {
		return "", fmt.Errorf("%w: %s\\%s\\%s", ErrNotExist, root, path, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read registry value %s: %w", name, err)
	}
	return v, nil
}

func (System) Values(root Root, path string) (map[string]any, error) {
	key, err := open(root, path, winreg.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer closeKey(key)

	names, err := key.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry values of %s: %w", path, err)
	}

	values := make(map[string]any, len(names))
	for _, name := range names {
		_, valType, err := key.GetValue(name, nil)
		if err != nil {
			log.Debug().Err(err).Str("value", name).Msg("skipping unreadable registry value")
			continue
		}
		switch valType {
		case winreg.SZ, winreg.EXPAND_SZ:
			if s, _, err := key.GetStringValue(name); err == nil {
				values[name] = s
			}
		case winreg.DWORD, winreg.QWORD:
			if n, _, err := key.GetIntegerValue(name); err == nil {
				values[name] = n
			}
		}
	}
	return values, nil
}

func (System) SubKeys(root Root, path string) ([]string, error) {
	key, err := open(root, path, winreg.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, err
	}
	defer closeKey(key)

	names, err := key.ReadSubKeyNames(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry subkeys of %s: %w", path, err)
	}
	return names, nil
}
