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

// Package registry reads values from the Windows registry. Every caller goes
// through Reader so detection and enumeration can be tested on any OS with
// a fake, and run on non-Windows hosts where the registry simply does not
// exist.
package registry

import (
	"errors"
	"strings"
)

var (
	// ErrUnavailable is returned on operating systems without a registry.
	ErrUnavailable = errors.New("registry is not available on this platform")
	// ErrNotExist is returned when a key or value does not exist.
	ErrNotExist = errors.New("registry key or value does not exist")
)

// Root is a predefined top level registry key.
type Root int

const (
	LocalMachine Root = iota
	CurrentUser
)

func (r Root) String() string {
	switch r {
	case LocalMachine:
		return "HKLM"
	case CurrentUser:
		return "HKCU"
	default:
		return "HK?"
	}
}

// Reader is read-only access to the registry.
type Reader interface {
	// StringValue returns a REG_SZ or REG_EXPAND_SZ value.
	StringValue(root Root, path, name string) (string, error)
	// Values returns every value of a key. Strings are returned as string,
	// DWORD and QWORD values as uint64; other types are skipped.
	Values(root Root, path string) (map[string]any, error)
	// SubKeys returns the names of the direct children of a key.
	SubKeys(root Root, path string) ([]string, error)
}

// UninstallKeys are the locations programs register themselves for
// "Apps & features", 64 bit view first.
var UninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// JoinPath joins registry key path segments with backslashes.
func JoinPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, `\`)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, `\`)
}
