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

//go:build !windows

package registry

// System is the registry of the running OS. There is none here, so every
// read returns ErrUnavailable.
type System struct{}

// NewSystem returns a Reader that reports the registry as unavailable.
func NewSystem() Reader {
	return System{}
}

func (System) StringValue(Root, string, string) (string, error) {
	return "", ErrUnavailable
}

func (System) Values(Root, string) (map[string]any, error) {
	return nil, ErrUnavailable
}

func (System) SubKeys(Root, string) ([]string, error) {
	return nil, ErrUnavailable
}
