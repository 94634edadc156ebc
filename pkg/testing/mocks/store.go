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

package mocks

import (
	"github.com/ZaparooProject/zaparoo-import/pkg/steam/shortcuts"
	"github.com/stretchr/testify/mock"
)

// MockShortcutStore is a testify mock for the shortcut store used by the
// importer.
type MockShortcutStore struct {
	mock.Mock
}

func (m *MockShortcutStore) Path() string {
	return m.Called().String(0)
}

func (m *MockShortcutStore) Load() ([]shortcuts.Entry, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		entries, _ := v.([]shortcuts.Entry)
		//nolint:wrapcheck // Mock returns are already wrapped by caller
		return entries, args.Error(1)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return nil, args.Error(1)
}

func (m *MockShortcutStore) Upsert(e shortcuts.Entry) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(e).Error(0)
}

func (m *MockShortcutStore) Save() error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called().Error(0)
}
