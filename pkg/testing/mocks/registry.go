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
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/stretchr/testify/mock"
)

// MockRegistryReader is a testify mock for registry.Reader.
//
// Example:
//
//	reg := &MockRegistryReader{}
//	reg.On("StringValue", registry.LocalMachine, mock.Anything, "InstallPath").
//		Return(`C:\Steam`, nil)
type MockRegistryReader struct {
	mock.Mock
}

var _ registry.Reader = (*MockRegistryReader)(nil)

func (m *MockRegistryReader) StringValue(root registry.Root, path, name string) (string, error) {
	args := m.Called(root, path, name)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.String(0), args.Error(1)
}

func (m *MockRegistryReader) Values(root registry.Root, path string) (map[string]any, error) {
	args := m.Called(root, path)
	if v := args.Get(0); v != nil {
		values, _ := v.(map[string]any)
		//nolint:wrapcheck // Mock returns are already wrapped by caller
		return values, args.Error(1)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return nil, args.Error(1)
}

func (m *MockRegistryReader) SubKeys(root registry.Root, path string) ([]string, error) {
	args := m.Called(root, path)
	if v := args.Get(0); v != nil {
		keys, _ := v.([]string)
		//nolint:wrapcheck // Mock returns are already wrapped by caller
		return keys, args.Error(1)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return nil, args.Error(1)
}
