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

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exeParams struct {
	Exe string `validate:"exepath"`
}

type launcherParams struct {
	Launcher string `validate:"required"`
	Dir      string `validate:"abspath"`
}

type textParams struct {
	Name string `validate:"required,nocontrol"`
	Icon string `validate:"nocontrol"`
}

func TestValidateExePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		exe   string
		valid bool
	}{
		{name: "windows drive path", exe: `C:\Games\Hades\Hades.exe`, valid: true},
		{name: "forward slash drive path", exe: `D:/Games/x.exe`, valid: true},
		{name: "unc path", exe: `\\nas\games\x.exe`, valid: true},
		{name: "empty", exe: "", valid: false},
		{name: "whitespace", exe: "   ", valid: false},
		{name: "relative", exe: `Games\x.exe`, valid: false},
		{name: "drive relative", exe: `C:x.exe`, valid: false},
		{name: "contains quote", exe: `C:\Games\"x".exe`, valid: false},
		{name: "contains newline", exe: "C:\\Games\\x\n.exe", valid: false},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(exeParams{Exe: tt.exe})
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "exepath", verr.Fields[0].Tag)
		})
	}
}

func TestValidateNoControl(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	require.NoError(t, v.Validate(textParams{Name: "Hades"}))
	require.NoError(t, v.Validate(textParams{Name: "Pokémon ✨", Icon: `C:\icons\x.ico`}))

	for _, bad := range []textParams{
		{Name: "Bad\x00Name"},
		{Name: "Tab\tName"},
		{Name: "Hades", Icon: "C:\\x\x00.ico"},
	} {
		err := v.Validate(bad)
		var verr *Error
		require.ErrorAs(t, err, &verr, "%q", bad)
		assert.Equal(t, "nocontrol", verr.Fields[0].Tag)
		assert.Contains(t, err.Error(), "must not contain control characters")
	}

	err := v.Validate(launcherParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launcher is required")
}

func TestValidateAbsPath(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	require.NoError(t, v.Validate(launcherParams{Launcher: "epic", Dir: `C:\Epic`}))
	require.NoError(t, v.Validate(launcherParams{Launcher: "epic"}))

	err := v.Validate(launcherParams{Launcher: "epic", Dir: "relative"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "abspath", verr.Fields[0].Tag)
}

func TestErrorMessageJoinsFields(t *testing.T) {
	t.Parallel()

	e := &Error{Fields: []FieldError{{Message: "a"}, {Message: "b"}}}
	assert.Equal(t, "a; b", e.Error())
	assert.Equal(t, "validation failed", (&Error{}).Error())
}
