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
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/spf13/afero"
)

// findFiles returns every regular file below root with the given extension,
// sorted. The real filesystem is walked in parallel with fastwalk; other
// afero filesystems fall back to afero.Walk.
func findFiles(ctx context.Context, afs afero.Fs, root, ext string) ([]string, error) {
	var found []string
	if _, ok := afs.(*afero.OsFs); ok {
		var err error
		found, err = fastFind(ctx, root, ext)
		if err != nil {
			return nil, err
		}
	} else {
		err := afero.Walk(afs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr //nolint:wrapcheck // context error passed through
			}
			if info.Mode().IsRegular() && strings.EqualFold(filepath.Ext(path), ext) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err //nolint:wrapcheck // walk errors carry the path
		}
	}

	slices.Sort(found)
	return found, nil
}

func fastFind(ctx context.Context, root, ext string) ([]string, error) {
	var (
		mu    sync.Mutex
		found []string
	)

	err := fastwalk.Walk(nil, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr //nolint:wrapcheck // context error passed through
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ext) {
			mu.Lock()
			found = append(found, path)
			mu.Unlock()
		}
		return nil
	})
	if err != nil && !errors.Is(err, fastwalk.ErrSkipFiles) {
		return nil, err //nolint:wrapcheck // walk errors carry the path
	}
	return found, nil
}
