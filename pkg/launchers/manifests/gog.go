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
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const galaxyDBName = "galaxy-2.0.db"

const galaxyQuery = `
SELECT ibp.productId,
       COALESCE(ld.title, ''),
       COALESCE(ibp.installationPath, ''),
       COALESCE(ptlp.executablePath, '')
FROM InstalledBaseProducts ibp
LEFT JOIN LimitedDetails ld ON ld.productId = ibp.productId
LEFT JOIN PlayTasks pt ON pt.gameReleaseKey = 'gog_' || ibp.productId AND pt.isPrimary = 1
LEFT JOIN PlayTaskLaunchParameters ptlp ON ptlp.playTaskId = pt.id
ORDER BY ibp.productId`

// DBOpener opens the GOG Galaxy database at path.
type DBOpener func(path string) (*sql.DB, error)

// OpenGalaxyDB opens a Galaxy database read-only so a running client is
// never disturbed.
func OpenGalaxyDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+filepath.ToSlash(path)+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open galaxy database: %w", err)
	}
	return db, nil
}

// GalaxyReader reads installed products from GOG Galaxy's SQLite
// database. Games are launched through the Galaxy client; the primary play
// task's executable becomes the icon.
type GalaxyReader struct {
	Open DBOpener
}

func (r *GalaxyReader) Read(ctx context.Context, src Source) ([]launchers.GameRecord, error) {
	dir, ok := firstDir(src)
	if !ok {
		log.Debug().Strs("dirs", src.Dirs).Msg("galaxy storage directory not found")
		return nil, nil
	}

	dbPath := joinPath(dir, galaxyDBName)
	if !helpers.FileExists(src.Fs, dbPath) {
		log.Debug().Str("path", dbPath).Msg("galaxy database not found")
		return nil, nil
	}

	open := r.Open
	if open == nil {
		open = OpenGalaxyDB
	}
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close galaxy database")
		}
	}()

	rows, err := db.QueryContext(ctx, galaxyQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query galaxy products: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close galaxy query rows")
		}
	}()

	exe := clientExe(src)
	var games []launchers.GameRecord
	for rows.Next() {
		var (
			productID          int64
			title, installPath string
			gameExe            string
		)
		if err := rows.Scan(&productID, &title, &installPath, &gameExe); err != nil {
			log.Warn().Err(err).Msg("failed to scan galaxy product row")
			continue
		}

		installPath = strings.TrimRight(installPath, `/\`)
		if title == "" && installPath != "" {
			title = helpers.PathBase(installPath)
		}

		games = append(games, launchers.GameRecord{
			ID:         strconv.FormatInt(productID, 10),
			Name:       title,
			Executable: exe,
			InstallDir: src.InstallPath,
			Icon:       gameExe,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating galaxy products: %w", err)
	}

	return games, nil
}
