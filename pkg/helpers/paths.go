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

package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// EnvLookup resolves an environment variable, like os.LookupEnv.
type EnvLookup func(string) (string, bool)

var windowsEnvRe = regexp.MustCompile(`%([^%\\/:]+)%`)

// ExpandPath substitutes %VAR%, $VAR, ${VAR} and a leading ~ in p using
// lookup (os.LookupEnv when nil). The second result is false when any
// referenced variable is unset or empty; the returned path is then not
// usable and should be skipped.
func ExpandPath(p string, lookup EnvLookup) (string, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	ok := true

	p = windowsEnvRe.ReplaceAllStringFunc(p, func(m string) string {
		v, found := lookup(m[1 : len(m)-1])
		if !found || v == "" {
			ok = false
			return m
		}
		return v
	})

	if strings.Contains(p, "$") {
		p = os.Expand(p, func(name string) string {
			v, found := lookup(name)
			if !found || v == "" {
				ok = false
			}
			return v
		})
	}

	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, found := lookup("HOME")
		if !found || home == "" {
			home, found = lookup("USERPROFILE")
		}
		if !found || home == "" {
			return p, false
		}
		p = home + p[1:]
	}

	return p, ok
}

// NormalizePathForComparison normalizes a path for cross-platform case-insensitive comparison.
// Converts to forward slashes and lowercases for consistent matching across all platforms.
func NormalizePathForComparison(path string) string {
	p := filepath.ToSlash(filepath.Clean(strings.ReplaceAll(path, `\`, "/")))
	return strings.ToLower(p)
}

// PathHasPrefix checks if path is within root directory, handling separator boundaries correctly.
// This avoids the prefix bug where "c:/games2/x.exe" would incorrectly match root "c:/games".
func PathHasPrefix(path, root string) bool {
	normPath := NormalizePathForComparison(path)
	normRoot := NormalizePathForComparison(root)

	if normPath == normRoot {
		return true
	}

	if normRoot == "" {
		return false
	}

	if !strings.HasSuffix(normRoot, "/") {
		normRoot += "/"
	}

	return strings.HasPrefix(normPath, normRoot)
}

// PathBase returns the last element of a path. Both / and \ count as
// separators so Windows paths read from manifests work on any host.
func PathBase(path string) string {
	if path == "" {
		return "."
	}

	path = strings.TrimRight(path, `/\`)
	if path == "" {
		return "."
	}

	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// PathExt returns the file extension of the last path element, including
// the dot. Hidden files without an extension return "".
func PathExt(path string) string {
	base := PathBase(path)

	if base == "" || base == "." || base == ".." {
		return ""
	}

	lastDot := strings.LastIndex(base, ".")
	if lastDot <= 0 {
		return ""
	}

	return base[lastDot:]
}

// DirExists reports whether path exists and is a directory.
func DirExists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.DirExists(fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("error checking directory")
		return false
	}
	return ok
}

// FileExists reports whether path exists and is a regular file.
func FileExists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// CopyFile copies sourcePath to destPath, creating the destination
// directory if needed.
func CopyFile(fs afero.Fs, sourcePath, destPath string) error {
	inputFile, err := fs.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", sourcePath, err)
	}
	defer func(inputFile afero.File) {
		_ = inputFile.Close()
	}(inputFile)

	if err := fs.MkdirAll(filepath.Dir(destPath), 0o750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	outputFile, err := fs.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func(outputFile afero.File) {
		_ = outputFile.Close()
	}(outputFile)

	_, err = io.Copy(outputFile, inputFile)
	if err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	err = outputFile.Sync()
	if err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}
