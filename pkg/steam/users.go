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

package steam

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// steamID64Base is the SteamID64 of account id 0 in the public universe.
const steamID64Base = 76561197960265728

// User is a Steam account that has signed in on this machine.
type User struct {
	AccountName string
	PersonaName string
	SteamID64   uint64
	AccountID   uint32
	MostRecent  bool
}

// AccountIDFromSteamID64 returns the 32-bit account id, the name of the
// account's userdata directory.
func AccountIDFromSteamID64(id uint64) (uint32, bool) {
	if id < steamID64Base || id-steamID64Base > uint64(^uint32(0)) {
		return 0, false
	}
	return uint32(id - steamID64Base), true
}

// normalizeVDFKeys recursively lowercases all keys in a map[string]any tree.
// Valve's VDF format is case-insensitive, but Go maps use exact string matching.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}

// loginUsers parses config/loginusers.vdf. A missing or unreadable file
// gives no users.
func (c *Client) loginUsers(steamDir string) []User {
	path := filepath.Join(steamDir, "config", "loginusers.vdf")
	f, err := c.fs.Open(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("loginusers.vdf not readable")
		return nil
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing loginusers.vdf")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("error parsing loginusers.vdf")
		return nil
	}
	m = normalizeVDFKeys(m)

	entries, ok := m["users"].(map[string]any)
	if !ok {
		return nil
	}

	users := make([]User, 0, len(entries))
	for id, v := range entries {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		steamID, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			log.Debug().Str("id", id).Msg("skipping login user with invalid steam id")
			continue
		}
		accountID, ok := AccountIDFromSteamID64(steamID)
		if !ok {
			continue
		}
		u := User{SteamID64: steamID, AccountID: accountID}
		u.AccountName, _ = fields["accountname"].(string)
		u.PersonaName, _ = fields["personaname"].(string)
		if recent, ok := fields["mostrecent"].(string); ok {
			u.MostRecent = recent == "1"
		}
		users = append(users, u)
	}

	slices.SortFunc(users, func(a, b User) int {
		switch {
		case a.AccountID < b.AccountID:
			return -1
		case a.AccountID > b.AccountID:
			return 1
		default:
			return 0
		}
	})
	return users
}

// userdataIDs lists the numeric account directories under userdata.
func (c *Client) userdataIDs(steamDir string) []uint32 {
	entries, err := afero.ReadDir(c.fs, filepath.Join(steamDir, "userdata"))
	if err != nil {
		return nil
	}
	var ids []uint32
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := strconv.ParseUint(e.Name(), 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint32(id))
	}
	slices.Sort(ids)
	return ids
}

// Users returns every account with a userdata directory, enriched with
// names from loginusers.vdf where available.
func (c *Client) Users(steamDir string) []User {
	known := make(map[uint32]User)
	for _, u := range c.loginUsers(steamDir) {
		known[u.AccountID] = u
	}

	ids := c.userdataIDs(steamDir)
	users := make([]User, 0, len(ids))
	for _, id := range ids {
		u, ok := known[id]
		if !ok {
			u = User{AccountID: id, SteamID64: uint64(id) + steamID64Base}
		}
		users = append(users, u)
	}
	return users
}

// ResolveUser picks the account to import into. A preferred account id
// must exist; otherwise the most recent login with a userdata directory
// wins, falling back to the first userdata directory.
func (c *Client) ResolveUser(steamDir, preferred string) (User, error) {
	users := c.Users(steamDir)

	if preferred != "" {
		id, err := strconv.ParseUint(preferred, 10, 32)
		if err != nil {
			return User{}, fmt.Errorf("%w: invalid account id %q", ErrNoUser, preferred)
		}
		for _, u := range users {
			if u.AccountID == uint32(id) {
				return u, nil
			}
		}
		return User{}, fmt.Errorf("%w: account %s has no userdata directory", ErrNoUser, preferred)
	}

	if len(users) == 0 {
		return User{}, ErrNoUser
	}

	for _, u := range users {
		if u.MostRecent {
			log.Debug().Uint32("account", u.AccountID).Str("persona", u.PersonaName).Msg("using most recent steam user")
			return u, nil
		}
	}

	if len(users) > 1 {
		log.Warn().Int("users", len(users)).Msgf("multiple steam users found, using %d", users[0].AccountID)
	}
	return users[0], nil
}
