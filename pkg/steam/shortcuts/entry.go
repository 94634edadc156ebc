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

package shortcuts

import (
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/internal/vdfbinary"
)

// Keys written by Steam for every shortcut, in the order Steam writes them.
const (
	keyAppID               = "appid"
	keyAppName             = "AppName"
	keyExe                 = "Exe"
	keyStartDir            = "StartDir"
	keyIcon                = "icon"
	keyShortcutPath        = "ShortcutPath"
	keyLaunchOptions       = "LaunchOptions"
	keyIsHidden            = "IsHidden"
	keyAllowDesktopConfig  = "AllowDesktopConfig"
	keyAllowOverlay        = "AllowOverlay"
	keyOpenVR              = "OpenVR"
	keyDevkit              = "Devkit"
	keyDevkitGameID        = "DevkitGameID"
	keyDevkitOverrideAppID = "DevkitOverrideAppID"
	keyLastPlayTime        = "LastPlayTime"
	keyFlatpakAppID        = "FlatpakAppID"
	keyTags                = "tags"
)

// Entry is one custom (non-Steam) game in shortcuts.vdf. Keys the entry does
// not model stay on the stored node and are written back untouched.
type Entry struct {
	AppName            string
	Exe                string
	StartDir           string
	Icon               string
	ShortcutPath       string
	LaunchOptions      string
	FlatpakAppID       string
	Tags               []string
	AppID              uint32
	LastPlayTime       uint32
	IsHidden           bool
	AllowDesktopConfig bool
	AllowOverlay       bool
	OpenVR             bool
}

// Quote wraps a path in double quotes the way Steam stores Exe and
// StartDir. Already quoted paths are returned unchanged.
func Quote(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		return path
	}
	return `"` + path + `"`
}

// Unquote strips the surrounding double quotes added by Quote.
func Unquote(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		return path[1 : len(path)-1]
	}
	return path
}

// NewEntry returns an entry with the flags Steam enables on shortcuts added
// through its own "Add a Non-Steam Game" dialog.
func NewEntry(appID uint32, name string) Entry {
	return Entry{
		AppID:              appID,
		AppName:            name,
		AllowDesktopConfig: true,
		AllowOverlay:       true,
	}
}

// encodable reports the first field holding a NUL byte, which cannot be
// written to a binary VDF string.
func (e *Entry) encodable() error {
	fields := []struct{ key, val string }{
		{keyAppName, e.AppName},
		{keyExe, e.Exe},
		{keyStartDir, e.StartDir},
		{keyIcon, e.Icon},
		{keyShortcutPath, e.ShortcutPath},
		{keyLaunchOptions, e.LaunchOptions},
		{keyFlatpakAppID, e.FlatpakAppID},
	}
	for _, tag := range e.Tags {
		fields = append(fields, struct{ key, val string }{keyTags, tag})
	}
	for _, f := range fields {
		if strings.IndexByte(f.val, 0) >= 0 {
			return fmt.Errorf("shortcut %s contains a null byte", f.key)
		}
	}
	return nil
}

func entryFromNode(n *vdfbinary.Node) Entry {
	var e Entry
	e.AppID, _ = n.GetUint(keyAppID)
	e.AppName, _ = n.GetString(keyAppName)
	e.Exe, _ = n.GetString(keyExe)
	e.StartDir, _ = n.GetString(keyStartDir)
	e.Icon, _ = n.GetString(keyIcon)
	e.ShortcutPath, _ = n.GetString(keyShortcutPath)
	e.LaunchOptions, _ = n.GetString(keyLaunchOptions)
	e.FlatpakAppID, _ = n.GetString(keyFlatpakAppID)
	e.LastPlayTime, _ = n.GetUint(keyLastPlayTime)
	e.IsHidden, _ = n.GetBool(keyIsHidden)
	e.AllowDesktopConfig, _ = n.GetBool(keyAllowDesktopConfig)
	e.AllowOverlay, _ = n.GetBool(keyAllowOverlay)
	e.OpenVR, _ = n.GetBool(keyOpenVR)
	e.Tags, _ = n.GetList(keyTags)
	return e
}

// newNode builds a shortcut node with every key Steam expects, in Steam's
// own key order.
func newNode(e Entry) *vdfbinary.Node {
	n := vdfbinary.NewMap("")
	n.Children = []*vdfbinary.Node{
		vdfbinary.NewUint32(keyAppID, 0),
		vdfbinary.NewString(keyAppName, ""),
		vdfbinary.NewString(keyExe, ""),
		vdfbinary.NewString(keyStartDir, ""),
		vdfbinary.NewString(keyIcon, ""),
		vdfbinary.NewString(keyShortcutPath, ""),
		vdfbinary.NewString(keyLaunchOptions, ""),
		vdfbinary.NewUint32(keyIsHidden, 0),
		vdfbinary.NewUint32(keyAllowDesktopConfig, 0),
		vdfbinary.NewUint32(keyAllowOverlay, 0),
		vdfbinary.NewUint32(keyOpenVR, 0),
		vdfbinary.NewUint32(keyDevkit, 0),
		vdfbinary.NewString(keyDevkitGameID, ""),
		vdfbinary.NewUint32(keyDevkitOverrideAppID, 0),
		vdfbinary.NewUint32(keyLastPlayTime, 0),
		vdfbinary.NewString(keyFlatpakAppID, ""),
		vdfbinary.NewMap(keyTags),
	}
	applyEntry(n, e)
	return n
}

// applyEntry writes the modelled fields onto n. Values that already match
// are not rewritten, so an unchanged entry serializes to identical bytes,
// and keys missing from n are only added when they carry a value.
func applyEntry(n *vdfbinary.Node, e Entry) {
	n.SetUint(keyAppID, e.AppID)
	n.SetString(keyAppName, e.AppName)
	n.SetString(keyExe, e.Exe)
	setString(n, keyStartDir, e.StartDir)
	setString(n, keyIcon, e.Icon)
	setString(n, keyShortcutPath, e.ShortcutPath)
	setString(n, keyLaunchOptions, e.LaunchOptions)
	setBool(n, keyIsHidden, e.IsHidden)
	setBool(n, keyAllowDesktopConfig, e.AllowDesktopConfig)
	setBool(n, keyAllowOverlay, e.AllowOverlay)
	setBool(n, keyOpenVR, e.OpenVR)
	if _, ok := n.Get(keyLastPlayTime); ok || e.LastPlayTime != 0 {
		n.SetUint(keyLastPlayTime, e.LastPlayTime)
	}
	setString(n, keyFlatpakAppID, e.FlatpakAppID)
	if _, ok := n.Get(keyTags); ok || len(e.Tags) > 0 {
		n.SetList(keyTags, e.Tags)
	}
}

func setString(n *vdfbinary.Node, key, value string) {
	if _, ok := n.Get(key); !ok && value == "" {
		return
	}
	n.SetString(key, value)
}

func setBool(n *vdfbinary.Node, key string, value bool) {
	if _, ok := n.Get(key); !ok && !value {
		return
	}
	n.SetBool(key, value)
}
