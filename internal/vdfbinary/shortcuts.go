package vdfbinary

import (
	"errors"
	"fmt"
	"strconv"
)

// ShortcutsKey is the root key of Steam's shortcuts.vdf.
const ShortcutsKey = "shortcuts"

// ShortcutList returns the array style map holding the shortcut entries.
// Every child must be a map keyed by its index, 0 through n-1 in any order;
// anything else is treated as a corrupted file.
func ShortcutList(doc *Document) (*Node, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("nil document")
	}

	list, ok := doc.Root.GetMap(ShortcutsKey)
	if !ok {
		return nil, errors.New("could not find 'shortcuts' in parsed vdf")
	}

	seen := make([]bool, len(list.Children))
	for _, c := range list.Children {
		if !c.IsMap() {
			return nil, fmt.Errorf("shortcut %q is not a map", c.Key)
		}
		i, err := strconv.Atoi(c.Key)
		if err != nil || i < 0 || i >= len(seen) || seen[i] {
			return nil, fmt.Errorf("vdf that should be an array does not have the corresponding index: %q", c.Key)
		}
		seen[i] = true

		if _, ok := c.GetUint("appid"); !ok {
			return nil, fmt.Errorf("could not get key 'appid' for shortcut %s", c.Key)
		}
		if _, ok := c.GetString("AppName"); !ok {
			return nil, fmt.Errorf("could not get key 'AppName' for shortcut %s", c.Key)
		}
		if _, ok := c.GetString("Exe"); !ok {
			return nil, fmt.Errorf("could not get key 'Exe' for shortcut %s", c.Key)
		}
	}

	return list, nil
}

// NewShortcutsDocument returns a document with an empty shortcut list, the
// same layout Steam writes for a user without shortcuts.
func NewShortcutsDocument() *Document {
	doc := NewDocument()
	doc.Root.Children = append(doc.Root.Children, NewMap(ShortcutsKey))
	return doc
}

// Renumber rewrites the keys of an array style map to 0..n-1 in order.
func Renumber(list *Node) {
	for i, c := range list.Children {
		c.Key = strconv.Itoa(i)
	}
}
