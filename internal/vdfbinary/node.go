package vdfbinary

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Node is a single key in a binary VDF document. Maps keep their children
// in file order; scalar payloads are stored exactly as read.
type Node struct {
	Key      string
	Value    []byte
	Children []*Node
	Type     Type
	end      Type
}

// NewMap returns an empty map node.
func NewMap(key string) *Node {
	return &Node{Type: TypeMap, Key: key}
}

// NewString returns a string node.
func NewString(key, value string) *Node {
	return &Node{Type: TypeString, Key: key, Value: []byte(value)}
}

// NewUint32 returns an int32 node holding v's bit pattern.
func NewUint32(key string, v uint32) *Node {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return &Node{Type: TypeInt32, Key: key, Value: b}
}

// IsMap reports whether the node is a map.
func (n *Node) IsMap() bool {
	return n != nil && n.Type == TypeMap
}

// Get returns the first child whose key matches case-insensitively.
// VDF keys are case-insensitive but the original casing is kept on disk.
func (n *Node) Get(key string) (*Node, bool) {
	i := n.index(key)
	if i < 0 {
		return nil, false
	}
	return n.Children[i], true
}

func (n *Node) index(key string) int {
	if n == nil {
		return -1
	}
	for i, c := range n.Children {
		if strings.EqualFold(c.Key, key) {
			return i
		}
	}
	return -1
}

// AsString returns the value of a string node.
func (n *Node) AsString() (string, bool) {
	if n == nil || n.Type != TypeString {
		return "", false
	}
	return string(n.Value), true
}

// AsUint32 returns the value of an int32, pointer or color node.
func (n *Node) AsUint32() (uint32, bool) {
	if n == nil || len(n.Value) != 4 {
		return 0, false
	}
	switch n.Type {
	case TypeInt32, TypePointer, TypeColor:
		return binary.LittleEndian.Uint32(n.Value), true
	default:
		return 0, false
	}
}

// AsUint64 returns the value of a 64 bit integer node.
func (n *Node) AsUint64() (uint64, bool) {
	if n == nil || len(n.Value) != 8 {
		return 0, false
	}
	if n.Type != TypeUint64 && n.Type != TypeInt64 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(n.Value), true
}

// AsFloat32 returns the value of a float node.
func (n *Node) AsFloat32() (float32, bool) {
	if n == nil || n.Type != TypeFloat32 || len(n.Value) != 4 {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(n.Value)), true
}

// GetString looks up a string child.
func (n *Node) GetString(key string) (string, bool) {
	c, ok := n.Get(key)
	if !ok {
		return "", false
	}
	return c.AsString()
}

// GetUint looks up a 32 bit integer child.
func (n *Node) GetUint(key string) (uint32, bool) {
	c, ok := n.Get(key)
	if !ok {
		return 0, false
	}
	return c.AsUint32()
}

// GetBool looks up a 32 bit integer child and treats non-zero as true.
func (n *Node) GetBool(key string) (bool, bool) {
	v, ok := n.GetUint(key)
	return v != 0, ok
}

// GetMap looks up a map child.
func (n *Node) GetMap(key string) (*Node, bool) {
	c, ok := n.Get(key)
	if !ok || !c.IsMap() {
		return nil, false
	}
	return c, true
}

// GetList returns the string values of an array style map ("0", "1", ...)
// in index order, stopping at the first gap.
func (n *Node) GetList(key string) ([]string, bool) {
	m, ok := n.GetMap(key)
	if !ok {
		return nil, false
	}
	var out []string
	for i := range len(m.Children) {
		c, ok := m.Get(strconv.Itoa(i))
		if !ok {
			break
		}
		s, ok := c.AsString()
		if !ok {
			continue
		}
		out = append(out, s)
	}
	return out, true
}

// Set replaces the child with the same key, keeping its position and the
// casing already on disk, or appends child when no such key exists.
func (n *Node) Set(child *Node) {
	if i := n.index(child.Key); i >= 0 {
		child.Key = n.Children[i].Key
		n.Children[i] = child
		return
	}
	n.Children = append(n.Children, child)
}

// SetString sets a string child. An existing value that already matches is
// left untouched.
func (n *Node) SetString(key, value string) {
	if cur, ok := n.GetString(key); ok && cur == value {
		return
	}
	n.Set(NewString(key, value))
}

// SetUint sets an int32 child. An existing value that already matches is
// left untouched.
func (n *Node) SetUint(key string, value uint32) {
	if cur, ok := n.GetUint(key); ok && cur == value {
		return
	}
	n.Set(NewUint32(key, value))
}

// SetBool sets an int32 child to 0 or 1. Existing non-zero values are kept
// as-is when value is true.
func (n *Node) SetBool(key string, value bool) {
	if cur, ok := n.GetBool(key); ok && cur == value {
		return
	}
	var v uint32
	if value {
		v = 1
	}
	n.Set(NewUint32(key, v))
}

// SetList sets an array style map of strings. An existing list with the
// same values is left untouched.
func (n *Node) SetList(key string, values []string) {
	if cur, ok := n.GetList(key); ok && slices.Equal(cur, values) {
		if m, _ := n.GetMap(key); len(m.Children) == len(values) {
			return
		}
	}
	m := NewMap(key)
	for i, v := range values {
		m.Children = append(m.Children, NewString(strconv.Itoa(i), v))
	}
	n.Set(m)
}

// Delete removes every child with the given key.
func (n *Node) Delete(key string) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if !strings.EqualFold(c.Key, key) {
			kept = append(kept, c)
		}
	}
	n.Children = kept
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Type: n.Type, Key: n.Key, end: n.end}
	if n.Value != nil {
		c.Value = append([]byte(nil), n.Value...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}
