// Package vdfbinary reads and writes Valve's binary VDF format.
//
// This started as a vendored copy of github.com/TimDeve/valve-vdf-binary
// (MIT licensed, see LICENSE file in this directory) and has been rewritten
// around an ordered node tree so documents can be modified and written back
// without losing keys, value types or key casing.
package vdfbinary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrEmptyVDF     = errors.New("the vdf you are trying to parse appears empty")
	ErrNotBinaryVDF = errors.New("the vdf appears not to be binary, are you sure it is not a text vdf?")
	ErrCorruptedVDF = errors.New("reached the end of the file earlier than expected, your file might be corrupted")
)

// Type is the marker byte that precedes every key in a binary VDF stream.
type Type byte

const (
	TypeMap        Type = 0x00
	TypeString     Type = 0x01
	TypeInt32      Type = 0x02
	TypeFloat32    Type = 0x03
	TypePointer    Type = 0x04
	TypeWideString Type = 0x05
	TypeColor      Type = 0x06
	TypeUint64     Type = 0x07
	TypeEnd        Type = 0x08
	TypeInt64      Type = 0x0A
	TypeEndAlt     Type = 0x0B
)

const endOfString = 0x00

// fixedSize returns the payload width of fixed size scalar types.
func (t Type) fixedSize() (int, bool) {
	switch t {
	case TypeInt32, TypeFloat32, TypePointer, TypeColor:
		return 4, true
	case TypeUint64, TypeInt64:
		return 8, true
	default:
		return 0, false
	}
}

func (t Type) isEnd() bool {
	return t == TypeEnd || t == TypeEndAlt
}

func (t Type) known() bool {
	if t == TypeMap || t == TypeString || t == TypeWideString {
		return true
	}
	_, ok := t.fixedSize()
	return ok
}

// Document is a parsed binary VDF file. Root holds the top level keys and
// Trailer any bytes found after the root map was closed.
type Document struct {
	Root    *Node
	Trailer []byte
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Root: &Node{Type: TypeMap}}
}

// Parse reads a complete binary VDF document.
func Parse(r io.Reader) (*Document, error) {
	buf := bufio.NewReader(r)

	byteArr, err := buf.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyVDF
	}
	if err != nil {
		return nil, fmt.Errorf("peek error: %w", err)
	}

	if t := Type(byteArr[0]); !t.known() && !t.isEnd() {
		return nil, ErrNotBinaryVDF
	}

	root := &Node{Type: TypeMap}
	if err := parseMap(buf, root); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrCorruptedVDF
		}
		return nil, err
	}

	trailer, err := io.ReadAll(buf)
	if err != nil {
		return nil, fmt.Errorf("read trailer error: %w", err)
	}
	if len(trailer) == 0 {
		trailer = nil
	}

	return &Document{Root: root, Trailer: trailer}, nil
}

// ParseBytes parses a complete binary VDF document held in memory.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

func parseMap(buf *bufio.Reader, m *Node) error {
	for {
		b, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("read byte error: %w", err)
		}

		t := Type(b)
		if t.isEnd() {
			m.end = t
			return nil
		}

		key, err := parseString(buf)
		if err != nil {
			return err
		}

		child := &Node{Type: t, Key: key}
		switch {
		case t == TypeMap:
			err = parseMap(buf, child)
		case t == TypeString:
			var s string
			s, err = parseString(buf)
			child.Value = []byte(s)
		case t == TypeWideString:
			child.Value, err = parseWideString(buf)
		default:
			size, ok := t.fixedSize()
			if !ok {
				return fmt.Errorf("unexpected byte: 0x%02x, your file might be corrupted", b)
			}
			child.Value = make([]byte, size)
			if _, rerr := io.ReadFull(buf, child.Value); rerr != nil {
				err = fmt.Errorf("read number error: %w", rerr)
			}
		}
		if err != nil {
			return err
		}

		m.Children = append(m.Children, child)
	}
}

func parseString(buf *bufio.Reader) (string, error) {
	s, err := buf.ReadString(endOfString)
	if err == nil {
		return s[:len(s)-1], nil
	}
	return "", fmt.Errorf("read string error: %w", err)
}

// parseWideString reads UTF-16LE code units up to a 0x0000 terminator and
// returns them undecoded.
func parseWideString(buf *bufio.Reader) ([]byte, error) {
	var out []byte
	unit := make([]byte, 2)
	for {
		if _, err := io.ReadFull(buf, unit); err != nil {
			return nil, fmt.Errorf("read wide string error: %w", err)
		}
		if binary.LittleEndian.Uint16(unit) == 0 {
			return out, nil
		}
		out = append(out, unit...)
	}
}
