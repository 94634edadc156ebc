package vdfbinary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Marshal encodes the document back into binary VDF. A document produced
// by Parse and left unmodified marshals to the exact input bytes.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the document to w.
func (d *Document) Write(w io.Writer) error {
	if d == nil || d.Root == nil {
		return errors.New("cannot write nil document")
	}
	bw := bufio.NewWriter(w)
	if err := writeMapBody(bw, d.Root); err != nil {
		return err
	}
	if len(d.Trailer) > 0 {
		if _, err := bw.Write(d.Trailer); err != nil {
			return fmt.Errorf("write trailer error: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush error: %w", err)
	}
	return nil
}

func writeMapBody(w *bufio.Writer, m *Node) error {
	for _, c := range m.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	end := m.end
	if !end.isEnd() {
		end = TypeEnd
	}
	return w.WriteByte(byte(end))
}

func writeNode(w *bufio.Writer, n *Node) error {
	if !n.Type.known() {
		return fmt.Errorf("cannot write node %q with unknown type 0x%02x", n.Key, byte(n.Type))
	}
	if strings.IndexByte(n.Key, endOfString) >= 0 {
		return fmt.Errorf("key %q contains a null byte", n.Key)
	}

	_ = w.WriteByte(byte(n.Type))
	_, _ = w.WriteString(n.Key)
	_ = w.WriteByte(endOfString)

	switch n.Type {
	case TypeMap:
		return writeMapBody(w, n)
	case TypeString:
		if bytes.IndexByte(n.Value, endOfString) >= 0 {
			return fmt.Errorf("value of %q contains a null byte", n.Key)
		}
		_, _ = w.Write(n.Value)
		return w.WriteByte(endOfString)
	case TypeWideString:
		if len(n.Value)%2 != 0 {
			return fmt.Errorf("wide string %q has odd length", n.Key)
		}
		_, _ = w.Write(n.Value)
		_, err := w.Write([]byte{0, 0})
		return err
	default:
		size, _ := n.Type.fixedSize()
		if len(n.Value) != size {
			return fmt.Errorf("value of %q is %d bytes, want %d", n.Key, len(n.Value), size)
		}
		_, err := w.Write(n.Value)
		return err
	}
}
