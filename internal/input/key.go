// Package input turns a raw terminal byte stream into logical key events.
package input

import "fmt"

// Code classifies a Key. Byte is a literal input byte; every other code is
// a named key decoded from an escape sequence or a fixed control byte.
type Code uint8

const (
	Byte Code = iota
	Escape
	Backspace
	ArrowLeft
	ArrowRight
	ArrowUp
	ArrowDown
	Delete
	Home
	End
	PageUp
	PageDown
)

const (
	esc     = 0x1b
	delByte = 127
)

var codeNames = [...]string{
	Byte:       "Byte",
	Escape:     "Escape",
	Backspace:  "Backspace",
	ArrowLeft:  "ArrowLeft",
	ArrowRight: "ArrowRight",
	ArrowUp:    "ArrowUp",
	ArrowDown:  "ArrowDown",
	Delete:     "Delete",
	Home:       "Home",
	End:        "End",
	PageUp:     "PageUp",
	PageDown:   "PageDown",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", c)
}

// Key is one decoded keypress. Keys are comparable, so bindings can be
// matched with ==.
type Key struct {
	Code Code
	// Byte holds the literal byte when Code is Byte and is zero otherwise.
	Byte byte
}

// ByteKey returns the key for a literal input byte.
func ByteKey(b byte) Key { return Key{Code: Byte, Byte: b} }

// Named returns the key for a named code.
func Named(c Code) Key { return Key{Code: c} }

// Ctrl maps a letter to the byte the terminal sends for Ctrl+letter.
func Ctrl(c byte) byte { return c & 0x1f }

// IsByte reports whether k is the literal byte b.
func (k Key) IsByte(b byte) bool { return k.Code == Byte && k.Byte == b }

// IsControl reports whether k is a literal ASCII control byte.
func (k Key) IsControl() bool {
	return k.Code == Byte && (k.Byte < 0x20 || k.Byte == delByte)
}

// IsPrintable reports whether k is a literal printable ASCII byte.
func (k Key) IsPrintable() bool {
	return k.Code == Byte && k.Byte >= 0x20 && k.Byte < delByte
}

func (k Key) String() string {
	if k.Code != Byte {
		return k.Code.String()
	}
	switch {
	case k.Byte == '\r':
		return "Enter"
	case k.Byte == '\t':
		return "Tab"
	case k.Byte < 0x20:
		return "Ctrl-" + string(rune(k.Byte+'@'))
	case k.Byte >= delByte:
		return fmt.Sprintf("0x%02x", k.Byte)
	}
	return string(rune(k.Byte))
}
