package input

import "yate/internal/log"

// Source yields raw input bytes. Poll returns ok == false with a nil error
// when the underlying read timed out without producing a byte.
type Source interface {
	Poll() (b byte, ok bool, err error)
}

// Escape sequences are matched by a small state machine:
// ESC → class byte ('[' or 'O') → terminator, with one optional digit
// parameter for the CSI "<digit>~" form.
type seqState uint8

const (
	stateEsc seqState = iota
	stateCSI
	stateCSIParam
	stateSS3
)

// maxSeqBytes bounds how many bytes a single decode reads after ESC.
const maxSeqBytes = 3

var (
	csiFinal = map[byte]Code{
		'A': ArrowUp,
		'B': ArrowDown,
		'C': ArrowRight,
		'D': ArrowLeft,
		'H': Home,
		'F': End,
	}
	csiTilde = map[byte]Code{
		'1': Home,
		'3': Delete,
		'4': End,
		'5': PageUp,
		'6': PageDown,
		'7': Home,
		'8': End,
	}
	ss3Final = map[byte]Code{
		'H': Home,
		'F': End,
	}
)

// Decoder reads keys from a Source.
type Decoder struct {
	src Source
}

// NewDecoder returns a Decoder reading from src.
func NewDecoder(src Source) *Decoder {
	return &Decoder{src: src}
}

// ReadKey blocks until a byte arrives, re-polling across read timeouts,
// and decodes one key. An incomplete or unknown escape sequence decodes
// to Escape.
func (d *Decoder) ReadKey() (Key, error) {
	var (
		c   byte
		ok  bool
		err error
	)
	for !ok {
		c, ok, err = d.src.Poll()
		if err != nil {
			return Key{}, err
		}
	}
	switch c {
	case esc:
		return d.decodeEscape()
	case delByte:
		return Named(Backspace), nil
	}
	return ByteKey(c), nil
}

func (d *Decoder) decodeEscape() (Key, error) {
	st := stateEsc
	var param byte
	for n := 0; n < maxSeqBytes; n++ {
		b, ok, err := d.src.Poll()
		if err != nil {
			return Key{}, err
		}
		if !ok {
			return Named(Escape), nil
		}
		switch st {
		case stateEsc:
			switch b {
			case '[':
				st = stateCSI
			case 'O':
				st = stateSS3
			default:
				return Named(Escape), nil
			}
		case stateCSI:
			if b >= '0' && b <= '9' {
				param = b
				st = stateCSIParam
				continue
			}
			return lookup(csiFinal, b), nil
		case stateCSIParam:
			if b != '~' {
				return Named(Escape), nil
			}
			return lookup(csiTilde, param), nil
		case stateSS3:
			return lookup(ss3Final, b), nil
		}
	}
	return Named(Escape), nil
}

func lookup(table map[byte]Code, b byte) Key {
	if code, ok := table[b]; ok {
		return Named(code)
	}
	log.Debug(log.CatInput, "unknown escape sequence", "final", string(rune(b)))
	return Named(Escape)
}
