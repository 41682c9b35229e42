package editor

import (
	"strconv"
	"time"
)

// Message is a transient status line and the time it was set.
type Message struct {
	text string
	at   time.Time
}

func (m Message) Text() string { return m.text }

// Visible reports whether m is non-empty and younger than ttl at now.
func (m Message) Visible(now time.Time, ttl time.Duration) bool {
	return m.text != "" && now.Sub(m.at) < ttl
}

// MessageBuilder composes a status message from typed parts.
type MessageBuilder struct {
	b []byte
}

// Msg starts a message with literal text s.
func Msg(s string) *MessageBuilder {
	return &MessageBuilder{b: append([]byte(nil), s...)}
}

// Str appends literal text.
func (mb *MessageBuilder) Str(s string) *MessageBuilder {
	mb.b = append(mb.b, s...)
	return mb
}

// Int appends n in decimal.
func (mb *MessageBuilder) Int(n int) *MessageBuilder {
	mb.b = strconv.AppendInt(mb.b, int64(n), 10)
	return mb
}

// Quoted appends s between double quotes, unescaped.
func (mb *MessageBuilder) Quoted(s string) *MessageBuilder {
	mb.b = append(mb.b, '"')
	mb.b = append(mb.b, s...)
	mb.b = append(mb.b, '"')
	return mb
}

// Stamp finishes the message, replacing terminal control bytes so the
// text cannot inject escape sequences into the message bar.
func (mb *MessageBuilder) Stamp(at time.Time) Message {
	return Message{text: safeTermString(string(mb.b)), at: at}
}

func safeTermByte(c byte) byte {
	if c < 0x20 || c == 0x7f {
		return '?'
	}
	return c
}

func safeTermString(s string) string {
	for i := 0; i < len(s); i++ {
		if safeTermByte(s[i]) != s[i] {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				b[j] = safeTermByte(b[j])
			}
			return string(b)
		}
	}
	return s
}
