// Package gameid generates sortable hand ids: a UUIDv7 written as 26
// characters of Crockford base32.
package gameid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coder/quartz"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	// Length is the number of characters in an id.
	Length = 26
)

// Generator creates ids from a clock and a source of random bytes.
type Generator struct {
	clock   quartz.Clock
	entropy io.Reader
}

// NewGenerator returns a generator. A nil clock uses the real clock and a nil
// entropy reader uses crypto/rand.
func NewGenerator(clock quartz.Clock, entropy io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{clock: clock, entropy: entropy}
}

// New returns an id using the real clock and crypto/rand.
func New() (string, error) {
	return NewGenerator(nil, nil).New()
}

// New returns a fresh id. Ids from later milliseconds sort after earlier ones.
func (g *Generator) New() (string, error) {
	var u [16]byte
	ms := uint64(g.clock.Now().UnixMilli())
	for i := range 6 {
		u[i] = byte(ms >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.entropy, u[6:]); err != nil {
		return "", fmt.Errorf("reading entropy: %w", err)
	}
	u[6] = u[6]&0x0f | 0x70 // version 7
	u[8] = u[8]&0x3f | 0x80 // RFC 4122 variant
	return encode(u), nil
}

// encode writes the 128 bits as 26 base32 digits, most significant first.
// The leading digit carries only three bits.
func encode(u [16]byte) string {
	var hi, lo uint64
	for i := range 8 {
		hi = hi<<8 | uint64(u[i])
		lo = lo<<8 | uint64(u[i+8])
	}
	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

func decode(id string) ([16]byte, error) {
	var u [16]byte
	if err := Validate(id); err != nil {
		return u, err
	}
	var hi, lo uint64
	for i := 0; i < Length; i++ {
		d := uint64(strings.IndexByte(alphabet, id[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | d
	}
	for i := range 8 {
		u[7-i] = byte(hi >> (8 * i))
		u[15-i] = byte(lo >> (8 * i))
	}
	return u, nil
}

// Validate checks that id is 26 lowercase base32 characters that fit in 128 bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("hand id must be %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %q at position %d", id[i], i)
		}
	}
	return nil
}

// Timestamp returns the creation time encoded in id, to the millisecond.
func Timestamp(id string) (time.Time, error) {
	u, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	var ms int64
	for i := range 6 {
		ms = ms<<8 | int64(u[i])
	}
	return time.UnixMilli(ms), nil
}
