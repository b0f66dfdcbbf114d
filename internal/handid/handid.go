// Package handid generates sortable identifiers for settled hands in the
// ledger: UUIDv7 encoded as 26 characters of Crockford base32, so records
// order by settlement time lexicographically.
package handid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail bytes; tests inject a deterministic one.
type RandSource interface {
	Intn(n int) int
}

// Generator creates hand IDs with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil RandSource uses crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new hand ID with crypto/rand randomness
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new hand ID
func (g *Generator) Generate() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp, then version and variant bits over
	// random tail bytes, per UUIDv7.
	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.Intn(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("handid: failed to read random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid)
}

// encodeBase32 packs 128 bits into 26 base32 characters, 5 bits at a time.
func encodeBase32(data [16]byte) string {
	var sb strings.Builder
	sb.Grow(26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < 16 {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		sb.WriteByte(alphabet[value])
	}
	return sb.String()
}

// Validate checks that an ID is 26 valid base32 characters
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand ID must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
