package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUIDv7 yields time-ordered ids, so lexical order follows creation order.
type UUIDv7 struct{}

func (UUIDv7) New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return RandomHex{}.New()
	}
	return v.String()
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
