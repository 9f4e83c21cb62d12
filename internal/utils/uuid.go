package utils

import "github.com/google/uuid"

// UUIDGenerator hands out time-ordered ids for session jti claims and trace
// ids.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7. If the clock source fails it falls back to
// a random UUIDv4.
func (*UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
