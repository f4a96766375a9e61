package utils

import "github.com/google/uuid"

// IDGenerator produces unique document identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator issues UUIDv7 identifiers. Their time-ordered prefix makes
// ids generated by one process sort in creation order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
