package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
)

// JoinCodeLength is the number of digits in a join code
const JoinCodeLength = 6

const maxJoinCodeAttempts = 1000

// ErrJoinCodesExhausted is returned when no free join code was found
var ErrJoinCodesExhausted = errors.New("could not find a free join code")

// RandomPlayerID generates a random player id suitable for testing
func RandomPlayerID() string {
	return uuid.New().String()
}

// JoinCode returns a random numeric code that exists reports as free
func JoinCode(r rng.Generator, exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxJoinCodeAttempts; i++ {
		var sb strings.Builder
		for j := 0; j < JoinCodeLength; j++ {
			sb.WriteByte(byte('0' + r.Intn(10)))
		}

		code := sb.String()
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("could not check join code: %w", err)
		}

		if !taken {
			return code, nil
		}
	}

	return "", ErrJoinCodesExhausted
}
