package util

import (
	"testing"

	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
	"github.com/stretchr/testify/assert"
)

type fixedRandom []int

func (f *fixedRandom) Intn(n int) int {
	v := (*f)[0] % n
	*f = (*f)[1:]
	return v
}

func TestGetRandomName(t *testing.T) {
	defer func() { random = rng.Crypto{} }()

	random = &fixedRandom{14, 1, 4, 13, 3, 18}
	assert.Equal(t, "SchlauerFuchs", GetRandomName())
	assert.Equal(t, "FlinkeGiraffe", GetRandomName())
	assert.Equal(t, "MutigesZebra", GetRandomName())
}
