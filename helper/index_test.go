package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCampus(t *testing.T) {
	assert.Equal(t, "main-campus", NormalizeCampus("Main Campus"))
	assert.Equal(t, "main-campus", NormalizeCampus("main-campus"))
	assert.Equal(t, "south-campus", NormalizeCampus("  South  Campus "))
	assert.Equal(t, "", NormalizeCampus(""))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("123456cq")
	assert.NoError(t, err)
	assert.NotEqual(t, "123456cq", hash)

	assert.True(t, CheckPasswordHash("123456cq", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
