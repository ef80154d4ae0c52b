package utils_test

import (
	"testing"

	"pos-kemasan/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, utils.CheckPassword(hash, "password123"))
	assert.False(t, utils.CheckPassword(hash, "password124"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "kasir@pos.com", utils.NormalizeEmail("  Kasir@POS.com "))
}
