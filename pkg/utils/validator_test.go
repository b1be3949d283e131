package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(0, 0))
	assert.NoError(t, ValidateCoordinates(90, 180))
	assert.NoError(t, ValidateCoordinates(-90, -180))
	assert.ErrorIs(t, ValidateCoordinates(90.1, 0), ErrInvalidCoordinates)
	assert.ErrorIs(t, ValidateCoordinates(0, -180.1), ErrInvalidCoordinates)
}

func TestValidateEmailFormat(t *testing.T) {
	assert.True(t, ValidateEmailFormat("someone@example.com"))
	assert.True(t, ValidateEmailFormat("")) // 是否允许为空由业务逻辑决定
	assert.False(t, ValidateEmailFormat("not-an-email"))
	assert.False(t, ValidateEmailFormat("a@b"))
}

func TestParseDate(t *testing.T) {
	for _, input := range []string{"2025-06-01", "2025/6/1", "2025-6-01"} {
		parsed, err := ParseDate(input)
		assert.NoError(t, err)
		assert.Equal(t, 2025, parsed.Year())
	}
	_, err := ParseDate("01-06-2025")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
