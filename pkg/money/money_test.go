package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCLP(t *testing.T) {
	assert.Equal(t, "$0", FormatCLP(0))
	assert.Equal(t, "$990", FormatCLP(990))
	assert.Equal(t, "$50.000", FormatCLP(50000))
	assert.Equal(t, "$1.250.000", FormatCLP(1250000))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 item", FormatCount(1))
	assert.Equal(t, "2 items", FormatCount(2))
	assert.Equal(t, "0 items", FormatCount(0))
}
