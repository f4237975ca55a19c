package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageOrderValue(t *testing.T) {
	t.Parallel()
	// 3 orders totalling 100.00 -> 33.33, not 33.333...
	assert.Equal(t, 33.33, averageOrderValue(10000, 3))
	assert.Equal(t, 50.0, averageOrderValue(10000, 2))
	assert.Equal(t, 0.01, averageOrderValue(1, 1))
	// 2 cents over 3 orders rounds to a single cent
	assert.Equal(t, 0.01, averageOrderValue(2, 3))
}

func TestAverageOrderValue_ZeroOrders(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, averageOrderValue(0, 0))
	assert.Equal(t, 0.0, averageOrderValue(12345, 0))
}
