package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeysSorted(t *testing.T) {
	m := map[int]string{5: "e", 2: "b", 9: "i", 3: "c"}
	assert.Equal(t, []int{2, 3, 5, 9}, GetKeys(m))
	assert.Empty(t, GetKeys(map[string]int{}))
}

func TestIntegerHelpers(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Min(7, 2))
	assert.Equal(uint8(1), Min[uint8](1, 200))
	assert.Equal(600, Sum([]uint8{200, 200, 200}))
	assert.Equal(0.25, Ratio(1, 4))
	assert.Equal(0.0, Ratio(3, 0))
}
