package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameGenerator(t *testing.T) {
	first := NewNameGenerator(7)
	names := make(map[string]bool)
	sequence := make([]string, 0)
	for i := 0; i < 100; i++ {
		name := first.Name()
		assert.NotContains(t, name, " ")
		assert.False(t, names[name], name)
		names[name] = true
		sequence = append(sequence, name)
	}

	second := NewNameGenerator(7)
	for _, name := range sequence {
		assert.Equal(t, name, second.Name())
	}
}
