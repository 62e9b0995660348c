package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	for _, key := range MetadataKeys() {
		v, ok := Default(key)
		assert.True(t, ok, key)
		assert.NotEmpty(t, v, key)
	}

	_, ok := Default("unknown_key")
	assert.False(t, ok)
}
