package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGameIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateGameID()
		assert.True(t, IsGameID(id), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsGameIDRejectsGarbage(t *testing.T) {
	assert.False(t, IsGameID(""))
	assert.False(t, IsGameID("not-a-game"))
	assert.False(t, IsGameID("../../etc/passwd"))
}
