package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveConnectionKeepsNewerSocket(t *testing.T) {
	cm := NewConnectionManager()
	old, newer := &client{}, &client{}

	cm.AddConnection("g1", old)
	cm.AddConnection("g1", newer)

	assert.False(t, cm.RemoveConnectionIfMatching("g1", old))
	assert.Equal(t, 1, cm.Count())

	assert.True(t, cm.RemoveConnectionIfMatching("g1", newer))
	assert.Equal(t, 0, cm.Count())
}
