package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubFansOutAndDropsWhenFull(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	assert.Equal(t, 2, h.Subscribers())

	h.Emit("req-1", TypeCountsReconciled, map[string]int{"categories": 3})

	for _, ch := range []chan string{a, b} {
		var e Event
		require.NoError(t, json.Unmarshal([]byte(<-ch), &e))
		assert.Equal(t, TypeCountsReconciled, e.Type)
		assert.Equal(t, 1, e.Version)
		assert.Equal(t, "req-1", e.RequestID)
		assert.JSONEq(t, `{"categories":3}`, string(e.Data))
	}

	for i := 0; i < cap(a)+2; i++ {
		h.Publish("x")
	}
	assert.Equal(t, uint64(4), h.Dropped())

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	n := 0
	for range a {
		n++
	}
	assert.Equal(t, cap(a), n)
	assert.Equal(t, 1, h.Subscribers())
}

func TestNilHubIsSilent(t *testing.T) {
	var h *Hub
	h.Publish("x")
	h.Emit("", TypePing, nil)
}
