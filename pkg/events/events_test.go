package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := NewBaseEvent("PaymentApplied", "42", "Deal", now)

	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, "PaymentApplied", e.EventType())
	assert.Equal(t, "42", e.AggregateID())
	assert.Equal(t, "Deal", e.AggregateType())
	assert.Equal(t, now, e.OccurredAt())
}

func TestCollector_CloneDoesNotShare(t *testing.T) {
	var c Collector
	c.Record(NewBaseEvent("A", "1", "Deal", time.Now()))

	clone := c.Clone()
	clone.Record(NewBaseEvent("B", "1", "Deal", time.Now()))

	assert.Len(t, c.Events(), 1)
	assert.Len(t, clone.Events(), 2)
}

func TestCollector_Clear(t *testing.T) {
	var c Collector
	c.Record(NewBaseEvent("A", "1", "Deal", time.Now()))

	got := c.Clear()
	assert.Len(t, got, 1)
	assert.Empty(t, c.Events())
}
