package events

// Collector accumulates domain events raised during aggregate state
// transitions.
type Collector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *Collector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns the collected domain events without clearing them.
func (c *Collector) Events() []DomainEvent {
	return c.events
}

// Clone returns a copy of the collector. Aggregates that mutate by
// copy use it so that the original's event slice is not shared.
func (c Collector) Clone() Collector {
	if c.events == nil {
		return Collector{}
	}
	out := make([]DomainEvent, len(c.events))
	copy(out, c.events)
	return Collector{events: out}
}

// Clear empties the collector and returns what it held.
func (c *Collector) Clear() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
