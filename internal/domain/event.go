package domain

import "time"

// EventTrafficUpdate is the push event type emitted after every refresh.
const EventTrafficUpdate = "traffic-update"

// Snapshot is one complete, immutable generation of the current-state store.
type Snapshot struct {
	Generation uint64          `json:"generation"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Samples    []TrafficSample `json:"samples"`
}

// TrafficUpdateEvent - сообщение, доставляемое подписчикам
type TrafficUpdateEvent struct {
	Type       string          `json:"type"`
	Generation uint64          `json:"generation"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       []TrafficSample `json:"data"`
}

// NewTrafficUpdateEvent builds the event for a snapshot, keeping only samples that match crossing
// when crossing is non-empty.
func NewTrafficUpdateEvent(s *Snapshot, crossing CrossingPoint) TrafficUpdateEvent {
	data := s.Samples
	if crossing != "" {
		data = make([]TrafficSample, 0, len(s.Samples))
		for _, sample := range s.Samples {
			if sample.CrossingPoint == crossing {
				data = append(data, sample)
			}
		}
	}
	return TrafficUpdateEvent{
		Type:       EventTrafficUpdate,
		Generation: s.Generation,
		Timestamp:  s.UpdatedAt,
		Data:       data,
	}
}
