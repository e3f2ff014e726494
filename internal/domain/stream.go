package domain

// Stream names
const (
	StreamTrafficUpdates = "stream:traffic:updates"
	ChannelTrafficLive   = "traffic:live"
)

// StreamMessage - сообщение из Redis Stream с traffic-update событием
type StreamMessage struct {
	ID    string             `json:"id"`
	Event TrafficUpdateEvent `json:"event"`
}
