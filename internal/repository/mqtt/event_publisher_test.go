package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/domain"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func completedToken(err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes; unused methods fall through to the nil embedded interface.
type fakeClient struct {
	pahomqtt.Client
	token        pahomqtt.Token
	published    []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) pahomqtt.Token {
	c.published = append(c.published, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) {
	c.disconnected = true
}

func TestEventPublisher_Publish(t *testing.T) {
	client := &fakeClient{token: completedToken(nil)}
	pub := NewEventPublisher(client, "border/traffic/updates", 1, zap.NewNop())
	assert.Equal(t, "mqtt", pub.Name())

	event := &domain.TrafficUpdateEvent{Type: domain.EventTrafficUpdate, Generation: 9}
	require.NoError(t, pub.Publish(context.Background(), event))

	require.Len(t, client.published, 1)
	assert.Equal(t, "border/traffic/updates", client.published[0].topic)
	assert.Equal(t, byte(1), client.published[0].qos)

	var decoded domain.TrafficUpdateEvent
	require.NoError(t, json.Unmarshal(client.published[0].payload, &decoded))
	assert.Equal(t, uint64(9), decoded.Generation)

	require.NoError(t, pub.Close())
	assert.True(t, client.disconnected)
}

func TestEventPublisher_BrokerError(t *testing.T) {
	client := &fakeClient{token: completedToken(errors.New("not connected"))}
	pub := NewEventPublisher(client, "t", 0, zap.NewNop())

	err := pub.Publish(context.Background(), &domain.TrafficUpdateEvent{})
	assert.ErrorContains(t, err, "not connected")
}

func TestEventPublisher_ContextCancelled(t *testing.T) {
	client := &fakeClient{token: &fakeToken{done: make(chan struct{})}}
	pub := NewEventPublisher(client, "t", 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.Publish(ctx, &domain.TrafficUpdateEvent{})
	assert.ErrorIs(t, err, context.Canceled)
}
