package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ws", Serve())
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(clients) > 0
	}, time.Second, 10*time.Millisecond, "client never registered")

	return conn
}

func hasSubscriber(topic string) bool {
	mu.Lock()
	defer mu.Unlock()
	for _, topics := range clients {
		if topics[topic] {
			return true
		}
	}
	return false
}

func TestBroadcastReachesAllClients(t *testing.T) {
	conn := newTestConn(t)

	Broadcast("new-order", map[string]string{"orderId": "o1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "new-order", msg.Event)
	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "o1", payload["orderId"])
}

func TestPublishOnlyReachesSubscribers(t *testing.T) {
	conn := newTestConn(t)

	require.NoError(t, conn.WriteJSON(command{Action: "subscribe", Topic: "queue-1"}))
	require.Eventually(t, func() bool {
		return hasSubscriber("queue-1")
	}, time.Second, 10*time.Millisecond, "subscription never registered")

	// An event for a different room must not be delivered.
	Publish("queue-2", "queue-updated", map[string]string{"queueId": "2"})
	Publish("queue-1", "customer-called", map[string]string{"queueId": "1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "customer-called", msg.Event)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	conn := newTestConn(t)

	require.NoError(t, conn.WriteJSON(command{Action: "subscribe", Topic: "order-1"}))
	require.Eventually(t, func() bool {
		return hasSubscriber("order-1")
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(command{Action: "unsubscribe", Topic: "order-1"}))
	require.Eventually(t, func() bool {
		return !hasSubscriber("order-1")
	}, time.Second, 10*time.Millisecond)

	Publish("order-1", "order-updated", map[string]string{"orderId": "1"})

	// Nothing should arrive before the deadline.
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var msg Message
	err := conn.ReadJSON(&msg)
	assert.Error(t, err)
}

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "queue-q1", QueueTopic("q1"))
	assert.Equal(t, "order-o1", OrderTopic("o1"))
	assert.Equal(t, "xerox-x1", XeroxTopic("x1"))
}
