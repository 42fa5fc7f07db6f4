package ws

import (
	"net/http"
	"sync"

	"campus-services-backend/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Message is the envelope for every server-to-client event.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// command is what clients send: subscribe/unsubscribe to a topic.
type command struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Subscription registry: connection -> set of topics. Process-local state,
// rebuilt by clients on reconnect.
var (
	mu      sync.Mutex
	clients = make(map[*websocket.Conn]map[string]bool)
)

func QueueTopic(queueId string) string { return "queue-" + queueId }
func OrderTopic(orderId string) string { return "order-" + orderId }
func XeroxTopic(orderId string) string { return "xerox-" + orderId }

// Serve upgrades the connection and runs the read loop. Clients manage their
// room membership with subscribe/unsubscribe commands; everything else they
// send is ignored.
func Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Log.Warnw("websocket upgrade failed", "error", err)
			return
		}

		mu.Lock()
		clients[conn] = make(map[string]bool)
		mu.Unlock()

		defer func() {
			mu.Lock()
			delete(clients, conn)
			mu.Unlock()
			conn.Close()
		}()

		for {
			var cmd command
			if err := conn.ReadJSON(&cmd); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Log.Debugw("websocket read error", "error", err)
				}
				return
			}

			mu.Lock()
			topics, ok := clients[conn]
			if ok {
				switch cmd.Action {
				case "subscribe":
					if cmd.Topic != "" {
						topics[cmd.Topic] = true
					}
				case "unsubscribe":
					delete(topics, cmd.Topic)
				}
			}
			mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected client. Best-effort: a failed
// write drops the client.
func Broadcast(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	for conn := range clients {
		send(conn, Message{Event: event, Payload: payload})
	}
}

// Publish sends an event only to clients subscribed to the topic.
func Publish(topic string, event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	for conn, topics := range clients {
		if topics[topic] {
			send(conn, Message{Event: event, Payload: payload})
		}
	}
}

// send writes one message; on failure the client is dropped. Callers hold mu.
func send(conn *websocket.Conn, msg Message) {
	if err := conn.WriteJSON(msg); err != nil {
		logger.Log.Debugw("websocket write failed, dropping client", "error", err)
		conn.Close()
		delete(clients, conn)
	}
}
