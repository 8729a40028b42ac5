package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

// Inbound payloads are a room id plus a couple of small fields; anything
// bigger than this is dropped together with the connection.
const maxMessageSize = 4096

type Client struct {
	conn    *connWrapper
	Message chan *Message
	ID      string

	// rooms this connection has joined; touched only by the hub goroutine.
	rooms map[string]struct{}
}

func NewClient(conn *websocket.Conn, id string, buffer int) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *Message, buffer), // buffered to avoid dead-locks on slow clients
		ID:      id,
		rooms:   make(map[string]struct{}),
	}
}

// ReadPump decodes inbound envelopes and hands them to the hub. It exits
// on the first read error, which is also how disconnects are detected.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister() <- c
		_ = c.conn.Close()
	}()

	c.conn.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			break
		}

		env, err := DecodeEnvelope(raw)
		if err != nil {
			// Malformed framing never reaches the hub; the sender alone
			// hears about it.
			c.trySend(NewError(err.Error()))
			continue
		}

		hub.commands <- &command{client: c, env: env}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (client %s): %v", c.ID, err)
			break
		}
	}
}

func (c *Client) trySend(msg *Message) {
	select {
	case c.Message <- msg:
	default:
		log.Printf("client %s buffer full, dropping message", c.ID)
	}
}
