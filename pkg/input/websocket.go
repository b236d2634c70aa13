package input

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/xerrors"

	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/gesture"
)

const writeTimeout = 5 * time.Second

// Message is a touch event as sent by a browser.
//
// Type is one of "start", "move", "end", "cancel"; the DOM event names
// ("touchstart", ...) are accepted as well. Touches holds the page
// coordinates of all active contacts.
type Message struct {
	Type    string        `json:"type"`
	Touches []geom.Vector `json:"touches"`
}

// Snapshot converts the message.
func (m Message) Snapshot() (Snapshot, error) {
	name := strings.TrimPrefix(strings.ToLower(m.Type), "touch")
	phase, ok := gesture.ParsePhase(name)
	if !ok {
		return Snapshot{}, xerrors.Errorf("unknown touch event type %q", m.Type)
	}
	return Snapshot{Phase: phase, Points: m.Touches}, nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Conn is a Source fed by a websocket connection.
//
// Incoming text messages are decoded as Message and published.
// Send writes JSON values back to the client.
type Conn struct {
	Feed

	ID      string
	ws      *websocket.Conn
	writeMx sync.Mutex
}

// Upgrade upgrades an HTTP request to a websocket connection.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, xerrors.Errorf("websocket upgrade failed: %w", err)
	}
	return NewConn(ws), nil
}

// NewConn wraps an established websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Listen reads messages until the connection is closed.
//
// Malformed messages are logged and skipped. A normal close by the peer
// returns nil.
func (c *Conn) Listen() error {
	log := logging.With("conn", c.ID)
	log.Info("Listening for touch events")
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("Connection closed by peer")
				return nil
			}
			return xerrors.Errorf("read failed: %w", err)
		}

		var m Message
		err = json.Unmarshal(data, &m)
		if err != nil {
			log.Warnf("Skip malformed message: %v", err)
			continue
		}
		s, err := m.Snapshot()
		if err != nil {
			log.Warnf("Skip message: %v", err)
			continue
		}
		c.Publish(s)
	}
}

// Send writes v as a JSON text message.
func (c *Conn) Send(v interface{}) error {
	c.writeMx.Lock()
	defer c.writeMx.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

// Close sends a close message and closes the connection.
func (c *Conn) Close() error {
	c.writeMx.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	c.writeMx.Unlock()
	if err != nil {
		logging.Debug("write close for %v: %v", c.ID, err)
	}
	return c.ws.Close()
}
