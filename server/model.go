package server

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Relay bridges browser-style websocket players to the line-oriented TCP
// broker that runs the match. Sessions is owned by Loop.
type Relay struct {
	Config   Config
	Sessions map[string]*RelaySession
	Requests chan RelayRequest
	Upgrader *websocket.Upgrader

	dial func(timeout time.Duration) (net.Conn, error)
}

type RelaySessionState int

const (
	RS_NEW RelaySessionState = iota + 1
	RS_OPEN
	RS_CLOSED
	RS_ERR
)

// RelaySession pairs one websocket with its own broker connection.
type RelaySession struct {
	State  RelaySessionState
	Id     string
	Conn   *websocket.Conn
	Broker net.Conn
	Done   chan struct{}

	stateMu   sync.Mutex
	closeOnce sync.Once
}
