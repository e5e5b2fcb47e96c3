package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/model"
)

var ErrNotConnected = errors.New("transport: not connected")

type EventType int

const (
	EventConnect EventType = iota + 1
	EventDisconnect
	EventMessage
	EventError
)

func (t EventType) Name() string {
	switch t {
	case EventConnect:
		return "CONNECT"
	case EventDisconnect:
		return "DISCONNECT"
	case EventMessage:
		return "MESSAGE"
	case EventError:
		return "ERROR"
	default:
		return fmt.Sprintf("N/A(%d)", t)
	}
}

// Notification is what subscribers receive. Event is set for EventMessage,
// Err for EventError.
type Notification struct {
	Type  EventType
	Event model.Event
	Err   error
}

type Options struct {
	MaxReconnects  int
	ReconnectDelay time.Duration
	Dialer         *websocket.Dialer
}

var DefaultOptions = Options{
	MaxReconnects:  5,
	ReconnectDelay: 2 * time.Second,
	Dialer:         websocket.DefaultDialer,
}

// Link keeps one websocket to the authority, redialing after a drop until
// the attempts run out or Close is called.
type Link struct {
	url  string
	opts Options

	mu       sync.Mutex
	conn     *websocket.Conn
	closed   bool
	attempts int
	stop     chan struct{}
	done     chan struct{}

	subsMu sync.Mutex
	subs   map[chan Notification]struct{}
}

func NewLink(url string, opts Options) *Link {
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	return &Link{
		url:  url,
		opts: opts,
		stop: make(chan struct{}),
		done: make(chan struct{}),
		subs: make(map[chan Notification]struct{}),
	}
}

func (l *Link) Subscribe() chan Notification {
	ch := make(chan Notification, 256)
	l.subsMu.Lock()
	l.subs[ch] = struct{}{}
	l.subsMu.Unlock()
	return ch
}

func (l *Link) Unsubscribe(ch chan Notification) {
	l.subsMu.Lock()
	if _, ok := l.subs[ch]; ok {
		delete(l.subs, ch)
		close(ch)
	}
	l.subsMu.Unlock()
}

func (l *Link) publish(n Notification) {
	l.subsMu.Lock()
	for ch := range l.subs {
		select {
		case ch <- n:
		default:
			log.Warnf("Link.publish subscriber full, dropping %s", n.Type.Name())
		}
	}
	l.subsMu.Unlock()
}

// Start dials in the background. Subscribe first to see the first CONNECT.
func (l *Link) Start(ctx context.Context) {
	go l.loop(ctx)
}

// Done is closed once the link stopped for good.
func (l *Link) Done() <-chan struct{} {
	return l.done
}

func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn != nil
}

func (l *Link) loop(ctx context.Context) {
	defer close(l.done)
	for {
		log.Infof("Link.loop dialing %s", l.url)
		conn, _, err := l.opts.Dialer.DialContext(ctx, l.url, nil)
		if err != nil {
			log.Warnf("Link.loop dial %v", err)
			l.publish(Notification{Type: EventError, Err: err})
		} else if l.attach(conn) {
			l.publish(Notification{Type: EventConnect})
			l.read(conn)
			l.detach()
			l.publish(Notification{Type: EventDisconnect})
		} else {
			conn.Close()
			return
		}

		if !l.nextAttempt() {
			return
		}
		select {
		case <-time.After(l.opts.ReconnectDelay):
		case <-l.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (l *Link) attach(conn *websocket.Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.conn = conn
	l.attempts = 0
	return true
}

func (l *Link) detach() {
	l.mu.Lock()
	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
	l.mu.Unlock()
}

func (l *Link) nextAttempt() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if l.attempts >= l.opts.MaxReconnects {
		log.Errorf("Link giving up after %d reconnects", l.attempts)
		return false
	}
	l.attempts++
	log.Infof("Link reconnecting (%d/%d)", l.attempts, l.opts.MaxReconnects)
	return true
}

func (l *Link) read(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Infof("Link.read ended %v", err)
			return
		}
		e, err := model.Decode(data)
		if err != nil {
			log.Warnf("Link.read %v", err)
			l.publish(Notification{Type: EventError, Err: err})
			continue
		}
		log.Debugf("Link.read %s", e.Kind)
		l.publish(Notification{Type: EventMessage, Event: e})
	}
}

// Send writes e as one JSON text frame.
func (l *Link) Send(e model.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return ErrNotConnected
	}
	if err := l.conn.WriteJSON(e); err != nil {
		return fmt.Errorf("transport: send %s: %w", e.Kind, err)
	}
	log.Debugf("Link.Send %s", e.Kind)
	return nil
}

// Close drops the connection and disables reconnection.
func (l *Link) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.stop)
	conn := l.conn
	l.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}
