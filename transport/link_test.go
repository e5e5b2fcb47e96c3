package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/parchis/model"
)

const wait = 2 * time.Second

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func fastOptions(max int) Options {
	return Options{MaxReconnects: max, ReconnectDelay: 10 * time.Millisecond, Dialer: websocket.DefaultDialer}
}

func next(t *testing.T, ch chan Notification, want EventType) Notification {
	t.Helper()
	select {
	case n := <-ch:
		require.Equal(t, want.Name(), n.Type.Name())
		return n
	case <-time.After(wait):
		t.Fatalf("no %s notification", want.Name())
	}
	return Notification{}
}

// authority upgrades every request and hands the connection to serve.
func authority(t *testing.T, serve func(*websocket.Conn)) *httptest.Server {
	upgrader := websocket.Upgrader{}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		serve(conn)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestLink_ReceivesDecodedEvents(t *testing.T) {
	s := authority(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"tipoEvento":"JUGADOR_CONECTADO","mensaje":"Tu ID es: 3"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`garbage`))
		_, _, _ = conn.ReadMessage()
	})
	l := NewLink(wsURL(s), fastOptions(0))
	ch := l.Subscribe()
	l.Start(context.Background())
	defer l.Close()

	next(t, ch, EventConnect)
	n := next(t, ch, EventMessage)
	assert.Equal(t, model.KindPlayerConnected, n.Event.Kind)
	assert.Equal(t, "Tu ID es: 3", n.Event.Message)
	n = next(t, ch, EventError)
	assert.Error(t, n.Err)
	assert.True(t, l.Connected())
}

func TestLink_SendWritesJSON(t *testing.T) {
	got := make(chan []byte, 1)
	s := authority(t, func(conn *websocket.Conn) {
		_, data, err := conn.ReadMessage()
		if err == nil {
			got <- data
		}
	})
	l := NewLink(wsURL(s), fastOptions(0))
	assert.True(t, errors.Is(l.Send(model.StartRequest()), ErrNotConnected))

	ch := l.Subscribe()
	l.Start(context.Background())
	defer l.Close()
	next(t, ch, EventConnect)

	require.NoError(t, l.Send(model.TurnRequest(model.Player{ID: 1, Color: "ROJO"}, 2)))
	select {
	case data := <-got:
		e, err := model.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, model.KindTurnRequest, e.Kind)
		assert.Equal(t, 2, e.Token.ID)
	case <-time.After(wait):
		t.Fatal("authority got nothing")
	}
}

func TestLink_ReconnectsAfterDrop(t *testing.T) {
	var accepted int32
	s := authority(t, func(conn *websocket.Conn) {
		if atomic.AddInt32(&accepted, 1) == 1 {
			return
		}
		_, _, _ = conn.ReadMessage()
	})
	l := NewLink(wsURL(s), fastOptions(5))
	ch := l.Subscribe()
	l.Start(context.Background())
	defer l.Close()

	next(t, ch, EventConnect)
	next(t, ch, EventDisconnect)
	next(t, ch, EventConnect)
	assert.Equal(t, int32(2), atomic.LoadInt32(&accepted))
}

func TestLink_GivesUpAfterMaxReconnects(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(s)
	s.Close()

	l := NewLink(url, fastOptions(2))
	ch := l.Subscribe()
	l.Start(context.Background())

	for i := 0; i < 3; i++ {
		next(t, ch, EventError)
	}
	select {
	case <-l.Done():
	case <-time.After(wait):
		t.Fatal("link kept retrying")
	}
	assert.False(t, l.Connected())
}

func TestLink_CloseDisablesReconnect(t *testing.T) {
	var accepted int32
	s := authority(t, func(conn *websocket.Conn) {
		atomic.AddInt32(&accepted, 1)
		_, _, _ = conn.ReadMessage()
	})
	l := NewLink(wsURL(s), fastOptions(5))
	ch := l.Subscribe()
	l.Start(context.Background())
	next(t, ch, EventConnect)

	l.Close()
	next(t, ch, EventDisconnect)
	select {
	case <-l.Done():
	case <-time.After(wait):
		t.Fatal("link did not stop")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&accepted))
	l.Close()
}

func TestLink_Unsubscribe(t *testing.T) {
	l := NewLink("ws://127.0.0.1:1", fastOptions(0))
	ch := l.Subscribe()
	l.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
	l.Unsubscribe(ch)
}

func TestEventType_Name(t *testing.T) {
	assert.Equal(t, "MESSAGE", EventMessage.Name())
	assert.Equal(t, "N/A(9)", EventType(9).Name())
}
