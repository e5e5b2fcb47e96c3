package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const maxLine = 1 << 20

func NewRelay(cfg Config) *Relay {
	r := &Relay{
		Config:   cfg,
		Sessions: make(map[string]*RelaySession),
		Requests: make(chan RelayRequest),
		Upgrader: &websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	r.dial = func(timeout time.Duration) (net.Conn, error) {
		return net.DialTimeout("tcp", r.Config.BrokerAddr, timeout)
	}
	return r
}

func (r *Relay) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, req *http.Request) {
		log.Infof("HandleHttpCall connection from %s", req.RemoteAddr)

		broker, err := r.dial(r.Config.DialTimeout)
		if err != nil {
			log.Errorf("HandleHttpCall broker %s unreachable: %v", r.Config.BrokerAddr, err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}

		con, err := r.Upgrader.Upgrade(w, req, nil)
		if err != nil {
			// Upgrade already answered the request
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			broker.Close()
			return
		}

		rs := &RelaySession{
			State:  RS_NEW,
			Id:     uuid.New().String(),
			Conn:   con,
			Broker: broker,
			Done:   make(chan struct{}),
		}
		select {
		case r.Requests <- RelayRequest{Kind: REQ_REGISTER, Session: rs}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall register TIMEOUTED")
			rs.Close(RS_ERR)
			return
		}

		con.SetPingHandler(func(message string) error {
			err := con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
		rs.setState(RS_OPEN)
		go rs.LoopChannelRead()
		go rs.LoopChannelWrite()

		log.Infof("HandleHttpCall session %s relaying to %s", rs.Id, r.Config.BrokerAddr)
		<-rs.Done
		r.Requests <- RelayRequest{Kind: REQ_UNREGISTER, Session: rs}
		log.Infof("HandleHttpCall session %s over (%s)", rs.Id, rs.state().Name())
	}
}

func (r *Relay) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reply := make(chan int, 1)
		select {
		case r.Requests <- RelayRequest{Kind: REQ_COUNT, Reply: reply}:
		case <-time.After(time.Second):
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Health{Status: "ok", Sessions: <-reply}); err != nil {
			log.Warnf("HandleHealth %v", err)
		}
	}
}

func (r *Relay) Loop() {
	log.Info("Relay.Loop starting")
	for req := range r.Requests {
		switch req.Kind {
		case REQ_REGISTER:
			r.Sessions[req.Session.Id] = req.Session
			log.Infof("Relay.Loop + %s, %d live", req.Session.Id, len(r.Sessions))
		case REQ_UNREGISTER:
			delete(r.Sessions, req.Session.Id)
			log.Infof("Relay.Loop - %s, %d live", req.Session.Id, len(r.Sessions))
		case REQ_COUNT:
			req.Reply <- len(r.Sessions)
		}
	}
}

func (rs *RelaySession) state() RelaySessionState {
	rs.stateMu.Lock()
	defer rs.stateMu.Unlock()
	return rs.State
}

func (rs *RelaySession) setState(s RelaySessionState) {
	rs.stateMu.Lock()
	rs.State = s
	rs.stateMu.Unlock()
}

// Close tears down both sides once; the first caller decides the final state.
func (rs *RelaySession) Close(final RelaySessionState) {
	rs.closeOnce.Do(func() {
		rs.setState(final)
		rs.Conn.Close()
		rs.Broker.Close()
		close(rs.Done)
	})
}

// LoopChannelRead forwards every websocket frame to the broker as one line.
func (rs *RelaySession) LoopChannelRead() {
	log.Debugf("LoopChannelRead %s STARTED", rs.Id)
	for {
		_, data, err := rs.Conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				rs.Close(RS_CLOSED)
			} else {
				log.Debugf("LoopChannelRead %s err reading message from Conn %v", rs.Id, err)
				rs.Close(RS_ERR)
			}
			break
		}
		line := frameLine(data)
		if len(line) == 0 {
			continue
		}
		if _, err := rs.Broker.Write(append(line, '\n')); err != nil {
			log.Warnf("LoopChannelRead %s cant write to broker %v", rs.Id, err)
			rs.Close(RS_ERR)
			break
		}
	}
	log.Debugf("LoopChannelRead %s ENDED", rs.Id)
}

// LoopChannelWrite forwards every broker line to the websocket as a text frame.
func (rs *RelaySession) LoopChannelWrite() {
	log.Debugf("LoopChannelWrite %s STARTED", rs.Id)
	scanner := bufio.NewScanner(rs.Broker)
	scanner.Buffer(make([]byte, 0, 4096), maxLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := rs.Conn.WriteMessage(websocket.TextMessage, line); err != nil {
			log.Debugf("LoopChannelWrite %s cant write %v", rs.Id, err)
			rs.Close(RS_ERR)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debugf("LoopChannelWrite %s broker read %v", rs.Id, err)
		rs.Close(RS_ERR)
	} else {
		log.Infof("LoopChannelWrite %s broker closed", rs.Id)
		rs.Close(RS_CLOSED)
	}
	log.Debugf("LoopChannelWrite %s ENDED", rs.Id)
}

// frameLine flattens a frame onto one line. JSON forbids raw newlines
// inside strings, so replacing them with spaces keeps the document intact.
func frameLine(data []byte) []byte {
	line := bytes.ReplaceAll(data, []byte{'\r'}, []byte{' '})
	line = bytes.ReplaceAll(line, []byte{'\n'}, []byte{' '})
	return bytes.TrimSpace(line)
}
