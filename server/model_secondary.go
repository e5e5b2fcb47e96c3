package server

import (
	"fmt"
)

const HTTP_SERVER_ERR = 503

func (s RelaySessionState) Name() string {
	switch s {
	case RS_NEW:
		return "NEW"
	case RS_OPEN:
		return "OPEN"
	case RS_CLOSED:
		return "CLOSED"
	case RS_ERR:
		return "ERR"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type RequestKind int

const (
	REQ_REGISTER RequestKind = iota + 1
	REQ_UNREGISTER
	REQ_COUNT
)

// RelayRequest is the only way to touch Relay.Sessions. Count is answered
// on Reply for REQ_COUNT.
type RelayRequest struct {
	Kind    RequestKind
	Session *RelaySession
	Reply   chan int
}

type Health struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
