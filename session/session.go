// Package session tracks who this client is to the authority: the
// connection id it was handed, the seat it registered and whether it
// currently holds the turn.
package session

import (
	"strconv"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/model"
)

const idPrefix = "Tu ID es:"

// Session is owned by the render loop; it is not safe for concurrent use.
type Session struct {
	ConnectionID int
	Name         string
	Color        board.Color
	Registered   bool
	Started      bool
	MyTurn       bool
	Roster       []model.Player
}

func New() *Session {
	return &Session{ConnectionID: -1}
}

// Observe folds an authority event into the session.
func (s *Session) Observe(e model.Event) {
	switch e.Kind {
	case model.KindPlayerConnected:
		if id, ok := parseConnectionID(e.Message); ok {
			s.ConnectionID = id
			log.Infof("Session.Observe connection id %d", id)
		}
	case model.KindRegistered:
		if e.Player == nil {
			return
		}
		c, err := model.ParseColor(e.Player.Color)
		if err != nil {
			log.Warnf("Session.Observe registration with %v", err)
			return
		}
		s.Registered = true
		s.Name = e.Player.Name
		s.Color = c
	case model.KindPlayerUpdated:
		if e.Player != nil {
			s.upsert(*e.Player)
		}
	case model.KindGameStarted:
		s.Started = true
		s.MyTurn = false
	case model.KindTurnChanged:
		s.MyTurn = s.ConnectionID >= 0 && namesPlayer(e.Message, s.ConnectionID)
	case model.KindVictory, model.KindGameOver:
		s.MyTurn = false
	}
}

// Player is this client as the authority knows it.
func (s *Session) Player() model.Player {
	return model.Player{ID: s.ConnectionID, Name: s.Name, Color: model.WireColor(s.Color)}
}

func (s *Session) upsert(p model.Player) {
	for i := range s.Roster {
		if s.Roster[i].ID == p.ID {
			s.Roster[i] = p
			return
		}
	}
	s.Roster = append(s.Roster, p)
}

func parseConnectionID(msg string) (int, bool) {
	if !strings.HasPrefix(msg, idPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(msg, idPrefix)))
	if err != nil {
		return 0, false
	}
	return id, true
}

// namesPlayer looks for "jugador <id>" with id as a whole word so that
// player 1 does not take the turn announced for player 12.
func namesPlayer(msg string, id int) bool {
	want := strconv.Itoa(id)
	words := strings.Fields(msg)
	for i := 0; i+1 < len(words); i++ {
		if !strings.EqualFold(words[i], "jugador") {
			continue
		}
		if strings.TrimRightFunc(words[i+1], unicode.IsPunct) == want {
			return true
		}
	}
	return false
}
