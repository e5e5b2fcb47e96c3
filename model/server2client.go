package model

// EventKind is the tipoEvento discriminator of every authority message.
type EventKind string

// authority -> client
const (
	KindPlayerConnected  EventKind = "JUGADOR_CONECTADO"
	KindRegistered       EventKind = "REGISTRO_ACEPTADO"
	KindRegisterRejected EventKind = "REGISTRO_RECHAZADO"
	KindPlayerUpdated    EventKind = "JUGADOR_ACTUALIZADO"
	KindColorsAvailable  EventKind = "COLORES_DISPONIBLES"
	KindGameStarted      EventKind = "PARTIDA_INICIADA"
	KindTurnChanged      EventKind = "TURNO_CAMBIADO"
	KindPieceMoved       EventKind = "FICHA_MOVIDA"
	KindMoveImpossible   EventKind = "MOVIMIENTO_IMPOSIBLE"
	KindCapture          EventKind = "CAPTURA"
	KindLeftBase         EventKind = "FICHA_SALE_BASE"
	KindEnteredCorridor  EventKind = "ENTRA_PASILLO_COLOR"
	KindReachedGoal      EventKind = "FICHA_EN_META"
	KindVictory          EventKind = "VICTORIA"
	KindGameOver         EventKind = "PARTIDA_TERMINADA"
)

// client -> authority
const (
	KindRegisterRequest EventKind = "SOLICITAR_REGISTRO"
	KindStartRequest    EventKind = "SOLICITAR_INICIO"
	KindTurnRequest     EventKind = "SOLICITAR_TURNO"
)

// Event is the single envelope exchanged with the authority in both
// directions, one JSON object per message.
type Event struct {
	Kind        EventKind `json:"tipoEvento"`
	Player      *Player   `json:"jugadorAfectado,omitempty"`
	Token       *Token    `json:"fichaAfectada,omitempty"`
	Message     string    `json:"mensaje,omitempty"`
	NewPosition *int      `json:"posicionNueva,omitempty"`
	Dice        int       `json:"valorDado,omitempty"`
	Timestamp   int64     `json:"timestamp,omitempty"`
}

// MovesPiece reports whether the event carries a placement to apply.
func (e Event) MovesPiece() bool {
	switch e.Kind {
	case KindPieceMoved, KindCapture, KindLeftBase, KindEnteredCorridor, KindReachedGoal:
		return true
	default:
		return false
	}
}

// Ends reports whether the event closes the match.
func (e Event) Ends() bool {
	return e.Kind == KindVictory || e.Kind == KindGameOver
}
