package model

// Player is a participant as the authority describes it.
type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre,omitempty"`
	Color string `json:"color,omitempty"`
}

// Token is the authority's view of one piece. Position is a ring index,
// negative while the piece waits at its base.
type Token struct {
	ID            int  `json:"id"`
	Position      int  `json:"posicion"`
	InCorridor    bool `json:"enPasillo,omitempty"`
	AtGoal        bool `json:"enMeta,omitempty"`
	CorridorIndex int  `json:"indicePasillo,omitempty"`
}
