package session

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
)

// Variant is the rule set a session is played with
type Variant string

// variant constants
const (
	MauMau Variant = "maumau"
	Luegen Variant = "luegen"
)

// Gamemode is a Lügen rule option
type Gamemode string

// gamemode constants
const (
	GamemodeClassic     Gamemode = "gamemode_classic"
	GamemodeAlternative Gamemode = "gamemode_alternative"
)

// Settings are fixed when the session is created
type Settings struct {
	MaxPlayers         int      `json:"max_players"`
	DeckSize           int      `json:"deck_size"`
	NumberOfStartCards int      `json:"number_of_start_cards,omitempty"`
	Gamemode           Gamemode `json:"gamemode,omitempty"`
}

// Player is the per-player part of the session
type Player struct {
	Ready        bool      `json:"ready"`
	Hand         deck.Pile `json:"hand"`
	JoinSequence int       `json:"join_sequence"`
	LastAction   string    `json:"last_action,omitempty"`
}

// State is the variant state of a session
// Mau-Mau and Lügen share one record, fields not used by a variant stay at their zero value
type State struct {
	Started       bool      `json:"started"`
	CurrentPlayer string    `json:"current_player"`
	TurnStartTime time.Time `json:"turn_start_time"`
	Winner        []string  `json:"winner"`
	DrawPile      deck.Pile `json:"draw_pile"`
	DiscardPile   deck.Pile `json:"discard_pile"`

	// Mau-Mau
	Count7  int       `json:"count_7"`
	JChoice deck.Suit `json:"j_choice"`

	// Lügen
	RemovedPile []deck.Value `json:"removed_pile"`
	RoundValue  deck.Value   `json:"round_value"`
	NLast       int          `json:"n_last"`
	LastPlayer  string       `json:"last_player"`
	Success     bool         `json:"success"`
}

// Session is the authoritative record of one game
type Session struct {
	ID       string             `json:"id"`
	Type     Variant            `json:"type"`
	Code     string             `json:"code"`
	Settings Settings           `json:"settings"`
	State    State              `json:"state"`
	Players  map[string]*Player `json:"players"`
	Created  time.Time          `json:"created"`
	Updated  time.Time          `json:"updated"`
}

// New returns a session in lobby shape
func New(variant Variant, code string, settings Settings) *Session {
	now := time.Now()
	return &Session{
		ID:       uuid.New().String(),
		Type:     variant,
		Code:     code,
		Settings: settings,
		State:    lobbyState(),
		Players:  make(map[string]*Player),
		Created:  now,
		Updated:  now,
	}
}

func lobbyState() State {
	return State{
		Winner:      []string{},
		DrawPile:    deck.Pile{},
		DiscardPile: deck.Pile{},
		RemovedPile: []deck.Value{},
	}
}

// Reset returns the session to an empty lobby
func (s *Session) Reset() {
	s.State = lobbyState()
	s.Players = make(map[string]*Player)
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	cp := *s
	cp.State = s.State.clone()
	cp.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		player := *p
		player.Hand = p.Hand.Clone()
		cp.Players[id] = &player
	}

	return &cp
}

func (s State) clone() State {
	cp := s
	cp.Winner = append([]string{}, s.Winner...)
	cp.DrawPile = s.DrawPile.Clone()
	cp.DiscardPile = s.DiscardPile.Clone()
	cp.RemovedPile = append([]deck.Value{}, s.RemovedPile...)
	return cp
}

// Order returns the player IDs in turn order (ascending join sequence)
func (s *Session) Order() []string {
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return s.Players[ids[i]].JoinSequence < s.Players[ids[j]].JoinSequence
	})

	return ids
}

// NextPlayer returns the player after current in turn order, skipping skip players
// current must still be in the player map
func (s *Session) NextPlayer(current string, skip int) string {
	order := s.Order()
	if len(order) == 0 {
		return ""
	}

	for i, id := range order {
		if id == current {
			return order[(i+1+skip)%len(order)]
		}
	}

	return order[0]
}

// AddPlayer adds a player with the next join sequence
// Sequences are never reused, so a join after a leave still sorts last
func (s *Session) AddPlayer(id string) *Player {
	next := 1
	for _, p := range s.Players {
		if p.JoinSequence >= next {
			next = p.JoinSequence + 1
		}
	}

	p := &Player{
		Hand:         deck.Pile{},
		JoinSequence: next,
	}

	s.Players[id] = p
	return p
}

// RemovePlayer removes the player
// The join sequences of the remaining players are left as they are
func (s *Session) RemovePlayer(id string) {
	delete(s.Players, id)
}

// HandCounts maps each player to the number of cards in their hand
func (s *Session) HandCounts() map[string]int {
	counts := make(map[string]int, len(s.Players))
	for id, p := range s.Players {
		counts[id] = len(p.Hand)
	}

	return counts
}

// ReadyFlags maps each player to their ready flag
func (s *Session) ReadyFlags() map[string]bool {
	flags := make(map[string]bool, len(s.Players))
	for id, p := range s.Players {
		flags[id] = p.Ready
	}

	return flags
}

// AllReady returns true if every player is ready
func (s *Session) AllReady() bool {
	for _, p := range s.Players {
		if !p.Ready {
			return false
		}
	}

	return true
}

// StartTurn hands the turn to the player and restarts the turn clock
func (s *Session) StartTurn(playerID string, now time.Time) {
	s.State.CurrentPlayer = playerID
	s.State.TurnStartTime = now
}

// FirstWinner returns the first finisher or an empty string
func (s *Session) FirstWinner() string {
	if len(s.State.Winner) == 0 {
		return ""
	}

	return s.State.Winner[0]
}
