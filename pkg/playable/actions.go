package playable

// lobby actions, shared by every variant
const (
	ActionJoin             = "join"
	ActionReady            = "ready"
	ActionLeaveLobby       = "leave_lobby"
	ActionRequestLobbyData = "request_lobby_data"
	ActionLobbyData        = "lobby_data"
	ActionRequestGameData  = "request_game_data"
	ActionGameData         = "game_data"
)

// game actions, shared by every variant
const (
	ActionStart             = "start"
	ActionHand              = "hand"
	ActionCardCount         = "card_count"
	ActionTurn              = "turn"
	ActionWin               = "win"
	ActionEnd               = "end"
	ActionLeaveGame         = "leave_game"
	ActionTimeoutPenalty    = "timeout_penalty"
	ActionDiscardDuplicates = "discard_duplicates"
)

// message keys
const (
	FieldAction           = "action"
	FieldError            = "error"
	FieldPlayer           = "player"
	FieldPlayers          = "players"
	FieldReady            = "ready"
	FieldHand             = "hand"
	FieldCards            = "cards"
	FieldCard             = "card"
	FieldCurrentPlayer    = "current_player"
	FieldDiscardPile      = "discard_pile"
	FieldDiscardPileCount = "discard_pile_count"
	FieldDrawPile         = "draw_pile"
	FieldDrawPileCount    = "draw_pile_count"
	FieldHandCount        = "hand_count"
	FieldWinner           = "winner"
	FieldReason           = "reason"
	FieldValue            = "value"
)

// IsLobbyAction returns true for the actions that are dispatched in any phase
func IsLobbyAction(action string) bool {
	switch action {
	case ActionJoin, ActionReady, ActionLeaveLobby, ActionRequestLobbyData:
		return true
	}

	return false
}
