package playable

// ErrorCode is an error that is safe to return to the requester
// The session is left unchanged when a handler returns one
type ErrorCode string

func (e ErrorCode) Error() string {
	return string(e)
}

// malformed request
const (
	ErrNoActionProvided       ErrorCode = "no_action_provided"
	ErrWrongData              ErrorCode = "wrong_data"
	ErrNoReadyProvided        ErrorCode = "no_ready_provided"
	ErrWrongReadyValue        ErrorCode = "wrong_ready_value"
	ErrNoCardProvided         ErrorCode = "no_card_provided"
	ErrNoMauProvided          ErrorCode = "no_mau_provided"
	ErrNoChoiceProvided       ErrorCode = "no_choice_provided"
	ErrNoCardsProvided        ErrorCode = "no_cards_provided"
	ErrNoClaimedValueProvided ErrorCode = "no_claimed_value_provided"
	ErrUnknownAction          ErrorCode = "unknown_action"
	ErrUnknownGameType        ErrorCode = "unknown_game_type"
)

// phase and turn violations
const (
	ErrGameAlreadyStarted  ErrorCode = "game_already_started"
	ErrPlayerAlreadyJoined ErrorCode = "player_already_joined"
	ErrGameFull            ErrorCode = "game_full"
	ErrGameNotStarted      ErrorCode = "game_not_started"
	ErrNotInLobby          ErrorCode = "player_not_in_lobby"
	ErrNotYourTurn         ErrorCode = "not_your_turn"
)

// rule violations
const (
	ErrCardNotInHand        ErrorCode = "card_not_in_hand"
	ErrCardNotAllowed       ErrorCode = "card_not_allowed"
	ErrTooManyCards         ErrorCode = "too_many_cards"
	ErrHasToDrawPenalty     ErrorCode = "has_to_draw_penalty"
	ErrJChoiceNotPossible   ErrorCode = "j_choice_not_possible"
	ErrValueNotPossible     ErrorCode = "value_not_possible"
	ErrChallengeNotPossible ErrorCode = "challenge_not_possible"
	ErrCantDrawAgain        ErrorCode = "cant_draw_again"
	ErrZeroCount7           ErrorCode = "0_count_7"
	ErrCanNotSkip           ErrorCode = "can_not_skip"
)

// ErrNoCardsLeft happens when a draw is requested and neither pile can supply a card
const ErrNoCardsLeft ErrorCode = "no_cards_left"

// ErrUnknown is sent before the connection is closed on an unexpected failure
const ErrUnknown ErrorCode = "unknown_error"
