package room

import (
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
)

func newUnknownErrorResponse(playerID string) *playable.Response {
	return playable.NewErrorResponse(playerID, playable.ErrUnknown)
}
