package gamefactory

import (
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// every player should get at least this many cards
const luegenCardsPerPlayer = 6

type luegenFactory struct{}

func (l luegenFactory) Variant() session.Variant {
	return session.Luegen
}

func (l luegenFactory) Settings(opts Options) (session.Settings, error) {
	if err := validateDeckSize(opts.DeckSize); err != nil {
		return session.Settings{}, err
	}

	gamemode := opts.Gamemode
	switch gamemode {
	case "":
		gamemode = session.GamemodeClassic
	case session.GamemodeClassic, session.GamemodeAlternative:
	default:
		return session.Settings{}, Error("gamemode must be gamemode_classic or gamemode_alternative")
	}

	return session.Settings{
		MaxPlayers: minInt(opts.DeckSize/luegenCardsPerPlayer, maxPlayers),
		DeckSize:   opts.DeckSize,
		Gamemode:   gamemode,
	}, nil
}
