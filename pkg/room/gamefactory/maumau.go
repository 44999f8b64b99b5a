package gamefactory

import (
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// cards kept back so the draw pile can't start empty
const mauMauReserve = 10

type mauMauFactory struct{}

func (m mauMauFactory) Variant() session.Variant {
	return session.MauMau
}

func (m mauMauFactory) Settings(opts Options) (session.Settings, error) {
	if err := validateDeckSize(opts.DeckSize); err != nil {
		return session.Settings{}, err
	}

	if opts.NumberOfStartCards < 5 || opts.NumberOfStartCards > 10 {
		return session.Settings{}, Error("number of start cards must be between 5 and 10")
	}

	return session.Settings{
		MaxPlayers:         minInt((opts.DeckSize-mauMauReserve)/opts.NumberOfStartCards, maxPlayers),
		DeckSize:           opts.DeckSize,
		NumberOfStartCards: opts.NumberOfStartCards,
	}, nil
}
