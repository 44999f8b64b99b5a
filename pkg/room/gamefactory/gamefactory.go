package gamefactory

import (
	"fmt"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// upper bound for every variant
const maxPlayers = 8

var factories = map[string]GameFactory{
	"maumau": mauMauFactory{},
	"luegen": luegenFactory{},
	"lügen":  luegenFactory{},
}

// Options are the creation parameters a client sends
type Options struct {
	DeckSize           int
	NumberOfStartCards int
	Gamemode           session.Gamemode
}

// GameFactory validates creation options for one variant and derives the session settings
type GameFactory interface {
	Variant() session.Variant
	Settings(opts Options) (session.Settings, error)
}

// Error is a validation error that is safe to show to the client
type Error string

func (e Error) Error() string {
	return string(e)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, Error(fmt.Sprintf("no game type with name: %s", name))
	}

	return factory, nil
}

func validateDeckSize(size int) error {
	if !deck.ValidSize(size) {
		return Error(deck.ErrInvalidSize.Error())
	}

	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
