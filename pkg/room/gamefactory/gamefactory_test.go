package gamefactory

import (
	"testing"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	a := assert.New(t)

	f, err := Get("maumau")
	a.NoError(err)
	a.Equal(session.MauMau, f.Variant())

	f, err = Get("lügen")
	a.NoError(err)
	a.Equal(session.Luegen, f.Variant())

	_, err = Get("poker")
	a.EqualError(err, "no game type with name: poker")
}

func Test_mauMauFactory_Settings(t *testing.T) {
	a := assert.New(t)
	f := factories["maumau"]

	settings, err := f.Settings(Options{DeckSize: 32, NumberOfStartCards: 5})
	a.NoError(err)
	a.Equal(session.Settings{MaxPlayers: 4, DeckSize: 32, NumberOfStartCards: 5}, settings)

	settings, err = f.Settings(Options{DeckSize: 104, NumberOfStartCards: 5})
	a.NoError(err)
	a.Equal(8, settings.MaxPlayers)

	settings, err = f.Settings(Options{DeckSize: 52, NumberOfStartCards: 7})
	a.NoError(err)
	a.Equal(6, settings.MaxPlayers)

	_, err = f.Settings(Options{DeckSize: 33, NumberOfStartCards: 5})
	a.Error(err)

	_, err = f.Settings(Options{DeckSize: 32, NumberOfStartCards: 4})
	a.Error(err)

	_, err = f.Settings(Options{DeckSize: 32, NumberOfStartCards: 11})
	a.Error(err)
}

func Test_luegenFactory_Settings(t *testing.T) {
	a := assert.New(t)
	f := factories["luegen"]

	settings, err := f.Settings(Options{DeckSize: 32})
	a.NoError(err)
	a.Equal(session.Settings{MaxPlayers: 5, DeckSize: 32, Gamemode: session.GamemodeClassic}, settings)

	settings, err = f.Settings(Options{DeckSize: 64, Gamemode: session.GamemodeAlternative})
	a.NoError(err)
	a.Equal(8, settings.MaxPlayers)
	a.Equal(session.GamemodeAlternative, settings.Gamemode)

	_, err = f.Settings(Options{DeckSize: 32, Gamemode: "gamemode_chaos"})
	a.Error(err)
}
