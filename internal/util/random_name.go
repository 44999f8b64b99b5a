package util

import (
	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
)

var random rng.Generator = rng.Crypto{}

type gender int

const (
	masculine gender = iota
	feminine
	neuter
)

type animal struct {
	name   string
	gender gender
}

var adjectives = []string{
	"Schnell", "Klug", "Stark", "Mutig", "Flink", "Tapfer", "Witzig", "Kreativ", "Neugierig", "Laut",
	"Gewitzt", "Verspielt", "Sanft", "Ruhig", "Schlau", "Frech", "Listig", "Wachsam", "Eifrig", "Geduldig",
	"Charmant", "Treu", "Fröhlich", "Gelassen", "Vorsichtig", "Humorvoll", "Aufmerksam", "Herzlich",
}

var animals = []animal{
	{"Tiger", masculine}, {"Fuchs", masculine}, {"Adler", masculine}, {"Wolf", masculine},
	{"Panda", masculine}, {"Koala", masculine}, {"Delfin", masculine}, {"Pinguin", masculine},
	{"Dachs", masculine}, {"Luchs", masculine}, {"Otter", masculine}, {"Igel", masculine},
	{"Eule", feminine}, {"Giraffe", feminine}, {"Schildkröte", feminine}, {"Möwe", feminine},
	{"Fledermaus", feminine}, {"Alpaka", neuter}, {"Zebra", neuter}, {"Nashorn", neuter},
	{"Erdmännchen", neuter}, {"Faultier", neuter}, {"Känguru", neuter}, {"Murmeltier", neuter},
}

func (g gender) inflect(adjective string) string {
	switch g {
	case feminine:
		return adjective + "e"
	case neuter:
		return adjective + "es"
	}

	return adjective + "er"
}

// GetRandomName returns a guest display name such as "SchlauerFuchs"
func GetRandomName() string {
	adjective := adjectives[random.Intn(len(adjectives))]
	a := animals[random.Intn(len(animals))]

	return a.gender.inflect(adjective) + a.name
}
