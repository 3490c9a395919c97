package util

import (
	"fmt"
	"math/rand"
	"time"
)

var adjectives = []string{
	"Lucky", "Royal", "Smoky", "Velvet", "Golden", "Silent", "Wild", "Crooked", "Midnight", "Dusty", "Copper",
	"Marble", "Emerald", "Scarlet", "Lonesome", "Rolling", "Rusty", "Shady", "Gilded", "Neon",
}

var places = []string{
	"Saloon", "Riverboat", "Parlor", "Lounge", "Den", "Tavern", "Casino", "Backroom", "Canteen", "Hideout",
	"Clubhouse", "Pavilion", "Cellar", "Garage", "Rooftop",
}

// nolint:gosec
var random = rand.New(rand.NewSource(time.Now().UnixNano()))

// GetRandomName returns a random table name by combining an adjective with a place
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	placesIndex := random.Intn(len(places))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], places[placesIndex])
}
