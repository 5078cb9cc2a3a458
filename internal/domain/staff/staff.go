// Package staff defines the newsroom roster entities.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package staff

import "math/rand"

// Employee is a hired writer. The roster only ever grows; there is no
// firing mechanic.
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var ratFirstNames = []string{
	"Squeaky", "Whisker", "Cheddar", "Nibbles", "Scamper", "Twitch",
	"Pipsqueak", "Scritch", "Scratch", "Snout", "Scurry", "Rizzo",
	"Crumb", "Rusty", "Peanut", "Scamp", "Rascal", "Gritty", "Taily",
	"April", "Dean", "Doctor", "Mister", "Miss", "Sir", "Madam",
	"Big", "Lil'", "Remy", "Splinter", "Emile", "Templeton", "Rattata",
	"Nigel", "Django", "Rattus", "Prof", "Yolanda", "Scabbers",
	"Ratbert", "Amy", "Rosemary", "Lady", "Socrates", "Talia", "Ms.",
	"Ratasha", "Maester", "Chuck", "Queen",
}

var ratLastNames = []string{
	"Cheese", "Pettigrew", "Rattus", "Ratburn", "Inkpaw", "Scratchwell",
	"McNibble", "Cheeseworth", "Whiskerton", "Seweridge", "Presswhisk",
	"Quilltail", "Ratsworth", "Tailor", "Scurrington", "Chewstein",
	"Ratrickson", "Scamperly", "Scribblesnout", "Blacktail", "Pawprint",
	"Rodenthorpe", "Goldchew", "Cutteridge", "Rat",
}

// Middle names are mostly empty so only a minority of rats carry one.
var ratMiddleNames = []string{
	"J.", "Q.", "G.", "E.", "V.", "Pip",
	"", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "",
}

// RandomRatName generates a display name for a newly hired writer.
// Purely cosmetic, so it uses the ambient math/rand source.
func RandomRatName() string {
	first := ratFirstNames[rand.Intn(len(ratFirstNames))]
	middle := ratMiddleNames[rand.Intn(len(ratMiddleNames))]
	last := ratLastNames[rand.Intn(len(ratLastNames))]
	if middle != "" {
		return first + " " + middle + " " + last
	}
	return first + " " + last
}
