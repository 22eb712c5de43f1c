package bot

import (
	"math/rand"
	"time"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

// Roster is the house regulars a table draws its opponents from.
var Roster = []string{
	"Pondy", "Weaponized", "Mythic", "Calamari", "Th3vious",
	"Arjay", "Tireaz", "Dotti", "Falky", "Iamcat21",
	"Sofis", "LustyCow", "Maral", "Sinari",
}

// Bankrolls and pacing.
const (
	minStack   int64 = 1000
	stackRange       = 4000

	thinkBase   = 800 * time.Millisecond
	thinkJitter = 1200 * time.Millisecond
)

// TableSeats draws 3 or 4 regulars with randomized bankrolls.
func TableSeats(rng *rand.Rand) []casino.Seat {
	n := 3 + rng.Intn(2)
	picks := rng.Perm(len(Roster))[:n]

	seats := make([]casino.Seat, n)
	for i, idx := range picks {
		seats[i] = casino.Seat{
			Name:  Roster[idx],
			Chips: minStack + rng.Int63n(stackRange),
		}
	}
	return seats
}

// ThinkDelay is how long a bot sits on its decision before acting.
func ThinkDelay(rng *rand.Rand) time.Duration {
	return thinkBase + time.Duration(rng.Int63n(int64(thinkJitter)))
}
