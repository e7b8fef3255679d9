// Package split divides a finished roster into teams. The assignment
// shuffles members with a seeded source and deals them round-robin, so team
// sizes never differ by more than one and a seed reproduces its draw.
package split

import (
	"fmt"
	"math/rand"

	"github.com/teamdraft/teamdraft/internal/errors"
)

// Team is one side of the draw.
type Team struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Split deals members into count teams. Members is not mutated. The same
// seed over the same input always produces the same teams.
func Split(members []string, count int, seed int64) ([]Team, error) {
	if count < 1 {
		return nil, errors.NewValidationError("team count must be at least 1").
			WithField("count").WithValue(count)
	}
	if len(members) < count {
		return nil, errors.NewValidationError("not enough members for the requested teams").
			WithField("count").WithValue(count)
	}

	shuffled := make([]string, len(members))
	copy(shuffled, members)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	teams := make([]Team, count)
	for i := range teams {
		teams[i].Name = fmt.Sprintf("Team %d", i+1)
	}
	for i, name := range shuffled {
		t := &teams[i%count]
		t.Members = append(t.Members, name)
	}
	return teams, nil
}
