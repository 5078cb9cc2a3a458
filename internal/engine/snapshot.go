package engine

import (
	"github.com/google/uuid"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/staff"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

// Snapshot is the whole mutable simulation state. The Store hands out
// deep copies; the Clock consumes and produces them as values.
type Snapshot struct {
	Cash            float64                    `json:"cash"`
	Staff           []staff.Employee           `json:"staff"`
	Tick            int64                      `json:"tick"`
	Articles        map[string]article.Article `json:"articles"`
	Subscribers     int                        `json:"subscribers"`
	PublicationName string                     `json:"publication_name"`
}

// NewInitialSnapshot builds the fixed starting state: starting cash, one
// staff writer, zero articles, subscribers and ticks.
func NewInitialSnapshot(tuning sim.Tuning) Snapshot {
	return Snapshot{
		Cash: tuning.StartingCash,
		Staff: []staff.Employee{
			{ID: uuid.NewString(), Name: staff.RandomRatName()},
		},
		Tick:            0,
		Articles:        make(map[string]article.Article),
		Subscribers:     0,
		PublicationName: "Rat News Network",
	}
}

// Clone returns a deep copy of the snapshot. Article values are copied;
// the Content pointer is duplicated so callers cannot alias engine state.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Staff = make([]staff.Employee, len(s.Staff))
	copy(out.Staff, s.Staff)
	out.Articles = make(map[string]article.Article, len(s.Articles))
	for id, a := range s.Articles {
		if a.Content != nil {
			c := *a.Content
			a.Content = &c
		}
		out.Articles[id] = a
	}
	return out
}
