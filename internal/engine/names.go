package engine

import (
	"fmt"
	"strings"
)

// NameProvider supplies the name of an incoming batter after a dismissal.
// It is given the default the engine would use and may return "" to accept it.
type NameProvider interface {
	NextBatter(suggestion string) string
}

type NameProviderFunc func(suggestion string) string

func (f NameProviderFunc) NextBatter(suggestion string) string { return f(suggestion) }

// FixedName answers every prompt with the same name.
func FixedName(name string) NameProvider {
	return NameProviderFunc(func(string) string { return name })
}

// NameQueue hands out names in order and then falls back to the suggestion.
type NameQueue struct {
	names []string
}

func NewNameQueue(names ...string) *NameQueue {
	return &NameQueue{names: names}
}

func (q *NameQueue) NextBatter(suggestion string) string {
	if len(q.names) == 0 {
		return ""
	}
	name := q.names[0]
	q.names = q.names[1:]
	return name
}

// nextBatterName consults names and consumes one ordinal whichever answer wins.
func (s *State) nextBatterName(names NameProvider) string {
	suggestion := fmt.Sprintf("Player %d", s.NextBatter)
	s.NextBatter++
	if names == nil {
		return suggestion
	}
	if name := strings.TrimSpace(names.NextBatter(suggestion)); name != "" {
		return name
	}
	return suggestion
}
