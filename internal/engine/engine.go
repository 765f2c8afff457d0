package engine

import (
	"errors"
	"fmt"
	"math"
)

var ErrInningsOver = errors.New("innings over")
var ErrInvalidRuns = errors.New("invalid run value")
var ErrUnknownExtra = errors.New("unknown extra")
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	BallsPerOver = 6
	MaxWickets   = 10

	// MaxRunsPerBall caps a single run entry; anything larger is a typo.
	MaxRunsPerBall = 7
)

type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

// Other returns the opposite batting slot.
func (s Slot) Other() Slot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

type Batter struct {
	Name  string
	Runs  int
	Balls int
}

type Lineup struct {
	A string
	B string
}

var DefaultLineup = Lineup{A: "Rahul", B: "Rohit"}

type State struct {
	TotalRuns   int
	Wickets     int
	Balls       int // legal balls in the current over
	Overs       int
	Batters     map[Slot]Batter
	Striker     Slot
	FreeHit     bool
	InningsOver bool
	NextBatter  int
	Openers     Lineup
	Status      string
}

type Extra string

const (
	ExtraWide    Extra = "wide"
	ExtraNoBall  Extra = "noball"
	ExtraBye     Extra = "bye"
	ExtraLegBye  Extra = "legbye"
	ExtraFreeHit Extra = "freehit"
)

type CommandType string

const (
	CmdRun           CommandType = "Run"
	CmdExtra         CommandType = "Extra"
	CmdWicket        CommandType = "Wicket"
	CmdSwitchStriker CommandType = "SwitchStriker"
	CmdReset         CommandType = "Reset"
)

/*
	CmdRun           -> EvtRunScored -> EvtOverCompleted?
	CmdExtra         -> EvtExtra (bye/legbye may add EvtOverCompleted), freehit -> EvtFreeHitSet
	CmdWicket        -> EvtWicketIgnored when a free hit is pending
	                 -> EvtWicket -> EvtOverCompleted? -> EvtInningsOver on the tenth
	CmdSwitchStriker -> EvtStrikerSwitched
	CmdReset         -> EvtReset
*/

type Command struct {
	Type  CommandType
	Runs  int
	Extra Extra
	Kind  string // dismissal label, "Wicket" when empty
}

type EventType string

const (
	EvtRunScored       EventType = "RunScored"
	EvtExtra           EventType = "Extra"
	EvtFreeHitSet      EventType = "FreeHitSet"
	EvtWicket          EventType = "Wicket"
	EvtWicketIgnored   EventType = "WicketIgnored"
	EvtOverCompleted   EventType = "OverCompleted"
	EvtStrikerSwitched EventType = "StrikerSwitched"
	EvtInningsOver     EventType = "InningsOver"
	EvtReset           EventType = "Reset"
)

type Tone string

const (
	ToneGood Tone = "good"
	ToneBad  Tone = "bad"
	ToneInfo Tone = "info"
)

type Event struct {
	Type     EventType `json:"type"`
	Tone     Tone      `json:"tone"`
	Text     string    `json:"text"`
	Batter   string    `json:"batter,omitempty"`
	Incoming string    `json:"incoming,omitempty"`
	Runs     int       `json:"runs,omitempty"`
}

// Apply derives the next innings state from one command. The input state is
// never modified; on error the returned state is s unchanged.
func Apply(s State, cmd Command, names NameProvider) ([]Event, State, error) {
	if cmd.Type == CmdReset {
		next := NewState(s.Openers)
		next.Status = "Reset. Ready."
		return []Event{{Type: EvtReset, Tone: ToneInfo, Text: next.Status}}, next, nil
	}

	if s.InningsOver {
		return nil, s, ErrInningsOver
	}

	newState := s.clone()

	switch cmd.Type {
	case CmdRun:
		if cmd.Runs < 0 || cmd.Runs > MaxRunsPerBall || cmd.Runs > math.MaxInt-s.TotalRuns {
			return nil, s, fmt.Errorf("%w: %d", ErrInvalidRuns, cmd.Runs)
		}
		n := cmd.Runs
		scorer := newState.Batters[newState.Striker]

		newState.TotalRuns += n
		scorer.Runs += n
		scorer.Balls++
		newState.Batters[newState.Striker] = scorer

		events := []Event{{
			Type:   EvtRunScored,
			Tone:   ToneGood,
			Text:   fmt.Sprintf("%s scored %d", scorer.Name, n),
			Batter: scorer.Name,
			Runs:   n,
		}}
		events = append(events, newState.advanceBall()...)
		if n%2 == 1 {
			newState.rotate()
		}
		newState.FreeHit = false

		plural := ""
		if n > 1 {
			plural = "s"
		}
		newState.Status = fmt.Sprintf("+%d run%s", n, plural)
		return events, newState, nil

	case CmdExtra:
		return applyExtra(newState, cmd.Extra)

	case CmdWicket:
		return applyWicket(newState, cmd.Kind, names)

	case CmdSwitchStriker:
		newState.rotate()
		newState.Status = "Striker switched"
		return []Event{{Type: EvtStrikerSwitched, Tone: ToneInfo, Text: newState.Status}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func applyExtra(s State, extra Extra) ([]Event, State, error) {
	switch extra {
	case ExtraWide:
		// a pending free hit survives a wide
		s.TotalRuns++
		s.Status = "Wide +1 (no ball count)"
		return []Event{{Type: EvtExtra, Tone: ToneInfo, Text: "Wide +1", Runs: 1}}, s, nil

	case ExtraNoBall:
		s.TotalRuns++
		s.FreeHit = true
		s.Status = "No Ball +1 (Free Hit)"
		return []Event{{Type: EvtExtra, Tone: ToneInfo, Text: s.Status, Runs: 1}}, s, nil

	case ExtraBye, ExtraLegBye:
		label := "Bye +1"
		if extra == ExtraLegBye {
			label = "Leg Bye +1"
		}
		s.TotalRuns++
		striker := s.Batters[s.Striker]
		striker.Balls++
		s.Batters[s.Striker] = striker

		events := []Event{{Type: EvtExtra, Tone: ToneInfo, Text: label, Runs: 1}}
		events = append(events, s.advanceBall()...)
		s.rotate()
		s.FreeHit = false
		s.Status = label
		return events, s, nil

	case ExtraFreeHit:
		s.FreeHit = true
		s.Status = "Free Hit set"
		return []Event{{Type: EvtFreeHitSet, Tone: ToneInfo, Text: s.Status}}, s, nil

	default:
		return nil, s, fmt.Errorf("%w: %q", ErrUnknownExtra, extra)
	}
}

func applyWicket(s State, kind string, names NameProvider) ([]Event, State, error) {
	if kind == "" {
		kind = "Wicket"
	}

	if s.FreeHit {
		s.FreeHit = false
		s.Status = fmt.Sprintf("%s ignored due to Free Hit", kind)
		return []Event{{Type: EvtWicketIgnored, Tone: ToneInfo, Text: s.Status}}, s, nil
	}

	s.Wickets = min(MaxWickets, s.Wickets+1)

	outSlot := s.Striker
	out := s.Batters[outSlot]
	out.Balls++
	s.Batters[outSlot] = out

	overEvents := s.advanceBall()

	incoming := s.nextBatterName(names)
	s.Batters[outSlot] = Batter{Name: incoming}
	s.FreeHit = false

	events := []Event{{
		Type:     EvtWicket,
		Tone:     ToneBad,
		Text:     fmt.Sprintf("Wicket! %s OUT (%s)", out.Name, kind),
		Batter:   out.Name,
		Incoming: incoming,
	}}
	events = append(events, overEvents...)
	s.Status = kind + "!"

	if s.Wickets >= MaxWickets {
		s.InningsOver = true
		s.Status = "Innings over."
		events = append(events, Event{Type: EvtInningsOver, Tone: ToneBad, Text: s.Status})
	}
	return events, s, nil
}

// Replay folds cmds over a fresh state. Rejected commands are skipped, the
// same way a live innings ignores them.
func Replay(openers Lineup, cmds []Command, names NameProvider) ([]Event, State) {
	s := NewState(openers)
	var all []Event
	for _, cmd := range cmds {
		events, next, err := Apply(s, cmd, names)
		if err != nil {
			continue
		}
		all = append(all, events...)
		s = next
	}
	return all, s
}
