package engine

import "fmt"

// advanceBall counts one legal delivery. The sixth ball closes the over and
// hands strike to the other end.
func (s *State) advanceBall() []Event {
	s.Balls++
	if s.Balls < BallsPerOver {
		return nil
	}
	s.Balls = 0
	s.Overs++
	s.rotate()
	return []Event{{
		Type: EvtOverCompleted,
		Tone: ToneInfo,
		Text: fmt.Sprintf("End of over %d", s.Overs),
	}}
}

func (s *State) rotate() {
	s.Striker = s.Striker.Other()
}

// clone copies the batters map so Apply never writes through to the caller's state.
func (s State) clone() State {
	batters := make(map[Slot]Batter, len(s.Batters))
	for slot, b := range s.Batters {
		batters[slot] = b
	}
	s.Batters = batters
	return s
}
