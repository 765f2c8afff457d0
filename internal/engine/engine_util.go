package engine

func NewState(openers Lineup) State {
	if openers.A == "" {
		openers.A = DefaultLineup.A
	}
	if openers.B == "" {
		openers.B = DefaultLineup.B
	}
	return State{
		Batters: map[Slot]Batter{
			SlotA: {Name: openers.A},
			SlotB: {Name: openers.B},
		},
		Striker:    SlotA,
		NextBatter: 3, // openers are players 1 and 2
		Openers:    openers,
		Status:     "Ready.",
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
