package engine

// Innings owns the state of one innings. It is not safe for concurrent use;
// callers serialize deliveries (see the lobby package).
type Innings struct {
	state State
	names NameProvider
}

func NewInnings(openers Lineup, names NameProvider) *Innings {
	return &Innings{state: NewState(openers), names: names}
}

// ResumeInnings takes ownership of an existing state, e.g. one built in a test
// or carried over by a lobby.
func ResumeInnings(s State, names NameProvider) *Innings {
	return &Innings{state: s.clone(), names: names}
}

func (in *Innings) State() State { return in.state.clone() }

func (in *Innings) Snapshot() Snapshot { return in.state.Snapshot() }

// Dispatch applies cmd with the innings' own name provider. Rejected
// commands leave the state untouched and return no events.
func (in *Innings) Dispatch(cmd Command) (Snapshot, []Event, error) {
	return in.DispatchWith(cmd, in.names)
}

// DispatchWith applies cmd, asking names for any incoming batter.
func (in *Innings) DispatchWith(cmd Command, names NameProvider) (Snapshot, []Event, error) {
	events, next, err := Apply(in.state, cmd, names)
	if err != nil {
		return in.state.Snapshot(), nil, err
	}
	in.state = next
	return next.Snapshot(), events, nil
}

func (in *Innings) RecordRun(n int) (Snapshot, []Event) {
	return in.quiet(Command{Type: CmdRun, Runs: n})
}

func (in *Innings) RecordExtra(extra Extra) (Snapshot, []Event) {
	return in.quiet(Command{Type: CmdExtra, Extra: extra})
}

func (in *Innings) RecordWicket(kind string) (Snapshot, []Event) {
	return in.quiet(Command{Type: CmdWicket, Kind: kind})
}

func (in *Innings) SwitchStriker() (Snapshot, []Event) {
	return in.quiet(Command{Type: CmdSwitchStriker})
}

func (in *Innings) Reset() (Snapshot, []Event) {
	return in.quiet(Command{Type: CmdReset})
}

// quiet drops the rejection reason; callers read InningsOver off the snapshot.
func (in *Innings) quiet(cmd Command) (Snapshot, []Event) {
	snap, events, _ := in.Dispatch(cmd)
	return snap, events
}
