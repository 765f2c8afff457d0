package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAction turns a raw action name and payload from a UI or wire message
// into a Command. Run payloads must be integers in [0, MaxRunsPerBall].
func ParseAction(action, value string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "run":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidRuns, value)
		}
		if n < 0 || n > MaxRunsPerBall {
			return Command{}, fmt.Errorf("%w: %d", ErrInvalidRuns, n)
		}
		return Command{Type: CmdRun, Runs: n}, nil
	case "wicket":
		return Command{Type: CmdWicket, Kind: "Wicket"}, nil
	case "lbw":
		return Command{Type: CmdWicket, Kind: "LBW"}, nil
	case "wide":
		return Command{Type: CmdExtra, Extra: ExtraWide}, nil
	case "noball":
		return Command{Type: CmdExtra, Extra: ExtraNoBall}, nil
	case "bye":
		return Command{Type: CmdExtra, Extra: ExtraBye}, nil
	case "legbye":
		return Command{Type: CmdExtra, Extra: ExtraLegBye}, nil
	case "freehit", "freehit-declare":
		return Command{Type: CmdExtra, Extra: ExtraFreeHit}, nil
	case "switch":
		return Command{Type: CmdSwitchStriker}, nil
	case "reset":
		return Command{Type: CmdReset}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnsupportedCommand, action)
	}
}
