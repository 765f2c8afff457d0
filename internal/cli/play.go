package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
	"github.com/DoyleJ11/innings-scorer/internal/render"
)

const playHelp = `actions: run <n> | wide | noball | bye | legbye | freehit | wicket | lbw | switch | reset | quit`

func NewPlayCommand(root *RootOptions) *cobra.Command {
	var openerA, openerB string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Score an innings interactively from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = syncLogger(log) }()

			openers := cfg.Openers()
			if openerA != "" {
				openers.A = openerA
			}
			if openerB != "" {
				openers.B = openerB
			}
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), openers, root.Format == "json")
		},
	}

	cmd.Flags().StringVar(&openerA, "opener-a", "", "opener in slot A")
	cmd.Flags().StringVar(&openerB, "opener-b", "", "opener in slot B")
	return cmd
}

// prompter reads incoming batter names from the same input as the actions.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) NextBatter(suggestion string) string {
	fmt.Fprintf(p.out, "New batter name [%s]: ", suggestion)
	if !p.in.Scan() {
		return ""
	}
	return p.in.Text()
}

func play(in io.Reader, out io.Writer, openers engine.Lineup, asJSON bool) error {
	scanner := bufio.NewScanner(in)
	innings := engine.NewInnings(openers, &prompter{in: scanner, out: out})

	if err := show(out, innings.Snapshot(), nil, asJSON); err != nil {
		return err
	}
	fmt.Fprintln(out, playHelp)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		action, value, _ := strings.Cut(line, " ")
		switch action {
		case "quit", "exit":
			return nil
		case "help", "?":
			fmt.Fprintln(out, playHelp)
			continue
		}

		cmd, err := engine.ParseAction(action, value)
		if err != nil {
			fmt.Fprintf(out, "ignored: %v\n", err)
			continue
		}
		snap, events, err := innings.Dispatch(cmd)
		if errors.Is(err, engine.ErrInningsOver) {
			fmt.Fprintln(out, "innings over; only reset is accepted")
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "ignored: %v\n", err)
			continue
		}
		if err := show(out, snap, events, asJSON); err != nil {
			return err
		}
	}
}

func show(out io.Writer, snap engine.Snapshot, events []engine.Event, asJSON bool) error {
	if asJSON {
		return writeJSON(out, struct {
			State  engine.Snapshot `json:"state"`
			Events []engine.Event  `json:"events,omitempty"`
		}{snap, events})
	}
	for _, e := range events {
		fmt.Fprintln(out, render.Notice(e))
	}
	board, err := render.Board(snap)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, board)
	return nil
}
