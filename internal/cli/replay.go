package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/innings-scorer/internal/render"
	"github.com/DoyleJ11/innings-scorer/internal/script"
)

func NewReplayCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted innings and print the final scoreboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			res, err := s.Run()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if root.Format == "json" {
				return writeJSON(out, res)
			}

			for _, e := range res.Events {
				fmt.Fprintln(out, render.Notice(e))
			}
			board, err := render.Board(res.Final)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, board)
			for _, r := range res.Rejected {
				fmt.Fprintf(out, "rejected delivery %s\n", r)
			}
			return nil
		},
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
