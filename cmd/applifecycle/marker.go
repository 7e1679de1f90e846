package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/applifecycle/pkg/state"
)

func newMarkerCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "marker",
		Short: "Print the last lifecycle event recorded in the marker directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.MarkerDir == "" {
				return errors.New("marker-dir is required")
			}

			repo := state.NewFileRepository(c.cfg.MarkerDir)
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			m, err := repo.Load(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if m.Empty() {
				fmt.Fprintf(w, "no marker in %s\n", repo.Path())
				return nil
			}

			status := "interrupted"
			if m.Clean() {
				status = "clean"
			}
			fmt.Fprintf(w, "event:    %s\n", m.Event)
			fmt.Fprintf(w, "context:  %s\n", m.Context)
			fmt.Fprintf(w, "session:  %s\n", m.Session)
			fmt.Fprintf(w, "sequence: %d\n", m.Sequence)
			fmt.Fprintf(w, "at:       %s\n", m.At.Format(time.RFC3339))
			fmt.Fprintf(w, "status:   %s\n", status)
			return nil
		},
	}
}
