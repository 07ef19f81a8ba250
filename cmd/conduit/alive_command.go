package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotAlive = errors.New("service is not alive")

func newAliveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "alive",
		Short: "Probe the service liveness endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := ctx.commandChannel()
			if err != nil {
				return err
			}
			defer ch.Close()

			if !ch.IsAlive() {
				fmt.Fprintln(cmd.OutOrStdout(), "false")
				return errNotAlive
			}
			fmt.Fprintln(cmd.OutOrStdout(), "true")
			return nil
		},
	}
}
