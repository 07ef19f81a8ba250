package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"conduit/internal/framed"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping [payload]",
		Short: "Send one framed message over the IPC socket and print the reply",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := "PING"
			if len(args) == 1 {
				payload = args[0]
			}
			return ctx.withFramedChannel(func(ch *framed.Channel) error {
				reply, err := ch.Send(payload)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			})
		},
	}
}
