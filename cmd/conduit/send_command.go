package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send a command and wait for the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := ctx.commandChannel()
			if err != nil {
				return err
			}
			defer ch.Close()

			reply := ch.SendAndWait(args[0])
			if reply == "" {
				// Empty is ambiguous: genuine empty body or a logged failure.
				fmt.Fprintln(cmd.OutOrStdout(), "(empty reply)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

func newFireCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fire <message>",
		Short: "Send a command without waiting for the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := ctx.commandChannel()
			if err != nil {
				return err
			}
			defer ch.Close()

			ch.SendFireAndForget(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "dispatched")
			return nil
		},
	}
}
