package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"conduit/internal/framed"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report reachability of both channel destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			restAlive := false
			if ch, err := ctx.commandChannel(); err == nil {
				restAlive = ch.IsAlive()
				ch.Close()
			}

			socketAlive := false
			socket := framed.New(cfg.Socket.Port, ctx.ensureLogger())
			if socket.IsConnected() {
				socketAlive = true
			}
			socket.Close()

			rows := [][]string{
				{"command", fmt.Sprintf("localhost:%d", cfg.Service.Port), yesNo(restAlive)},
				{"framed", fmt.Sprintf("localhost:%d", cfg.Socket.Port), yesNo(socketAlive)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Channel", "Destination", "Reachable"},
				rows,
			))
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
