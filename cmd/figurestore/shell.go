package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const shellPrompt = "figurestore> "

// shellCmd runs many commands against one in-process session, so the in-memory
// catalog keeps its stock between them.
func (c *cli) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run catalog, cart and checkout commands from stdin in one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())

			fmt.Fprint(out, shellPrompt)
			for scanner.Scan() {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				fields := strings.Fields(scanner.Text())
				switch {
				case len(fields) == 0:
				case fields[0] == "exit" || fields[0] == "quit":
					return nil
				default:
					c.runShellLine(cmd, fields)
				}

				fmt.Fprint(out, shellPrompt)
			}

			return scanner.Err()
		},
	}
}

func (c *cli) runShellLine(parent *cobra.Command, args []string) {
	sub := &cobra.Command{
		Use:           "figurestore",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	sub.AddCommand(c.sessionCommands()...)
	sub.SetArgs(args)
	sub.SetOut(parent.OutOrStdout())
	sub.SetErr(parent.ErrOrStderr())

	if err := sub.ExecuteContext(parent.Context()); err != nil {
		fmt.Fprintf(parent.OutOrStdout(), "error: %v\n", err)
	}
}
