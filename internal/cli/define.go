package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var defineCmd = &cobra.Command{
	Use:   "define <term>",
	Short: "Print the definition of one insult",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), client.Define(cmd.Context(), args[0]))
		return nil
	},
}
