package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect <text...>",
	Short: "List the known insults occurring in a text",
	Long: `Check the text (all arguments joined by a space) against the cached list,
scraping first when the cache is empty. Matching is case sensitive substring
containment; matches are printed in list order, one per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		for _, insult := range client.Detect(cmd.Context(), strings.Join(args, " ")) {
			fmt.Fprintln(cmd.OutOrStdout(), insult)
		}
		return nil
	},
}
