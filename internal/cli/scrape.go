package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var jsonOutput bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the insult category and refresh the cache",
	Long: `Walk every page of the category, overwrite the cache with the result and
print the insults, one per line. When the walk yields nothing the previous
cache content is printed instead (it has just been overwritten with []).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		insults := client.Scrape(cmd.Context())
		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			return enc.Encode(insults)
		}
		for _, insult := range insults {
			fmt.Fprintln(cmd.OutOrStdout(), insult)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the list as a JSON array")
}
