package main

import (
	"encoding/json"
	"fmt"

	"biddashboard/internal/document"
	"biddashboard/internal/filter"

	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print synthetic bid records as JSON or as text documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetInt("count")
			if count < 0 {
				return fmt.Errorf("count must not be negative")
			}
			asDocument, _ := cmd.Flags().GetBool("document")
			var criteria filter.Criteria
			criteria.Outcome, _ = cmd.Flags().GetString("type")
			criteria.Category, _ = cmd.Flags().GetString("category")
			criteria.Keyword, _ = cmd.Flags().GetString("keyword")

			records := filter.Apply(newSynthesizer(cfg).Generate(count), criteria)

			out := cmd.OutOrStdout()
			if asDocument {
				for i, rec := range records {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "=== %s ===\n%s\n", document.FileName(rec), document.Render(rec))
				}
				return nil
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}

	cmd.Flags().IntP("count", "n", 10, "Number of records")
	cmd.Flags().BoolP("document", "d", false, "Render text documents instead of JSON")
	cmd.Flags().String("type", "", "Outcome filter (OPEN, AWARDED)")
	cmd.Flags().String("category", "", "Category filter (TELECOM, ELECTRICAL, FIRE_SAFETY)")
	cmd.Flags().String("keyword", "", "Keyword filter")

	return cmd
}
