package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	explainFile string
	explainJSON bool
)

var explainCmd = &cobra.Command{
	Use:   "explain [features-json]",
	Short: "Explain a churn prediction",
	Long: `Sends a customer's feature values to the external churn classifier and
prints the feature contributions, strongest first. Positive
contributions push towards churn, negative away from it.

Features are given the same way as for predict:

  churnlens explain '{"Total_Day_Minutes": 265.1, "CustServ_Calls": 1}'
  churnlens explain --file customer.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainFile, "file", "f", "", "read features from a JSON file")
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "output contributions as JSON")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	features, err := parseFeatures(args, explainFile)
	if err != nil {
		return err
	}

	svc, err := getInsightService()
	if err != nil {
		return err
	}

	contributions, err := svc.Explain(cmd.Context(), features)
	if err != nil {
		return fmt.Errorf("explain failed: %w", err)
	}

	if explainJSON {
		data, err := json.MarshalIndent(contributions, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding contributions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(contributions) == 0 {
		cmd.Println("No contributions returned.")
		return nil
	}

	cmd.Println("Feature contributions:")
	cmd.Println()
	for _, c := range contributions {
		direction := "towards churn"
		if c.Contribution < 0 {
			direction = "away from churn"
		}
		cmd.Printf("  %-24s %+.4f  (%s, value %g)\n", c.Feature, c.Contribution, direction, c.Value)
	}
	return nil
}
