package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

var predictFile string

var predictCmd = &cobra.Command{
	Use:   "predict [features-json]",
	Short: "Predict churn for one customer",
	Long: `Sends a customer's feature values to the external churn classifier and
prints the verdict.

Features are given as a JSON object of name to numeric value, either
inline or via --file:

  churnlens predict '{"Total_Day_Minutes": 265.1, "CustServ_Calls": 1}'
  churnlens predict --file customer.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&predictFile, "file", "f", "", "read features from a JSON file")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	features, err := parseFeatures(args, predictFile)
	if err != nil {
		return err
	}

	svc, err := getInsightService()
	if err != nil {
		return err
	}

	prediction, err := svc.Predict(cmd.Context(), features)
	if err != nil {
		return fmt.Errorf("predict failed: %w", err)
	}

	verdict := "will stay"
	if prediction.Churn {
		verdict = "will churn"
	}
	cmd.Printf("Prediction: %s (probability %.3f)\n", verdict, prediction.Probability)
	return nil
}

// parseFeatures reads the feature vector from the inline argument or
// the given file. Exactly one of the two must be provided.
func parseFeatures(args []string, path string) (domain.FeatureVector, error) {
	var data []byte
	switch {
	case len(args) == 1 && path != "":
		return nil, errors.New("give features either inline or via --file, not both")
	case len(args) == 1:
		data = []byte(args[0])
	case path != "":
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading features file: %w", err)
		}
	default:
		return nil, errors.New("no features given; pass a JSON object or --file")
	}

	var features domain.FeatureVector
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("parsing features: %w", err)
	}
	return features, nil
}
