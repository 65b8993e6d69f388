package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"medtrust/internal/justification"
)

var (
	precheckModelDir string
	precheckFormat   string
)

func init() {
	rootCmd.AddCommand(precheckCmd)
	precheckCmd.Flags().StringVar(&precheckModelDir, "model-dir", "", "Model directory (overrides MODEL_DIR)")
	precheckCmd.Flags().StringVarP(&precheckFormat, "format", "f", "text", "Output format (text|json)")
}

var precheckCmd = &cobra.Command{
	Use:   "precheck <justification>",
	Short: "Show the typing-time feedback a justification would get",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPrecheck,
}

type precheckOutput struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

func runPrecheck(cmd *cobra.Command, args []string) error {
	classifier, err := newCLIClassifier(cmd, precheckModelDir)
	if err != nil {
		return err
	}
	fb := justification.Assess(classifier.Classify(context.Background(), strings.Join(args, " ")))
	out := precheckOutput{
		Status:   string(fb.Strength),
		Message:  fb.Message,
		Score:    fb.Confidence,
		Category: string(fb.Category),
	}
	return printOutput(cmd.OutOrStdout(), precheckFormat, out, func(w io.Writer) {
		fmt.Fprintf(w, "%s (%.2f): %s\n", out.Status, out.Score, out.Message)
	})
}
