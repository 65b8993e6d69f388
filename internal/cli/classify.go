package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"medtrust/internal/justification"
	"medtrust/internal/platform/config"
	"medtrust/internal/platform/logger"
)

var (
	classifyModelDir string
	classifyFormat   string
)

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyModelDir, "model-dir", "", "Model directory (overrides MODEL_DIR)")
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "text", "Output format (text|json)")
}

var classifyCmd = &cobra.Command{
	Use:   "classify <justification>",
	Short: "Classify a justification with the configured models",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

type classifyOutput struct {
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Verdict    string  `json:"verdict"`
	Source     string  `json:"source"`
}

func newCLIClassifier(cmd *cobra.Command, modelDir string) (*justification.Classifier, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if modelDir != "" {
		cfg.Models.Dir = modelDir
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), "warn", "text")
	return loadClassifier(cfg, log, nil)
}

func runClassify(cmd *cobra.Command, args []string) error {
	classifier, err := newCLIClassifier(cmd, classifyModelDir)
	if err != nil {
		return err
	}
	text := strings.Join(args, " ")
	c := classifier.Classify(context.Background(), text)
	out := classifyOutput{
		Text:       text,
		Category:   string(c.Category),
		Confidence: c.Confidence,
		Verdict:    string(c.Verdict),
		Source:     string(c.Source),
	}
	return printOutput(cmd.OutOrStdout(), classifyFormat, out, func(w io.Writer) {
		fmt.Fprintf(w, "category:   %s\n", out.Category)
		fmt.Fprintf(w, "confidence: %.2f\n", out.Confidence)
		fmt.Fprintf(w, "verdict:    %s\n", out.Verdict)
		fmt.Fprintf(w, "source:     %s\n", out.Source)
	})
}

func printOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		text(w)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
