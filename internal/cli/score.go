package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"medtrust/internal/platform/config"
	"medtrust/internal/platform/logger"
	"medtrust/internal/platform/postgres"
	"medtrust/internal/platform/redis"
	"medtrust/internal/trust"
	truststore "medtrust/internal/trust/store"
)

var scoreFormat string

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", "text", "Output format (text|json)")
}

var scoreCmd = &cobra.Command{
	Use:   "score <identity>",
	Short: "Print a clinician's trust score from the configured backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

type scoreOutput struct {
	Identity   string `json:"identity"`
	TrustScore int    `json:"trust_score"`
	Backend    string `json:"backend"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openTrustStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	log := logger.NewWithWriter(cmd.ErrOrStderr(), "warn", "text")
	svc := trust.New(store, log, trust.WithDefaultScore(cfg.Policy.DefaultTrustScore))
	out := scoreOutput{
		Identity:   args[0],
		TrustScore: svc.Score(ctx, args[0]),
		Backend:    cfg.Stores.TrustBackend,
	}
	return printOutput(cmd.OutOrStdout(), scoreFormat, out, func(w io.Writer) {
		fmt.Fprintf(w, "%s: %d\n", out.Identity, out.TrustScore)
	})
}

// openTrustStore connects only the backend the score lookup needs. The
// in-memory backend always reports the default score.
func openTrustStore(ctx context.Context, cfg config.Config) (trust.Store, func(), error) {
	switch cfg.Stores.TrustBackend {
	case "redis":
		rdb, err := redis.New(ctx, cfg.Stores.Redis)
		if err != nil {
			return nil, nil, err
		}
		return truststore.NewRedisStore(rdb.Client), func() { _ = rdb.Close() }, nil
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Stores.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return truststore.NewPostgresStore(db), func() { _ = db.Close() }, nil
	default:
		return truststore.NewInMemoryStore(), func() {}, nil
	}
}
