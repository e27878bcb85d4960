// Command probe runs one dashboard operation against the configured upstream
// and prints the response envelope.
//
// Usage:
//
//	tenis-probe live
//	tenis-probe history "Rafael Nadal"
//	tenis-probe h2h "Rafael Nadal" "Novak Djokovic"
//	tenis-probe stats 12345 --timeout 5s
//	tenis-probe news "Rafael Nadal" --news-source google_rss
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/aggregate"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/config"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/logging"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/upstream"
)

var logger = logging.New(os.Stderr, "info", "text")

// errFailureEnvelope makes the process exit non-zero after a failure
// envelope has already been printed.
var errFailureEnvelope = errors.New("operation returned a failure envelope")

type globalFlags struct {
	provider   string
	newsSource string
	timeout    time.Duration
	verbose    bool
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var flags globalFlags
	root := &cobra.Command{
		Use:           "tenis-probe",
		Short:         "Run tennis dashboard operations from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.provider, "provider", "", "Override TENNIS_PROVIDER (tennisapi5, livetennis)")
	root.PersistentFlags().StringVar(&flags.newsSource, "news-source", "", "Override NEWS_SOURCE (upstream, google_rss)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "Override the upstream timeout")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		opCmd(&flags, "live", "Live matches", 0, func(ctx context.Context, a *aggregate.Aggregator, _ []string) aggregate.Envelope {
			return a.LiveMatches(ctx)
		}),
		opCmd(&flags, "history <player>", "Player match history", 1, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.PlayerHistory(ctx, args[0])
		}),
		opCmd(&flags, "h2h <player1> <player2>", "Head-to-head between two players", 2, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.HeadToHead(ctx, args[0], args[1])
		}),
		opCmd(&flags, "match-h2h <match-id>", "Head-to-head of a match's players", 1, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.MatchHeadToHead(ctx, args[0])
		}),
		opCmd(&flags, "details <match-id>", "Match details", 1, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.MatchDetails(ctx, args[0])
		}),
		opCmd(&flags, "stats <match-id>", "Match statistics", 1, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.MatchStats(ctx, args[0])
		}),
		opCmd(&flags, "match-history <match-id>", "Match point-by-point history", 1, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.MatchHistory(ctx, args[0])
		}),
		opCmd(&flags, "news <player>", "Player news", 1, func(ctx context.Context, a *aggregate.Aggregator, args []string) aggregate.Envelope {
			return a.PlayerNews(ctx, args[0])
		}),
	)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFailureEnvelope) {
			logger.Error("Command failed", "error", err)
		}
		os.Exit(1)
	}
}

type operation func(ctx context.Context, agg *aggregate.Aggregator, args []string) aggregate.Envelope

func opCmd(flags *globalFlags, use, short string, nargs int, op operation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, func(ctx context.Context, agg *aggregate.Aggregator) aggregate.Envelope {
				return op(ctx, agg, args)
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared runner
// --------------------------------------------------------------------------

func run(flags *globalFlags, fn func(ctx context.Context, agg *aggregate.Aggregator) aggregate.Envelope) error {
	if flags.provider != "" {
		os.Setenv("TENNIS_PROVIDER", flags.provider)
	}
	if flags.newsSource != "" {
		os.Setenv("NEWS_SOURCE", flags.newsSource)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.timeout > 0 {
		cfg.UpstreamTimeout = flags.timeout
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = slog.LevelDebug.String()
	}
	logger = logging.New(os.Stderr, level, "text")

	up, err := upstream.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	env := fn(ctx, aggregate.New(up, aggregate.Options{Logger: logger}))
	logger.Debug("Operation finished", "provider", up.Name(), "duration", time.Since(start).Round(time.Millisecond))

	out, err := sonic.ConfigDefault.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	fmt.Println(string(out))

	if !env.OK() {
		return errFailureEnvelope
	}
	return nil
}
