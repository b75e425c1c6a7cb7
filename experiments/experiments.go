package experiments

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"connect6/agent"
	"connect6/communication/client"
	"connect6/config"
	"connect6/experiments/metrics"
	"connect6/game"
	"connect6/searcher"
)

// Summary counts the outcomes of a self-play batch.
type Summary struct {
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
	Failed    int
	Dir       string // where records were written, empty if not written
}

// NewFactory builds the per-game policy factory described by cfg. When both
// colours use the same policy, one instance plays both sides so the search
// tree is shared across the whole game.
func NewFactory(cfg config.Config) agent.PolicyFactory {
	var remote searcher.Evaluator
	if cfg.Evaluator.Kind == config.RemoteEvaluator {
		remote = client.NewClientEvaluator(cfg.Evaluator.URL, cfg.Evaluator.Timeout)
	}

	build := func(name string, seed uint64) searcher.Policy {
		options := []searcher.Option{searcher.WithSeed(seed)}
		if cfg.Metrics {
			options = append(options, searcher.WithMetrics())
		}

		switch name {
		case config.AlphaZero:
			evaluator := remote
			if evaluator == nil {
				evaluator = searcher.NewRandomEvaluator(seed)
			}
			options = append(options, searcher.WithHyperParameter(cfg.Hyper), searcher.WithEvaluator(evaluator))
			return searcher.NewAlphaZero(options...)
		case config.UCT:
			options = append(options, searcher.WithIterations(cfg.UCT.Iterations), searcher.WithExploration(cfg.UCT.CSquared))
			return searcher.NewUCT(options...)
		case config.Random:
			return searcher.NewRandomPolicy(seed)
		default:
			panic("unknown policy " + name)
		}
	}

	return func(id int) searcher.Policy {
		seed := cfg.Seed + uint64(id)
		if cfg.Black == cfg.White {
			return build(cfg.Black, seed)
		}
		return searcher.NewMultiPolicy(build(cfg.Black, seed), build(cfg.White, seed))
	}
}

// RunSelfPlay plays cfg.Games games, logs the outcome ratio and, when
// cfg.Output is set, stores the records as CSV.
func RunSelfPlay(ctx context.Context, cfg config.Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("starting self-play of %d games with black=%s white=%s on %d workers...", cfg.Games, cfg.Black, cfg.White, cfg.Workers)

	async := agent.NewAsync(NewFactory(cfg), agent.WithWorkers(cfg.Workers))
	results, runErr := async.Run(ctx, cfg.Games)

	summary := summarize(cfg.Games, results)
	log.Info().
		Int("black", summary.BlackWins).
		Int("white", summary.WhiteWins).
		Int("draws", summary.Draws).
		Int("failed", summary.Failed).
		Msgf("completed self-play, white win ratio %.3f", ratio(summary.WhiteWins, len(results)))

	if cfg.Output != "" && len(results) > 0 {
		dir, err := writeRecords(cfg, results)
		if err != nil {
			return summary, errors.Wrap(err, "failed to store records")
		}
		summary.Dir = dir
		log.Info().Msgf("stored records in %s", dir)
	}
	return summary, runErr
}

func summarize(games int, results []agent.PlayResult) Summary {
	summary := Summary{Games: games, Failed: games - len(results)}
	for _, result := range results {
		switch result.Winner {
		case game.Black:
			summary.BlackWins++
		case game.White:
			summary.WhiteWins++
		default:
			summary.Draws++
		}
	}
	return summary
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func agentConfig(cfg config.Config, id int, color game.Player, policy string) metrics.AgentConfig {
	ac := metrics.AgentConfig{ID: id, Color: int(color), Policy: policy}
	switch policy {
	case config.AlphaZero:
		ac.NumSimulation = cfg.Hyper.NumSimulation
		ac.Epsilon = cfg.Hyper.Epsilon
		ac.CPuct = cfg.Hyper.CPuct
		ac.Temperature = cfg.Hyper.Temperature
	case config.UCT:
		ac.Iterations = cfg.UCT.Iterations
	}
	return ac
}

func writeRecords(cfg config.Config, results []agent.PlayResult) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output)
	if err != nil {
		return "", err
	}

	configs := []metrics.AgentConfig{
		agentConfig(cfg, 1, game.Black, cfg.Black),
		agentConfig(cfg, 2, game.White, cfg.White),
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	pathRecords := []metrics.PathRecord{}
	for i, result := range results {
		id := i + 1
		gameRecords = append(gameRecords, metrics.GameRecord{ID: id, GameMetric: result.Metric})
		for _, mm := range result.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
		}
		for step, path := range result.Path {
			pathRecords = append(pathRecords, metrics.PathRecord{
				Game:   id,
				Step:   step + 1,
				Turn:   int(path.Turn),
				Row:    path.Pos.Row,
				Col:    path.Pos.Col,
				Winner: int(result.Winner),
				Board:  path.Board,
			})
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	if err := writer.WritePathRecords(pathRecords); err != nil {
		return "", err
	}
	return writer.Dir(), nil
}
