package experiments

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"duel/agent"
	"duel/engine"
	"duel/experiments/metrics"
	"duel/gamemaster"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTooFewAgents = errors.New("a tournament needs at least two agents")
	ErrNoGames      = errors.New("a tournament needs at least one game per pairing")
)

// Tournament plays every ordered pairing of distinct agents, so that each
// agent meets every other from both seats.
type Tournament struct {
	Game        string
	Agents      []agent.Config
	Games       int // per pairing
	Concurrency int // matches in flight, defaults to GOMAXPROCS
	Seed        uint64
	MaxMoves    int
}

type Report struct {
	Game    string
	Configs []metrics.AgentConfig
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

type Pairing struct {
	First  metrics.AgentConfig
	Second metrics.AgentConfig
}

func Pairings(configs []metrics.AgentConfig) []Pairing {
	pairings := []Pairing{}
	for _, first := range configs {
		for _, second := range configs {
			if first.ID != second.ID {
				pairings = append(pairings, Pairing{First: first, Second: second})
			}
		}
	}
	return pairings
}

type match struct {
	id int
	Pairing
}

// Run plays the tournament. Matches run concurrently and the first failure
// cancels the rest. A zero Seed gives every agent an entropy seeded source;
// otherwise match i seeds its agents from Seed+2i.
func Run(ctx context.Context, t Tournament) (Report, error) {
	name, err := gamemaster.ParseGame(t.Game)
	if err != nil {
		return Report{}, err
	}
	if len(t.Agents) < 2 {
		return Report{}, fmt.Errorf("%w: got %d", ErrTooFewAgents, len(t.Agents))
	}
	if t.Games < 1 {
		return Report{}, fmt.Errorf("%w: got %d", ErrNoGames, t.Games)
	}
	limit := t.Concurrency
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}

	configs := lo.Map(t.Agents, func(c agent.Config, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: i + 1, Config: c}
	})
	matches := []match{}
	for _, p := range Pairings(configs) {
		for i := 0; i < t.Games; i++ {
			matches = append(matches, match{id: len(matches) + 1, Pairing: p})
		}
	}

	log.Info().Msgf("starting %s tournament of %d matches between %d agents...", name, len(matches), len(configs))

	results := make([]engine.Result, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, m := range matches {
		g.Go(func() error {
			opts := []gamemaster.Option{gamemaster.WithLogger(log.With().Int("match", m.id).Logger())}
			if t.Seed != 0 {
				opts = append(opts, gamemaster.WithSeed(t.Seed+2*uint64(i)))
			}
			if t.MaxMoves > 0 {
				opts = append(opts, gamemaster.WithMaxMoves(t.MaxMoves))
			}

			runner, err := gamemaster.NewMatch(name, m.First.Config, m.Second.Config, opts...)
			if err != nil {
				return fmt.Errorf("failed to set up match %d: %w", m.id, err)
			}

			log.Debug().Msgf("starting match %d of %d between agent1=%v and agent2=%v...", m.id, len(matches), m.First, m.Second)
			res, err := runner.Run(ctx)
			if err != nil {
				return fmt.Errorf("match %d between agent1=%v and agent2=%v failed: %w", m.id, m.First, m.Second, err)
			}
			results[i] = res
			log.Info().Msgf("completed match %d of %d: %v", m.id, len(matches), res.Game.Status)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Game: name, Configs: configs, Games: []metrics.GameRecord{}, Moves: []metrics.MoveRecord{}}
	for i, m := range matches {
		report.Games = append(report.Games, metrics.GameRecord{
			ID:         m.id,
			Game:       name,
			Agent1:     m.First.ID,
			Agent2:     m.Second.ID,
			Hash:       results[i].Hash,
			GameMetric: results[i].Game,
		})
		for _, mm := range results[i].Moves {
			report.Moves = append(report.Moves, metrics.MoveRecord{
				Game:       m.id,
				MoveMetric: mm,
			})
		}
	}

	log.Info().Msgf("completed %s tournament", name)
	return report, nil
}

// Save stores the report as CSV files and a summary under a timestamped
// directory of baseDir, and into the SQLite database when one is given. It
// returns the directory written to.
func Save(ctx context.Context, report Report, baseDir, database string) (string, error) {
	writer, err := metrics.NewWriter(baseDir, report.Game)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(report.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := Summarize(report).WriteYAML(filepath.Join(writer.Dir(), "summary.yaml")); err != nil {
		return "", err
	}
	log.Info().Msg("stored summary")

	if database == "" {
		return writer.Dir(), nil
	}
	store, err := metrics.OpenStore(database)
	if err != nil {
		return "", err
	}
	defer store.Close()
	id, err := store.SaveTournament(ctx, report.Game, report.Configs, report.Games, report.Moves)
	if err != nil {
		return "", err
	}
	log.Info().Msgf("stored tournament %d in %s", id, database)

	return writer.Dir(), nil
}
