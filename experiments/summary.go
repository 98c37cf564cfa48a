package experiments

import (
	"fmt"
	"io"
	"os"

	"duel/experiments/metrics"
	"duel/game"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// PairingSummary describes the games of one seat order. Rewards are those of
// the first seat.
type PairingSummary struct {
	First          string  `yaml:"first"`
	Second         string  `yaml:"second"`
	Games          int     `yaml:"games"`
	FirstWins      int     `yaml:"first_wins"`
	SecondWins     int     `yaml:"second_wins"`
	Draws          int     `yaml:"draws"`
	MeanReward     float64 `yaml:"mean_reward"`
	StdDevReward   float64 `yaml:"stddev_reward"`
	MeanMoves      float64 `yaml:"mean_moves"`
	DistinctFinals int     `yaml:"distinct_final_positions"`
}

type Summary struct {
	Game       string           `yaml:"game"`
	Games      int              `yaml:"games"`
	Pairings   []PairingSummary `yaml:"pairings"`
	Throughput []Throughput     `yaml:"throughput"`
}

func Summarize(r Report) Summary {
	byPairing := lo.GroupBy(r.Games, func(g metrics.GameRecord) [2]int {
		return [2]int{g.Agent1, g.Agent2}
	})

	s := Summary{Game: r.Game, Games: len(r.Games), Pairings: []PairingSummary{}}
	for _, p := range Pairings(r.Configs) {
		games, ok := byPairing[[2]int{p.First.ID, p.Second.ID}]
		if !ok {
			continue
		}
		s.Pairings = append(s.Pairings, summarizePairing(p, games))
	}
	s.Throughput = MeasureThroughput(r)
	return s
}

func summarizePairing(p Pairing, games []metrics.GameRecord) PairingSummary {
	ps := PairingSummary{First: p.First.String(), Second: p.Second.String(), Games: len(games)}

	rewards := make([]float64, len(games))
	moves := make([]float64, len(games))
	for i, g := range games {
		switch g.Status {
		case game.FirstWon:
			ps.FirstWins++
		case game.SecondWon:
			ps.SecondWins++
		case game.Draw:
			ps.Draws++
		}
		rewards[i] = g.Scores.Reward(game.First)
		moves[i] = float64(g.TotalMoves)
	}

	ps.MeanReward, ps.StdDevReward = stat.MeanStdDev(rewards, nil)
	if len(games) < 2 {
		ps.StdDevReward = 0
	}
	ps.MeanMoves = stat.Mean(moves, nil)
	ps.DistinctFinals = len(lo.Uniq(lo.Map(games, func(g metrics.GameRecord, _ int) uint64 {
		return g.Hash
	})))
	return ps
}

func (s Summary) WriteYAML(path string) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// PrintLengths draws a histogram of game lengths in moves.
func PrintLengths(w io.Writer, games []metrics.GameRecord) error {
	lengths := lo.Map(games, func(g metrics.GameRecord, _ int) float64 {
		return float64(g.TotalMoves)
	})
	distinct := len(lo.Uniq(lengths))
	switch distinct {
	case 0:
		_, err := fmt.Fprintln(w, "no games played")
		return err
	case 1:
		_, err := fmt.Fprintf(w, "all %d games lasted %v moves\n", len(lengths), lengths[0])
		return err
	}

	if _, err := fmt.Fprintf(w, "game length in moves over %d games:\n", len(lengths)); err != nil {
		return err
	}
	hist := histogram.Hist(min(distinct, 15), lengths)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
