package experiments

import (
	"time"

	"duel/experiments/metrics"
	"duel/game"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Throughput is the search effort of one agent over a tournament. Agents
// that do not search are left out.
type Throughput struct {
	Agent           string  `yaml:"agent"`
	Moves           int     `yaml:"moves"`
	MeanNodes       float64 `yaml:"mean_nodes"`
	MeanLeaves      float64 `yaml:"mean_leaves"`
	MeanCutoffs     float64 `yaml:"mean_cutoffs"`
	MeanMillis      float64 `yaml:"mean_millis"`
	LeavesPerSecond float64 `yaml:"leaves_per_second"`
}

func MeasureThroughput(r Report) []Throughput {
	seats := lo.SliceToMap(r.Games, func(g metrics.GameRecord) (int, [2]int) {
		return g.ID, [2]int{g.Agent1, g.Agent2}
	})
	byAgent := lo.GroupBy(r.Moves, func(m metrics.MoveRecord) int {
		if m.Turn == game.First {
			return seats[m.Game][0]
		}
		return seats[m.Game][1]
	})

	out := []Throughput{}
	for _, c := range r.Configs {
		moves := lo.Filter(byAgent[c.ID], func(m metrics.MoveRecord, _ int) bool {
			return m.Kind != ""
		})
		if len(moves) == 0 {
			continue
		}
		out = append(out, measure(c, moves))
	}
	return out
}

func measure(c metrics.AgentConfig, moves []metrics.MoveRecord) Throughput {
	column := func(f func(metrics.MoveRecord) float64) []float64 {
		return lo.Map(moves, func(m metrics.MoveRecord, _ int) float64 { return f(m) })
	}
	leaves := column(func(m metrics.MoveRecord) float64 { return float64(m.Leaves) })
	millis := column(func(m metrics.MoveRecord) float64 {
		return float64(m.Duration) / float64(time.Millisecond)
	})

	t := Throughput{
		Agent:       c.String(),
		Moves:       len(moves),
		MeanNodes:   stat.Mean(column(func(m metrics.MoveRecord) float64 { return float64(m.Nodes) }), nil),
		MeanLeaves:  stat.Mean(leaves, nil),
		MeanCutoffs: stat.Mean(column(func(m metrics.MoveRecord) float64 { return float64(m.Cutoffs) }), nil),
		MeanMillis:  stat.Mean(millis, nil),
	}
	if total := lo.Sum(millis); total > 0 {
		t.LeavesPerSecond = lo.Sum(leaves) / total * 1000
	}
	return t
}
