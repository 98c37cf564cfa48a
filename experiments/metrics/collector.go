package metrics

import (
	"time"

	"duel/game"
	"duel/searcher"
)

type MoveMetric struct {
	Step   int
	Turn   game.Turn
	Action string // game.PassAction for a pass
	searcher.SearchMetric
}

type GameMetric struct {
	Starting   game.Turn
	Status     game.Status
	Scores     game.Scores
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Passes     int
}

// Collector accumulates the metrics of a single match.
type Collector interface {
	Start(starting game.Turn)
	AddMove(turn game.Turn, action string, search searcher.SearchMetric)
	Moves() []MoveMetric
	Complete(status game.Status, scores game.Scores) GameMetric
}

type collector struct {
	starting  game.Turn
	startTime time.Time
	moves     []MoveMetric
	passes    int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(starting game.Turn) {
	*c = collector{starting: starting, startTime: time.Now(), moves: []MoveMetric{}}
}

func (c *collector) AddMove(turn game.Turn, action string, search searcher.SearchMetric) {
	if action == game.PassAction {
		c.passes++
	}
	c.moves = append(c.moves, MoveMetric{
		Step:         len(c.moves) + 1,
		Turn:         turn,
		Action:       action,
		SearchMetric: search,
	})
}

func (c *collector) Moves() []MoveMetric {
	return c.moves
}

func (c *collector) Complete(status game.Status, scores game.Scores) GameMetric {
	end := time.Now()
	return GameMetric{
		Starting:   c.starting,
		Status:     status,
		Scores:     scores,
		StartTime:  c.startTime,
		EndTime:    end,
		Duration:   end.Sub(c.startTime),
		TotalMoves: len(c.moves),
		Passes:     c.passes,
	}
}
