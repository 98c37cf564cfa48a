package game

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

type Mark int8

const Empty Mark = 0

func (m Mark) String() string {
	switch m {
	case First.Mark():
		return "x"
	case Second.Mark():
		return "o"
	}
	return "."
}

// Cell is a board coordinate. It is also used as a step between cells.
type Cell struct {
	Row int
	Col int
}

func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Directions lists the eight neighbouring steps in row-major order.
var Directions = [8]Cell{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Axes are the four line orientations: horizontal, vertical and both diagonals.
var Axes = [4]Cell{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Board holds the state shared by grid games: cells, the last change-set,
// turn, status and scores. While a checkpoint is open every cell write is
// journaled with the mark it replaced, so Rewind undoes exactly the writes
// that were made, in reverse.
type Board struct {
	rows    int
	cols    int
	cells   []Mark
	changes []Cell
	turn    Turn
	status  Status
	scores  Scores

	open    int
	journal []write
}

type write struct {
	index int
	prev  Mark
}

// Checkpoint captures the non-grid fields of a board. The grid itself is
// recovered from the journal.
type Checkpoint struct {
	journal int
	changes []Cell
	turn    Turn
	status  Status
	scores  Scores
}

func NewBoard(rows, cols int) *Board {
	b := &Board{rows: rows, cols: cols}
	b.Reset()
	return b
}

// Reset empties the grid and hands the move to First.
func (b *Board) Reset() {
	b.cells = make([]Mark, b.rows*b.cols)
	b.changes = []Cell{}
	b.turn = First
	b.status = Running
	b.scores = Scores{}
	b.open = 0
	b.journal = b.journal[:0]
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) Turn() Turn         { return b.turn }
func (b *Board) Status() Status     { return b.status }
func (b *Board) Scores() Scores     { return b.scores }
func (b *Board) IsOver() bool       { return b.status != Running }
func (b *Board) Changes() []Cell    { return b.changes }
func (b *Board) SwitchTurn()        { b.turn = b.turn.Opponent() }
func (b *Board) SetStatus(s Status) { b.status = s }
func (b *Board) SetScores(s Scores) { b.scores = s }

func (b *Board) AddScore(t Turn, delta float64) {
	b.scores.Add(t, delta)
}

func (b *Board) Reward(t Turn) float64 {
	return b.scores.Reward(t)
}

func (b *Board) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

func (b *Board) At(c Cell) Mark {
	return b.cells[c.Row*b.cols+c.Col]
}

// Set writes a mark, journaling the previous one when a checkpoint is open.
func (b *Board) Set(c Cell, m Mark) {
	i := c.Row*b.cols + c.Col
	if b.open > 0 {
		b.journal = append(b.journal, write{index: i, prev: b.cells[i]})
	}
	b.cells[i] = m
}

// Put writes a mark and records the cell in the current change-set.
func (b *Board) Put(c Cell, m Mark) {
	b.Set(c, m)
	b.changes = append(b.changes, c)
}

// ClearChanges starts a fresh change-set. The previous slice is left intact
// so that a checkpoint can hand it back.
func (b *Board) ClearChanges() {
	b.changes = []Cell{}
}

// Full reports whether no cell is empty.
func (b *Board) Full() bool {
	for _, m := range b.cells {
		if m == Empty {
			return false
		}
	}
	return true
}

// LineLength is the number of consecutive cells holding the mark at c along
// axis, c included.
func (b *Board) LineLength(c Cell, axis Cell) int {
	m := b.At(c)
	n := 1
	for _, step := range [2]Cell{axis, {-axis.Row, -axis.Col}} {
		for next := c.Add(step); b.Contains(next) && b.At(next) == m; next = next.Add(step) {
			n++
		}
	}
	return n
}

// Settle scores a move at c by the side to move: a line of at least n marks
// through c wins, otherwise a full board is a draw at 0.5 each.
func (b *Board) Settle(c Cell, n int) {
	for _, axis := range Axes {
		if b.LineLength(c, axis) >= n {
			b.scores.Set(b.turn, 1)
			b.status = WonBy(b.turn)
			return
		}
	}
	if b.Full() {
		b.scores = Scores{First: 0.5, Second: 0.5}
		b.status = Draw
	}
}

func (b *Board) Checkpoint() Checkpoint {
	b.open++
	return Checkpoint{
		journal: len(b.journal),
		changes: b.changes,
		turn:    b.turn,
		status:  b.status,
		scores:  b.scores,
	}
}

// Rewind undoes every cell write made since cp and reinstates its fields.
// Checkpoints must be rewound in LIFO order.
func (b *Board) Rewind(cp Checkpoint) {
	for i := len(b.journal) - 1; i >= cp.journal; i-- {
		w := b.journal[i]
		b.cells[w.index] = w.prev
	}
	b.journal = b.journal[:cp.journal]
	b.changes = cp.changes
	b.turn = cp.turn
	b.status = cp.status
	b.scores = cp.scores
	b.open--
}

// Grid returns a copy of the cells, one slice per row.
func (b *Board) Grid() [][]Mark {
	grid := make([][]Mark, b.rows)
	for r := range grid {
		grid[r] = make([]Mark, b.cols)
		copy(grid[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return grid
}

// Hash identifies the position: the grid and the side to move.
func (b *Board) Hash() uint64 {
	buf := make([]byte, len(b.cells)+1)
	for i, m := range b.cells {
		buf[i] = byte(m)
	}
	buf[len(b.cells)] = byte(b.turn)
	return xxhash.Sum64(buf)
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			sb.WriteString(b.cells[r*b.cols+c].String())
		}
		if r < b.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
