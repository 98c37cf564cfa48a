package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tournaments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS agents (
	tournament    INTEGER NOT NULL REFERENCES tournaments(id),
	id            INTEGER NOT NULL,
	kind          TEXT NOT NULL,
	depth         INTEGER NOT NULL,
	defence_depth INTEGER NOT NULL,
	PRIMARY KEY (tournament, id)
);
CREATE TABLE IF NOT EXISTS games (
	tournament   INTEGER NOT NULL REFERENCES tournaments(id),
	id           INTEGER NOT NULL,
	game         TEXT NOT NULL,
	agent1       INTEGER NOT NULL,
	agent2       INTEGER NOT NULL,
	status       TEXT NOT NULL,
	first_score  REAL NOT NULL,
	second_score REAL NOT NULL,
	moves        INTEGER NOT NULL,
	passes       INTEGER NOT NULL,
	duration_ns  INTEGER NOT NULL,
	hash         TEXT NOT NULL,
	PRIMARY KEY (tournament, id)
);
CREATE TABLE IF NOT EXISTS moves (
	tournament  INTEGER NOT NULL REFERENCES tournaments(id),
	game        INTEGER NOT NULL,
	step        INTEGER NOT NULL,
	turn        TEXT NOT NULL,
	action      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	depth       INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	nodes       INTEGER NOT NULL,
	leaves      INTEGER NOT NULL,
	cutoffs     INTEGER NOT NULL,
	PRIMARY KEY (tournament, game, step)
);
`

// Store keeps tournament records in a SQLite database. Every tournament gets
// its own id, so one database can collect many runs.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTournament writes every record of a tournament in one transaction and
// returns the tournament id.
func (s *Store) SaveTournament(ctx context.Context, name string, configs []AgentConfig, games []GameRecord, moves []MoveRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tournaments (name, created_at) VALUES (?, ?)`,
		name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to insert tournament: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("failed to read tournament id: %w", err)
	}

	for _, c := range configs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO agents (tournament, id, kind, depth, defence_depth) VALUES (?, ?, ?, ?, ?)`,
			id, c.ID, string(c.Kind), c.Depth, c.DefenceDepth)
		if err != nil {
			return 0, fmt.Errorf("failed to insert agent config %d: %w", c.ID, err)
		}
	}

	for _, g := range games {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO games (tournament, id, game, agent1, agent2, status, first_score, second_score, moves, passes, duration_ns, hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, g.ID, g.Game, g.Agent1, g.Agent2, g.Status.String(), g.Scores.First, g.Scores.Second,
			g.TotalMoves, g.Passes, g.Duration.Nanoseconds(), fmt.Sprintf("%x", g.Hash))
		if err != nil {
			return 0, fmt.Errorf("failed to insert game record %d: %w", g.ID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO moves (tournament, game, step, turn, action, kind, depth, duration_ns, nodes, leaves, cutoffs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare move insert: %w", err)
	}
	defer stmt.Close()
	for _, m := range moves {
		_, err = stmt.ExecContext(ctx,
			id, m.Game, m.Step, m.Turn.String(), m.Action, string(m.Kind), m.Depth,
			m.Duration.Nanoseconds(), m.Nodes, m.Leaves, m.Cutoffs)
		if err != nil {
			return 0, fmt.Errorf("failed to insert move record %d/%d: %w", m.Game, m.Step, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tournament: %w", err)
	}
	return id, nil
}

// GameCount returns how many games a stored tournament holds.
func (s *Store) GameCount(ctx context.Context, tournament int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE tournament = ?`, tournament).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}

// Outcomes counts stored games by status for one tournament.
func (s *Store) Outcomes(ctx context.Context, tournament int64) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM games WHERE tournament = ? GROUP BY status`, tournament)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
