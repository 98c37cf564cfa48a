// meta/meta.go
package meta

// DefaultDepth is the search depth used when an agent string gives none.
const DefaultDepth = 4

// DefaultDefenceDepth is how far the defensive searcher looks at the
// opponent's replies when it is losing.
const DefaultDefenceDepth = 1

// MaxMoves bounds a single match. No supported game gets close to it.
const MaxMoves = 500

// EnvPrefix prefixes configuration keys read from the environment.
const EnvPrefix = "DUEL"
