package agent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"duel/game"
	"duel/meta"
	"duel/searcher"
)

// RandomKind selects the random agent. Every other kind is a searcher.
const RandomKind searcher.Kind = "random"

var ErrInvalidConfig = errors.New("invalid agent config")

// Config describes an agent as written on the command line, e.g. "random",
// "alphabeta:6" or "defensive:4:2". A zero DefenceDepth keeps the default.
type Config struct {
	Kind         searcher.Kind `yaml:"kind"`
	Depth        int           `yaml:"depth,omitempty"`
	DefenceDepth int           `yaml:"defence_depth,omitempty"`
}

func ParseConfig(s string) (Config, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if strings.EqualFold(parts[0], string(RandomKind)) {
		if len(parts) > 1 {
			return Config{}, fmt.Errorf("%w: random agent takes no depth: %q", ErrInvalidConfig, s)
		}
		return Config{Kind: RandomKind}, nil
	}

	kind, err := searcher.ParseKind(parts[0])
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg := Config{Kind: kind, Depth: meta.DefaultDepth}

	if len(parts) > 3 || (len(parts) == 3 && kind != searcher.Defensive) {
		return Config{}, fmt.Errorf("%w: too many fields: %q", ErrInvalidConfig, s)
	}
	if len(parts) > 1 {
		if cfg.Depth, err = strconv.Atoi(parts[1]); err != nil {
			return Config{}, fmt.Errorf("%w: depth of %q: %w", ErrInvalidConfig, s, err)
		}
	}
	if len(parts) > 2 {
		if cfg.DefenceDepth, err = strconv.Atoi(parts[2]); err != nil {
			return Config{}, fmt.Errorf("%w: defence depth of %q: %w", ErrInvalidConfig, s, err)
		}
		if cfg.DefenceDepth <= 0 {
			return Config{}, fmt.Errorf("%w: defence depth of %q must be positive", ErrInvalidConfig, s)
		}
	}
	return cfg, nil
}

func ParseConfigs(specs []string) ([]Config, error) {
	configs := make([]Config, 0, len(specs))
	for _, s := range specs {
		cfg, err := ParseConfig(s)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (c Config) String() string {
	switch {
	case c.Kind == RandomKind:
		return string(c.Kind)
	case c.DefenceDepth > 0:
		return fmt.Sprintf("%s:%d:%d", c.Kind, c.Depth, c.DefenceDepth)
	default:
		return fmt.Sprintf("%s:%d", c.Kind, c.Depth)
	}
}

// Build constructs the agent playing turn. Searchers collect metrics and
// share rng with the random fallback.
func Build[A comparable](c Config, turn game.Turn, rng searcher.Rand) (Agent[A], error) {
	if c.Kind == RandomKind {
		return NewRandom[A](rng), nil
	}

	opts := []searcher.Option{searcher.WithRand(rng), searcher.WithMetrics()}
	if c.DefenceDepth != 0 {
		opts = append(opts, searcher.WithDefenceDepth(c.DefenceDepth))
	}
	s, err := searcher.New[A](c.Kind, c.Depth, turn, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s agent: %w", c, err)
	}
	return NewSearchAgent(s, rng), nil
}
