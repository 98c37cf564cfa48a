package config

import (
	"errors"
	"fmt"
	"strings"

	"duel/agent"
	"duel/gamemaster"
	"duel/meta"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyConfig      = "config"
	KeyMode        = "mode"
	KeyGame        = "game"
	KeyAgents      = "agents"
	KeyGames       = "games"
	KeyRestarts    = "restarts"
	KeyConcurrency = "concurrency"
	KeySeed        = "seed"
	KeyOutputDir   = "output-dir"
	KeyDatabase    = "database"
	KeyDebug       = "debug"
)

const (
	ModeMatch      = "match"
	ModeTournament = "tournament"
)

var ErrInvalid = errors.New("invalid configuration")

// Config layers flags over environment variables (DUEL_*) over an optional
// YAML file over defaults.
type Config struct {
	*viper.Viper
}

func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	fs := pflag.NewFlagSet("duel", pflag.ContinueOnError)
	fs.String(KeyConfig, "", "path to a YAML config file")
	fs.String(KeyMode, ModeMatch, "match plays one game, tournament pits every agent against every other")
	fs.String(KeyGame, gamemaster.TicTacToe, "one of "+strings.Join(gamemaster.Games, ", "))
	fs.StringSlice(KeyAgents, []string{"alphabeta:6", "random"},
		"agents as kind[:depth[:defence depth]], e.g. naive:4, defensive:4:2 or random; a match uses the first two")
	fs.Int(KeyGames, 10, "games per pairing in a tournament")
	fs.Int(KeyRestarts, 0, "times a match is played again from the opening")
	fs.Int(KeyConcurrency, 0, "matches played at once in a tournament, 0 for one per CPU")
	fs.Uint64(KeySeed, 0, "seed of the agents' random sources, 0 to seed from entropy")
	fs.String(KeyOutputDir, "experiments", "directory for tournament records")
	fs.String(KeyDatabase, "", "optional SQLite database collecting tournament records")
	fs.Bool(KeyDebug, false, "log every move")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	c.SetEnvPrefix(meta.EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(KeyConfig); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Mode() {
	case ModeMatch:
		if len(c.GetStringSlice(KeyAgents)) < 2 {
			return fmt.Errorf("%w: a match needs two agents", ErrInvalid)
		}
	case ModeTournament:
		if c.Games() < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyGames, c.Games())
		}
	default:
		return fmt.Errorf("%w: unknown %s %q", ErrInvalid, KeyMode, c.Mode())
	}
	if c.Restarts() < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, KeyRestarts)
	}
	if _, err := gamemaster.ParseGame(c.GetString(KeyGame)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Agents(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) Mode() string {
	return strings.ToLower(c.GetString(KeyMode))
}

func (c *Config) Game() string {
	game, _ := gamemaster.ParseGame(c.GetString(KeyGame))
	return game
}

// Agents parses the agent list. In the environment the list is separated by
// spaces.
func (c *Config) Agents() ([]agent.Config, error) {
	return agent.ParseConfigs(c.GetStringSlice(KeyAgents))
}

func (c *Config) Games() int        { return c.GetInt(KeyGames) }
func (c *Config) Restarts() int     { return c.GetInt(KeyRestarts) }
func (c *Config) Concurrency() int  { return c.GetInt(KeyConcurrency) }
func (c *Config) Seed() uint64      { return c.GetUint64(KeySeed) }
func (c *Config) OutputDir() string { return c.GetString(KeyOutputDir) }
func (c *Config) Database() string  { return c.GetString(KeyDatabase) }
func (c *Config) Debug() bool       { return c.GetBool(KeyDebug) }
