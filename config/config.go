package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Prefix of every environment variable read by Load.
const Prefix = "EXPLORER_"

var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds every tunable of the explorer and the tools around it.
type Config struct {
	Threshold   float64 // belief needed to commit to a hypothesis
	Policy      string  // target selection policy: biased, nearest, uniform, softmin
	Bias        float64 // probability the biased policy picks the nearest cell
	Temperature float64 // softmin temperature
	Distance    string  // distance used to rank frontier cells
	Heuristic   string  // A* heuristic
	WallPenalty float64 // extra cost per wall cell for the wallpenalty heuristic
	Diagonal    bool    // allow diagonal moves
	MaxMoves    int     // per episode, 0 for unlimited
	FollowExit  bool    // walk the exit path once the episode is decided

	Seed        uint64 // 0 picks a seed from the clock
	Spins       int    // clue spawning rounds of the room generator
	Parallelism int    // episodes played at once by batch commands

	LogLevel     string // debug, info, warn, error, none
	TaxonomyPath string // YAML or JSON taxonomy, empty for the built-in one
	PatternsDir  string // directory of .des patterns, empty for the built-in ones
	ResultsDir   string // where batch commands write their output
	ServerAddr   string // listen address of the serve command
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Threshold:   0.95,
		Policy:      "biased",
		Bias:        1.0,
		Temperature: 1.0,
		Distance:    "manhattan",
		Heuristic:   "manhattan",
		WallPenalty: 8,
		Diagonal:    false,
		MaxMoves:    0,
		FollowExit:  false,

		Seed:        0,
		Spins:       2,
		Parallelism: 4,

		LogLevel:     "info",
		TaxonomyPath: "",
		PatternsDir:  "",
		ResultsDir:   "results",
		ServerAddr:   ":8080",
	}
}

// Load reads the given .env files (".env" when none are given; missing
// files are skipped) and then the EXPLORER_ environment variables on top
// of Default. Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv fills Default from the variables lookup finds.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	r := &reader{lookup: lookup}

	r.number("THRESHOLD", &c.Threshold)
	r.str("POLICY", &c.Policy)
	r.number("BIAS", &c.Bias)
	r.number("TEMPERATURE", &c.Temperature)
	r.str("DISTANCE", &c.Distance)
	r.str("HEURISTIC", &c.Heuristic)
	r.number("WALL_PENALTY", &c.WallPenalty)
	r.boolean("DIAGONAL", &c.Diagonal)
	r.integer("MAX_MOVES", &c.MaxMoves)
	r.boolean("FOLLOW_EXIT", &c.FollowExit)

	r.unsigned("SEED", &c.Seed)
	r.integer("SPINS", &c.Spins)
	r.integer("PARALLELISM", &c.Parallelism)

	r.str("LOG_LEVEL", &c.LogLevel)
	r.str("TAXONOMY", &c.TaxonomyPath)
	r.str("PATTERNS_DIR", &c.PatternsDir)
	r.str("RESULTS_DIR", &c.ResultsDir)
	r.str("SERVER_ADDR", &c.ServerAddr)

	if r.err != nil {
		return Config{}, r.err
	}
	return c, c.Validate()
}

// Validate checks the ranges the explorer relies on.
func (c Config) Validate() error {
	switch {
	case c.Threshold <= 0 || c.Threshold > 1:
		return fmt.Errorf("%w: threshold %v not in (0, 1]", ErrInvalidValue, c.Threshold)
	case c.Bias < 0 || c.Bias > 1:
		return fmt.Errorf("%w: bias %v not in [0, 1]", ErrInvalidValue, c.Bias)
	case c.Temperature <= 0:
		return fmt.Errorf("%w: temperature %v must be positive", ErrInvalidValue, c.Temperature)
	case c.WallPenalty < 0:
		return fmt.Errorf("%w: wall penalty %v is negative", ErrInvalidValue, c.WallPenalty)
	case c.MaxMoves < 0:
		return fmt.Errorf("%w: max moves %d is negative", ErrInvalidValue, c.MaxMoves)
	case c.Spins < 0:
		return fmt.Errorf("%w: spins %d is negative", ErrInvalidValue, c.Spins)
	case c.Parallelism < 1:
		return fmt.Errorf("%w: parallelism %d must be at least 1", ErrInvalidValue, c.Parallelism)
	}
	return nil
}

// reader keeps the first parse error so every field can be read in a row.
type reader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *reader) get(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.lookup(Prefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *reader) fail(key, v string, err error) {
	r.err = fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, Prefix, key, v, err)
}

func (r *reader) str(key string, into *string) {
	if v, ok := r.get(key); ok {
		*into = v
	}
}

func (r *reader) number(key string, into *float64) {
	if v, ok := r.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*into = f
	}
}

func (r *reader) integer(key string, into *int) {
	if v, ok := r.get(key); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*into = i
	}
}

func (r *reader) unsigned(key string, into *uint64) {
	if v, ok := r.get(key); ok {
		u, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*into = u
	}
}

func (r *reader) boolean(key string, into *bool) {
	if v, ok := r.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*into = b
	}
}
