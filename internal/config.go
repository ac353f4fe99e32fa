package internal

import (
	"fmt"
	"math/rand/v2"

	"github.com/BurntSushi/toml"
	"github.com/rm-hull/voronoi-fragments/internal/fragment"
)

// Config holds the split defaults that can be kept in a TOML file.
type Config struct {
	Pieces     int                 `toml:"pieces"`
	Fragments  int                 `toml:"fragments"`
	Background fragment.Background `toml:"background"`
	Invert     bool                `toml:"invert"`
	Index      fragment.Index      `toml:"index"`
	Workers    int                 `toml:"workers"`
	MaxSize    int                 `toml:"max_size"`
	// Seed makes runs reproducible; 0 picks a fresh seed each time.
	Seed int64 `toml:"seed"`
}

func DefaultConfig() Config {
	opts := fragment.DefaultOptions()
	return Config{
		Pieces:     opts.Pieces,
		Fragments:  opts.Fragments,
		Background: opts.Background,
		Index:      opts.Index,
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown keys in config %s: %v", path, undecoded)
	}
	return cfg, nil
}

func (c Config) SplitOptions() fragment.Options {
	return fragment.Options{
		Pieces:     c.Pieces,
		Fragments:  c.Fragments,
		Background: c.Background,
		Invert:     c.Invert,
		Index:      c.Index,
		Workers:    c.Workers,
	}
}

func (c Config) Rand() *rand.Rand {
	return NewRand(c.Seed)
}

func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
