// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Default settings. Overridable via a settings file or command line flags.
const (
	// DefaultTypeStrainFile is the FASTA file with type strain sequences
	// (also the base name of its BLAST database)
	DefaultTypeStrainFile = "species.fasta"

	// DefaultMinIdentity is the sequence identity, over the full length of
	// the type strain sequence, below which a species assignment is
	// considered incompatible (0-1 scale)
	DefaultMinIdentity = 0.975

	// DefaultSearchIdentity is the percent identity cutoff passed to blastn
	// when collecting candidate hits (0-100 scale, blastn's convention)
	DefaultSearchIdentity = 90

	// DefaultMaxHits is the max number of candidate type strains to collect
	// per query sequence
	DefaultMaxHits = 5

	// DefaultThreads is the number of threads blastn is run with
	DefaultThreads = 1

	// DefaultTimeoutSeconds is how long an external search or sequence
	// lookup may run before the batch is failed
	DefaultTimeoutSeconds = 600

	// DefaultPriorAlpha and DefaultPriorBeta parameterize the weak Beta
	// prior on the per-position mismatch rate
	DefaultPriorAlpha = 0.5
	DefaultPriorBeta  = 0.5
)

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those available from the command line
type Config struct {
	// the path to the query FASTA file
	In string `mapstructure:"in"`

	// the path to write result rows to ("" means stdout)
	Out string `mapstructure:"out"`

	// the path to the type strain FASTA file + BLAST database
	TypeStrains string `mapstructure:"type-strains"`

	// the full-length identity threshold for unassignment (0-1)
	MinIdentity float64 `mapstructure:"min-id"`

	// the percent identity cutoff for the blastn search (0-100)
	SearchIdentity int `mapstructure:"search-id"`

	// the max number of candidate hits per query
	MaxHits int `mapstructure:"max-hits"`

	// the number of blastn threads
	Threads int `mapstructure:"threads"`

	// seconds before an external command is failed
	Timeout int `mapstructure:"timeout"`

	// whether to keep the intermediate search input/output files
	Keep bool `mapstructure:"keep"`

	// whether to log progress to stderr
	Verbose bool `mapstructure:"verbose"`

	// the directory reference databases are downloaded into
	Dir string `mapstructure:"dir"`

	// the alpha parameter of the Beta prior on the mismatch rate
	PriorAlpha float64 `mapstructure:"prior-alpha"`

	// the beta parameter of the Beta prior on the mismatch rate
	PriorBeta float64 `mapstructure:"prior-beta"`
}

// New returns a new Config struct populated by Viper settings (either from
// a settings file) and/or command line arguments
func New() *Config {
	viper.SetDefault("type-strains", DefaultTypeStrainFile)
	viper.SetDefault("min-id", DefaultMinIdentity)
	viper.SetDefault("search-id", DefaultSearchIdentity)
	viper.SetDefault("max-hits", DefaultMaxHits)
	viper.SetDefault("threads", DefaultThreads)
	viper.SetDefault("timeout", DefaultTimeoutSeconds)
	viper.SetDefault("dir", ".")
	viper.SetDefault("prior-alpha", DefaultPriorAlpha)
	viper.SetDefault("prior-beta", DefaultPriorBeta)

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("failed to decode settings: %v", err)
	}

	return c
}
