// Package config merges command-line flags and SIM_-prefixed environment
// variables into a single Config value, with flags taking priority.
package config

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrConfigInvalid reports a configuration value that fails validation at
// startup. Callers are expected to log it and exit with status 1.
type ErrConfigInvalid struct {
	Reason string
}

func (e *ErrConfigInvalid) Error() string {
	return e.Reason
}

// Config holds every tunable of a simulation run. It is built once by Load
// and threaded explicitly into the translator and trace readers — nothing
// here is read from process-wide state after Load returns.
type Config struct {
	FileStorage    string
	FileValidation string
	FileAddress    string
	SizeTable      int
	SizeTLB        int
	SizeFrame      int
	DelayMicros    int
}

const envPrefix = "SIM"

// Load parses args (normally os.Args[1:]) and merges them with SIM_-prefixed
// environment variables, flags winning over environment on conflict.
func Load(args []string) (Config, error) {
	flags := pflag.NewFlagSet("vmsim", pflag.ContinueOnError)
	flags.String("file-storage", "BACKING_STORE.bin", "path to the backing store binary")
	flags.String("file-validation", "correct.txt", "path to the validation trace")
	flags.String("file-address", "addresses.txt", "path to the address trace")
	flags.Int("size-table", 64, "number of frames in the frame pool")
	flags.Int("size-tlb", 16, "TLB capacity")
	flags.Int("size-frame", 256, "bytes per frame; must be a power of two")
	flags.Int("delay-us", 250, "per-access pacing sleep in microseconds")

	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	cfg := Config{
		FileStorage:    v.GetString("file-storage"),
		FileValidation: v.GetString("file-validation"),
		FileAddress:    v.GetString("file-address"),
		SizeTable:      v.GetInt("size-table"),
		SizeTLB:        v.GetInt("size-tlb"),
		SizeFrame:      v.GetInt("size-frame"),
		DelayMicros:    v.GetInt("delay-us"),
	}
	return cfg, nil
}

// Validate enforces size_tlb > 0 && size_tlb <= size_table, and size_frame
// a power of two >= 1.
func (c Config) Validate() error {
	if c.SizeTLB <= 0 || c.SizeTLB > c.SizeTable {
		return &ErrConfigInvalid{Reason: "size_tlb must be a non-zero value less than or equal to size_table"}
	}
	if c.SizeFrame < 1 || bits.OnesCount(uint(c.SizeFrame)) != 1 {
		return &ErrConfigInvalid{Reason: "size_frame must be a non-zero power of 2 integer value"}
	}
	return nil
}
