// Command vmsim replays a virtual address trace against a demand-paged
// memory simulator and checks the results against a validation trace.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"gitlab.com/pnathan/vmsim/src/config"
	"gitlab.com/pnathan/vmsim/src/stats"
	"gitlab.com/pnathan/vmsim/src/trace"
	"gitlab.com/pnathan/vmsim/src/vmem"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(args)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}
	logger.Info("starting simulation run",
		"file_storage", cfg.FileStorage,
		"file_validation", cfg.FileValidation,
		"file_address", cfg.FileAddress,
		"size_table", cfg.SizeTable,
		"size_tlb", cfg.SizeTLB,
		"size_frame", cfg.SizeFrame,
		"delay_us", cfg.DelayMicros,
	)

	store, err := vmem.OpenBackingStore(cfg.FileStorage, int64(cfg.SizeFrame))
	if err != nil {
		logger.Error("failed to open backing store", "error", err)
		return 1
	}
	defer store.Close()

	addresses, err := trace.NewAddressReader(cfg.FileAddress)
	if err != nil {
		logger.Error("failed to open address trace", "error", err)
		return 1
	}
	defer addresses.Close()

	expected, err := trace.NewValidationReader(cfg.FileValidation)
	if err != nil {
		logger.Error("failed to open validation trace", "error", err)
		return 1
	}
	defer expected.Close()

	translator := vmem.NewTranslator(cfg.SizeTLB, cfg.SizeTable, cfg.SizeFrame, store)
	tracker := &stats.Tracker{}

	bar := progressbar.Default(-1, "replaying trace")
	delay := time.Duration(cfg.DelayMicros) * time.Microsecond

	mismatches := uint64(0)
	var index uint64

	for {
		vaddr, ok, err := addresses.Next()
		if err != nil {
			logger.Error("failed to read address trace", "error", err)
			return 1
		}
		if !ok {
			break
		}

		want, ok, err := expected.Next()
		if err != nil {
			logger.Error("failed to read validation trace", "error", err)
			return 1
		}
		if !ok {
			logger.Error("validation trace exhausted before address trace", "record", index)
			return 1
		}

		got, err := translator.Access(vaddr)
		if err != nil {
			var backingErr *vmem.ErrBackingRead
			if errors.As(err, &backingErr) {
				logger.Error("backing store read failed", "error", err)
			} else {
				logger.Error("translation failed", "error", err)
			}
			return 1
		}

		if got.Equal(want) {
			tracker.CorrectMemoryAccesses++
		} else {
			mismatches++
			logger.Warn("access mismatch",
				"record", index,
				"virtual_address", vaddr,
				"expected_value", want.Value,
				"observed_value", got.Value,
				"expected_physical_address", want.PhysicalAddress,
				"observed_physical_address", got.PhysicalAddress,
			)
		}
		index++

		_ = bar.Add(1)
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	_ = bar.Finish()

	tracker.AttemptedMemoryAccesses = translator.Attempted
	tracker.TLBHits = translator.TLBHits
	tracker.PageHits = translator.PageHits
	tracker.TLBFlushes = translator.TLBFlushes

	fmt.Println(tracker.String())

	if mismatches > 0 {
		return 2
	}
	return 0
}
