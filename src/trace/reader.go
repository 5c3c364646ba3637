// Package trace provides lazy, single-pass readers over the address trace
// and validation trace files that drive and check a replay run.
package trace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gitlab.com/pnathan/vmsim/src/vmem"
)

// ErrParse reports a malformed trace or validation line. Per spec, a
// malformed line aborts the run rather than being skipped.
type ErrParse struct {
	File string
	Line uint64
	Err  error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ErrParse) Unwrap() error {
	return e.Err
}

// AddressReader is a lazy sequence of decimal unsigned 32-bit virtual
// addresses, one per non-empty line of a trace file.
type AddressReader struct {
	filename   string
	file       *os.File
	scanner    *bufio.Scanner
	lineNumber uint64
}

// NewAddressReader opens path for reading.
func NewAddressReader(path string) (*AddressReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("address trace: open %s: %w", path, err)
	}
	return &AddressReader{
		filename: path,
		file:     f,
		scanner:  bufio.NewScanner(f),
	}, nil
}

// Next returns the next decoded virtual address. ok is false once the file
// is exhausted, at which point the reader closes its handle.
func (r *AddressReader) Next() (value uint32, ok bool, err error) {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		parsed, perr := strconv.ParseUint(line, 10, 32)
		if perr != nil {
			return 0, false, &ErrParse{File: r.filename, Line: r.lineNumber, Err: perr}
		}
		return uint32(parsed), true, nil
	}
	if err := r.scanner.Err(); err != nil {
		return 0, false, &ErrParse{File: r.filename, Line: r.lineNumber, Err: err}
	}
	r.Close()
	return 0, false, nil
}

// Close releases the underlying file handle.
func (r *AddressReader) Close() error {
	return r.file.Close()
}

// ValidationReader is a lazy sequence of expected AccessResults parsed from
// a validation trace, one record per line: whitespace-separated tokens
// where positions 2, 5, 7 hold the virtual address, expected physical
// address, and expected signed byte value.
type ValidationReader struct {
	filename   string
	file       *os.File
	scanner    *bufio.Scanner
	lineNumber uint64
}

// NewValidationReader opens path for reading.
func NewValidationReader(path string) (*ValidationReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("validation trace: open %s: %w", path, err)
	}
	return &ValidationReader{
		filename: path,
		file:     f,
		scanner:  bufio.NewScanner(f),
	}, nil
}

// Next returns the next expected AccessResult. ok is false once the file is
// exhausted, at which point the reader closes its handle.
func (r *ValidationReader) Next() (result vmem.AccessResult, ok bool, err error) {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 8 {
			return vmem.AccessResult{}, false, &ErrParse{
				File: r.filename, Line: r.lineNumber,
				Err: fmt.Errorf("expected at least 8 whitespace-separated fields, got %d", len(fields)),
			}
		}

		vaddr, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return vmem.AccessResult{}, false, &ErrParse{File: r.filename, Line: r.lineNumber, Err: err}
		}
		paddr, err := strconv.ParseUint(fields[5], 10, 32)
		if err != nil {
			return vmem.AccessResult{}, false, &ErrParse{File: r.filename, Line: r.lineNumber, Err: err}
		}
		value, err := strconv.ParseInt(fields[7], 10, 8)
		if err != nil {
			return vmem.AccessResult{}, false, &ErrParse{File: r.filename, Line: r.lineNumber, Err: err}
		}

		return vmem.AccessResult{
			VirtualAddress:  uint32(vaddr),
			PhysicalAddress: uint32(paddr),
			Value:           int8(value),
		}, true, nil
	}
	if err := r.scanner.Err(); err != nil {
		return vmem.AccessResult{}, false, &ErrParse{File: r.filename, Line: r.lineNumber, Err: err}
	}
	r.Close()
	return vmem.AccessResult{}, false, nil
}

// Close releases the underlying file handle.
func (r *ValidationReader) Close() error {
	return r.file.Close()
}
