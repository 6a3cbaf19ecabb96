// Package ruletable reads and writes filter lists as text, one filter per
// line.
//
// A line is either a ternary literal ("10**_0*1", see filter.Parse) or a
// "value/mask" hex pair (see filter.ParseHex). Blank lines and lines whose
// first non-space character is '#' are skipped; a '#' after a filter starts
// a trailing comment.
package ruletable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/tcamoi/filter"
)

// ErrTable is matched by every *LineError.
var ErrTable = errors.New("invalid rule table")

// LineError reports the line a table failed to parse on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() []error { return []error{ErrTable, e.Err} }

// Read parses a table. Filter i of the result comes from the i-th filter
// line.
func Read(r io.Reader) ([]filter.Filter, error) {
	var out []filter.Filter
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		var (
			f   filter.Filter
			err error
		)
		if strings.Contains(text, "/") {
			f, err = filter.ParseHex(text)
		} else {
			f, err = filter.Parse(text)
		}
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		out = append(out, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Format selects how Write renders filters.
type Format int

const (
	// Ternary writes one character per bit, trailing wildcards trimmed.
	Ternary Format = iota
	// Hex writes "value/mask" pairs.
	Hex
)

// Write renders filters one per line in the given format. Read parses the
// output back into the same filters.
func Write(w io.Writer, filters []filter.Filter, format Format) error {
	bw := bufio.NewWriter(w)
	for _, f := range filters {
		var s string
		switch format {
		case Hex:
			s = f.Hex()
		default:
			s = trimWildcards(f.String())
		}
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// trimWildcards drops trailing '*' but keeps at least one character so the
// line is not mistaken for a blank one.
func trimWildcards(s string) string {
	t := strings.TrimRight(s, "*")
	if t == "" {
		return "*"
	}
	return t
}

// Project maps every filter through filter.Project(bits), producing the
// table as seen by a classifier keyed on bits.
func Project(filters []filter.Filter, bits []int) ([]filter.Filter, error) {
	out := make([]filter.Filter, len(filters))
	for i, f := range filters {
		p, err := f.Project(bits)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
