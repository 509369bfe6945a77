package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// EndOfTrace stands in for the missing line when one trace is shorter.
const EndOfTrace = "<end of trace>"

// Mismatch is the first line where two traces differ.
type Mismatch struct {
	Line     int // 1-based
	Expected string
	Actual   string
}

func (m *Mismatch) String() string {
	return fmt.Sprintf("line %d:\n  expected: %s\n  actual:   %s", m.Line, m.Expected, m.Actual)
}

// Compare reads both traces line by line and returns the first mismatch, or
// nil if they are identical. Trailing whitespace and CRLF line endings are
// ignored.
func Compare(expected, actual io.Reader) (*Mismatch, error) {
	exp := bufio.NewScanner(expected)
	act := bufio.NewScanner(actual)

	for line := 1; ; line++ {
		expOK := exp.Scan()
		actOK := act.Scan()

		if !expOK {
			if err := exp.Err(); err != nil {
				return nil, fmt.Errorf("reading expected trace: %w", err)
			}
		}
		if !actOK {
			if err := act.Err(); err != nil {
				return nil, fmt.Errorf("reading actual trace: %w", err)
			}
		}

		switch {
		case !expOK && !actOK:
			return nil, nil
		case !expOK:
			return &Mismatch{Line: line, Expected: EndOfTrace, Actual: normalize(act.Text())}, nil
		case !actOK:
			return &Mismatch{Line: line, Expected: normalize(exp.Text()), Actual: EndOfTrace}, nil
		}

		e, a := normalize(exp.Text()), normalize(act.Text())
		if e != a {
			return &Mismatch{Line: line, Expected: e, Actual: a}, nil
		}
	}
}

func normalize(line string) string {
	return strings.TrimRight(line, " \t\r")
}
