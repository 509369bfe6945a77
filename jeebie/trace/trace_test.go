package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-jeebie-cpu/jeebie/cpu"
)

var postBoot = cpu.Snapshot{
	A: 0x01, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D,
	SP: 0xFFFE, PC: 0x0100,
	Mem: [4]uint8{0x00, 0xC3, 0x13, 0x02},
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write(postBoot))
	next := postBoot
	next.PC = 0x0101
	next.Mem = [4]uint8{0xC3, 0x13, 0x02, 0xCE}
	require.NoError(t, w.Write(next))

	assert.Empty(t, buf.String(), "lines are buffered until Flush")
	require.NoError(t, w.Flush())

	expected := "A: 01 F: B0 B: 00 C: 13 D: 00 E: D8 H: 01 L: 4D SP: FFFE PC: 00:0100 (00 C3 13 02)\n" +
		"A: 01 F: B0 B: 00 C: 13 D: 00 E: D8 H: 01 L: 4D SP: FFFE PC: 00:0101 (C3 13 02 CE)\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, uint64(2), w.Lines())
}

func TestDigest(t *testing.T) {
	a, b := NewDigest(), NewDigest()
	empty := a.Sum64()

	require.NoError(t, a.Write(postBoot))
	require.NoError(t, b.Write(postBoot))

	assert.Equal(t, a.Sum64(), b.Sum64())
	assert.NotEqual(t, empty, a.Sum64())
	assert.Len(t, a.String(), 16)
	assert.Equal(t, uint64(1), a.Lines())

	changed := postBoot
	changed.F = 0x80
	require.NoError(t, a.Write(postBoot))
	require.NoError(t, b.Write(changed))
	assert.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	d := NewDigest()

	sink := Multi(w, d)
	require.NoError(t, sink.Write(postBoot))
	require.NoError(t, w.Flush())

	assert.Equal(t, uint64(1), d.Lines())
	assert.Equal(t, postBoot.String()+"\n", buf.String())
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		desc     string
		expected string
		actual   string
		mismatch *Mismatch
	}{
		{
			desc:     "identical",
			expected: "a\nb\nc\n",
			actual:   "a\nb\nc\n",
		},
		{
			desc:     "line endings and trailing spaces",
			expected: "a\r\nb  \r\n",
			actual:   "a\nb\n",
		},
		{
			desc:     "first divergence",
			expected: "a\nb\nc\n",
			actual:   "a\nx\ny\n",
			mismatch: &Mismatch{Line: 2, Expected: "b", Actual: "x"},
		},
		{
			desc:     "actual shorter",
			expected: "a\nb\n",
			actual:   "a\n",
			mismatch: &Mismatch{Line: 2, Expected: "b", Actual: EndOfTrace},
		},
		{
			desc:     "actual longer",
			expected: "a\n",
			actual:   "a\nb\n",
			mismatch: &Mismatch{Line: 2, Expected: EndOfTrace, Actual: "b"},
		},
		{
			desc:     "both empty",
			expected: "",
			actual:   "",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			mismatch, err := Compare(strings.NewReader(tC.expected), strings.NewReader(tC.actual))
			require.NoError(t, err)
			assert.Equal(t, tC.mismatch, mismatch)
		})
	}
}

func TestMismatchString(t *testing.T) {
	m := &Mismatch{Line: 3, Expected: "A: 01", Actual: "A: 02"}
	assert.Equal(t, "line 3:\n  expected: A: 01\n  actual:   A: 02", m.String())
}
