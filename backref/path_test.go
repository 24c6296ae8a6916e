package backref

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildPath(t *testing.T, input []byte) *PathBuilder {
	t.Helper()
	p := NewPathBuilder()
	for idx, b := range input {
		require.Equal(t, uint32(idx), p.Len())
		if b == 0 {
			p.Push(Left)
		} else {
			p.Push(Right)
		}
	}
	return p
}

func TestPathBuilderBuild(t *testing.T) {
	cases := []struct {
		input []byte
		want  string
	}{
		{[]byte{1}, "01"},
		{[]byte{1, 0}, "02"},
		{[]byte{1, 0, 0}, "04"},
		{[]byte{1, 0, 0, 0}, "08"},
		{[]byte{1, 0, 0, 0, 0}, "10"},
		{[]byte{1, 0, 0, 0, 0, 0}, "20"},
		{[]byte{1, 0, 0, 0, 0, 0, 0}, "40"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0}, "80"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0}, "0100"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "0200"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "0400"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "0800"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "1000"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "2000"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "4000"},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "8000"},
		{[]byte{1, 1, 1, 0, 0}, "1c"},
		{[]byte{1, 0, 1, 0, 0, 1, 0, 0, 0}, "0148"},
	}
	for _, c := range cases {
		p := buildPath(t, c.input)
		got := hex.EncodeToString(p.Done())
		require.Equal(t, c.want, got, "input=%v", c.input)
	}
}

func TestPathBuilderTruncate(t *testing.T) {
	cases := []struct {
		numBits  int
		truncate uint32
		want     string
	}{
		{15, 0, ""}, {15, 1, "01"}, {15, 2, "03"}, {15, 3, "07"}, {15, 4, "0f"},
		{15, 5, "1f"}, {15, 6, "3f"}, {15, 7, "7f"}, {15, 8, "ff"},
		{15, 9, "01ff"}, {15, 10, "03ff"}, {15, 11, "07ff"}, {15, 12, "0fff"},
		{15, 13, "1fff"}, {15, 14, "3fff"}, {15, 15, "7fff"},
		{80, 0, ""}, {80, 1, "01"}, {80, 2, "03"}, {80, 3, "07"}, {80, 4, "0f"},
		{80, 5, "1f"}, {80, 6, "3f"}, {80, 7, "7f"}, {80, 8, "ff"},
		{80, 9, "01ff"}, {80, 10, "03ff"}, {80, 11, "07ff"}, {80, 12, "0fff"},
		{80, 13, "1fff"}, {80, 14, "3fff"}, {80, 15, "7fff"},
		{80, 80, "ffffffffffffffffffff"}, {80, 79, "7fffffffffffffffffff"},
	}
	for _, c := range cases {
		p := NewPathBuilder()
		for i := 0; i < c.numBits; i++ {
			p.Push(Right)
		}
		p.Truncate(c.truncate)
		require.Equal(t, c.truncate, p.Len())
		got := hex.EncodeToString(p.Done())
		require.Equal(t, c.want, got, "numBits=%d truncate=%d", c.numBits, c.truncate)
	}
}

func TestPathBuilderTruncateAdd(t *testing.T) {
	cases := []struct {
		numBits  int
		truncate uint32
		want     string
	}{
		{15, 0, "01"}, {15, 1, "03"}, {15, 2, "07"}, {15, 3, "0f"}, {15, 4, "1f"},
		{15, 5, "3f"}, {15, 6, "7f"}, {15, 7, "ff"},
		{15, 8, "01ff"}, {15, 9, "03ff"}, {15, 10, "07ff"}, {15, 11, "0fff"},
		{15, 12, "1fff"}, {15, 13, "3fff"}, {15, 14, "7fff"}, {15, 15, "ffff"},
		{80, 0, "01"}, {80, 1, "03"}, {80, 2, "07"}, {80, 3, "0f"}, {80, 4, "1f"},
		{80, 5, "3f"}, {80, 6, "7f"}, {80, 7, "ff"},
		{80, 8, "01ff"}, {80, 9, "03ff"}, {80, 10, "07ff"}, {80, 11, "0fff"},
		{80, 12, "1fff"}, {80, 13, "3fff"}, {80, 14, "7fff"}, {80, 15, "ffff"},
		{80, 79, "ffffffffffffffffffff"},
	}
	for _, c := range cases {
		p := NewPathBuilder()
		for i := 0; i < c.numBits; i++ {
			p.Push(Right)
		}
		p.Truncate(c.truncate)
		p.Push(Right)
		got := hex.EncodeToString(p.Done())
		require.Equal(t, c.want, got, "numBits=%d truncate=%d", c.numBits, c.truncate)
	}
}

func TestPathBuilderClear(t *testing.T) {
	for _, numBits := range []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17} {
		p := NewPathBuilder()
		for i := 0; i < numBits; i++ {
			p.Push(Right)
		}
		p.Clear()
		require.Empty(t, p.Done())
	}
}

func TestPathBuilderBetter(t *testing.T) {
	cases := []struct {
		lhs, rhs []byte
		want     bool
	}{
		{[]byte{1}, []byte{1}, true},
		{[]byte{1}, []byte{1, 1}, true},
		{[]byte{1, 1}, []byte{1}, false},
		{[]byte{1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1}, true},
		{[]byte{1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1, 1}, true},
		{[]byte{1, 1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1}, false},
		{[]byte{1, 1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1, 1}, true},
		{[]byte{1, 1, 1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1, 1, 1}, true},
		{[]byte{1, 1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1, 1, 1}, true},
		{[]byte{1, 1, 1, 1, 1, 1, 1, 1, 1}, []byte{1, 1, 1, 1, 1, 1, 1, 1}, false},
		{[]byte{1, 0}, []byte{1, 1}, true},
		{[]byte{1, 1}, []byte{1, 1}, true},
		{[]byte{1, 1}, []byte{1, 0}, false},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0}, []byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, true},
		{[]byte{1, 0, 0, 0, 0, 0, 0, 0, 1}, []byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, true},
		{[]byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, []byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, true},
		{[]byte{1, 1, 0, 0, 0, 0, 0, 0, 1}, []byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, false},
		{[]byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}, false},
		{[]byte{1, 1, 0, 0, 0, 0, 0, 0, 1}, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}, false},
	}
	for _, c := range cases {
		lhs := buildPath(t, c.lhs)
		rhs := buildPath(t, c.rhs)
		require.Equal(t, c.want, lhs.Better(rhs), "lhs=%v rhs=%v", c.lhs, c.rhs)
	}
}

func TestPathBuilderSerializedLengthMatchesAtomEncoding(t *testing.T) {
	for _, numBits := range []int{0, 1, 6, 7, 8, 9, 31, 32, 33, 504, 505, 511, 512, 513, 0xfff9} {
		p := NewPathBuilder()
		for i := 0; i < numBits; i++ {
			p.Push(Right)
		}
		serLen := p.SerializedLength()
		vec := p.Done()
		encoded, err := encodeAtom(vec)
		require.NoError(t, err)
		require.Equal(t, uint32(len(encoded)), serLen, "numBits=%d", numBits)
	}
}
