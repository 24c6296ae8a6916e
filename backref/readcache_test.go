package backref

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCacheLookupMatchesWalkthrough(t *testing.T) {
	const large = 30
	r := NewReadCacheLookup()

	nilHash := hashBlob([]byte{treeHashLeafPrefix})
	require.Equal(t, [][]byte{{1}}, r.FindPaths(nilHash, large))

	oneAtomHash := hashBlob([]byte{treeHashLeafPrefix, 1})
	require.Empty(t, r.FindPaths(oneAtomHash, large))

	hash5 := hashBlob([]byte{treeHashLeafPrefix, 5})
	r.Push(hash5)
	hashCons5Nil := hashPair(hash5, nilHash)
	require.Equal(t, [][]byte{{1}}, r.FindPaths(hashCons5Nil, large))
	require.Equal(t, [][]byte{{2}}, r.FindPaths(hash5, large))
	require.Equal(t, [][]byte{{3}}, r.FindPaths(nilHash, large))

	hash9 := hashBlob([]byte{treeHashLeafPrefix, 9})
	r.Push(hash9)
	hashCons9Cons5Nil := hashPair(hash9, hashCons5Nil)
	require.Equal(t, [][]byte{{1}}, r.FindPaths(hashCons9Cons5Nil, large))
	require.Equal(t, [][]byte{{2}}, r.FindPaths(hash9, large))
	require.Equal(t, [][]byte{{3}}, r.FindPaths(hashCons5Nil, large))
	require.Equal(t, [][]byte{{5}}, r.FindPaths(hash5, large))
	require.Equal(t, [][]byte{{7}}, r.FindPaths(nilHash, large))

	hash10 := hashBlob([]byte{treeHashLeafPrefix, 10})
	r.Push(hash10)
	hashCons10Cons9Cons5Nil := hashPair(hash10, hashCons9Cons5Nil)
	require.Equal(t, [][]byte{{1}}, r.FindPaths(hashCons10Cons9Cons5Nil, large))
	require.Equal(t, [][]byte{{2}}, r.FindPaths(hash10, large))
	require.Equal(t, [][]byte{{3}}, r.FindPaths(hashCons9Cons5Nil, large))
	require.Equal(t, [][]byte{{5}}, r.FindPaths(hash9, large))
	require.Equal(t, [][]byte{{7}}, r.FindPaths(hashCons5Nil, large))
	require.Equal(t, [][]byte{{11}}, r.FindPaths(hash5, large))
	require.Equal(t, [][]byte{{15}}, r.FindPaths(nilHash, large))

	r.Pop2AndCons()
	hashCons9_10 := hashPair(hash9, hash10)
	hashConsCons9_10Cons5Nil := hashPair(hashCons9_10, hashCons5Nil)
	require.Equal(t, [][]byte{{1}}, r.FindPaths(hashConsCons9_10Cons5Nil, large))
	require.Equal(t, [][]byte{{2}}, r.FindPaths(hashCons9_10, large))
	require.Equal(t, [][]byte{{3}}, r.FindPaths(hashCons5Nil, large))
	require.Equal(t, [][]byte{{4}}, r.FindPaths(hash9, large))
	require.Equal(t, [][]byte{{6}}, r.FindPaths(hash10, large))
	require.Equal(t, [][]byte{{5}}, r.FindPaths(hash5, large))
	require.Equal(t, [][]byte{{7}}, r.FindPaths(nilHash, large))
	require.Empty(t, r.FindPaths(hashCons9Cons5Nil, large))
}

func TestReversedPathToBytesMatchesTable(t *testing.T) {
	cases := []struct {
		bits []bool
		want []byte
	}{
		{nil, []byte{0b1}},
		{[]bool{false}, []byte{0b10}},
		{[]bool{true}, []byte{0b11}},
		{[]bool{false, false}, []byte{0b100}},
		{[]bool{false, true}, []byte{0b101}},
		{[]bool{true, false}, []byte{0b110}},
		{[]bool{true, true}, []byte{0b111}},
		{[]bool{true, true, true}, []byte{0b1111}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, reversedPathToBytes(c.bits))
	}
}
