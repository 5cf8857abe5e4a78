package blake3

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	zeebo "github.com/zeebo/blake3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Conformance tests: published known-answer vectors, plus full agreement
// with an independent implementation across the official vector lengths in
// all three modes.

/* The key and context strings fixed by the official test-vector file. */
const (
	testKey     = "whats the Elvish word for friend"
	testContext = "BLAKE3 2019-12-27 16:29:52 test vectors context"

	/* Length of the extended output enumerated per vector. */
	testOutputLen = 1312
)

/* Input lengths enumerated by the official test-vector file. */
var vectorLengths = []int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 63, 64, 65, 127, 128, 129, 1023, 1024, 1025,
	2048, 2049, 3072, 3073, 4096, 4097, 5120, 5121, 6144, 6145, 7168, 7169,
	8192, 8193, 16384, 31744, 102400,
}

// testInput returns the official vector input: n bytes of i mod 251.
func testInput(n int) []byte {
	in := make([]byte, n)
	for i := range in {
		in[i] = byte(i % 251)
	}
	return in
}

func TestKnownAnswers(t *testing.T) {
	t.Parallel()
	known := []struct {
		length int
		digest string
	}{
		{0, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{1, "2d3adedff11b61f14c886e35afa036736dcd87a74d27b5c1510225d0f592e213"},
		{1024, "42214739f095a406f3fc83deb889744ac00df831c10daa55189b5d121c855af7"},
		{1025, "d00278ae47eb27b34faecf67b4fe263f82d5412916c1ffd97c8cb7fb814b8444"},
	}
	for _, v := range known {
		sum := Sum256(testInput(v.length))
		require.Equal(t, v.digest, hex.EncodeToString(sum[:]), "input length %d", v.length)
	}

	keyed, err := KeyedSum([]byte(testKey), nil, Size)
	require.NoError(t, err)
	require.Equal(t,
		"92b2b75604ed3c761f9d6f62392c8a9227ad0ea3f09573e783f1498a4ed60d26",
		hex.EncodeToString(keyed))

	derived := DeriveKey(testContext, nil, Size)
	require.Equal(t,
		"2cc39783c223154fea8dfb7c1b1660f2ac2dcbd1c1de8277b0b0dd39b7e50d7d",
		hex.EncodeToString(derived))
}

// TestVectorAgreement checks every official vector length in every mode
// against an independent implementation, over the full extended output.
func TestVectorAgreement(t *testing.T) {
	t.Parallel()
	theirs := make([]byte, testOutputLen)
	for _, n := range vectorLengths {
		in := testInput(n)

		ours := Sum(in, testOutputLen)
		h := zeebo.New()
		h.Write(in)
		h.Digest().Read(theirs)
		require.True(t, bytes.Equal(ours, theirs), "plain mode, input length %d", n)

		ours, err := KeyedSum([]byte(testKey), in, testOutputLen)
		require.NoError(t, err)
		k, err := zeebo.NewKeyed([]byte(testKey))
		require.NoError(t, err)
		k.Write(in)
		k.Digest().Read(theirs)
		require.True(t, bytes.Equal(ours, theirs), "keyed mode, input length %d", n)

		ours = DeriveKey(testContext, in, testOutputLen)
		zeebo.DeriveKey(testContext, in, theirs)
		require.True(t, bytes.Equal(ours, theirs), "derive mode, input length %d", n)
	}
}

func TestSum512MatchesSum(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 64, 1024, 3073} {
		in := testInput(n)
		long := Sum512(in)
		short := Sum256(in)
		require.Equal(t, short[:], long[:32])
		require.Equal(t, Sum(in, 64), long[:])
	}
}

func TestKeySize(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 31, 33, 64} {
		_, err := NewKeyed(make([]byte, n))
		require.ErrorIs(t, err, ErrKeySize)
		_, err = KeyedSum(make([]byte, n), []byte("msg"), Size)
		require.ErrorIs(t, err, ErrKeySize)
	}
	_, err := NewKeyed(make([]byte, KeySize))
	require.NoError(t, err)
}
