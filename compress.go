package blake3

import (
	"encoding/binary"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The scalar form of the compression function. It is pure: every call maps a
// (chaining value, message block, counter, length, flags) tuple to the same
// 16-word state, so distinct hashers never contend over shared state.

// g mixes one column or diagonal of the 4x4 word matrix with two words of the
// message block.
func g(v *[16]uint32, a, b, c, d int, mx, my uint32) {
	v[a] += v[b] + mx
	v[d] = bits.RotateLeft32(v[d]^v[a], -16)
	v[c] += v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -12)
	v[a] += v[b] + my
	v[d] = bits.RotateLeft32(v[d]^v[a], -8)
	v[c] += v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -7)
}

// compress runs the seven-round permutation over cv and one message block.
// The first 8 words of the result chain into the next compression; all 16
// back the extendable output when the root flag is set.
func compress(cv *[8]uint32, m *[16]uint32, counter uint64, blockLen, flags uint32) [16]uint32 {
	v := [16]uint32{
		cv[0], cv[1], cv[2], cv[3], cv[4], cv[5], cv[6], cv[7],
		iv[0], iv[1], iv[2], iv[3],
		uint32(counter), uint32(counter >> 32), blockLen, flags,
	}

	for r := range schedule {
		s := &schedule[r]
		g(&v, 0, 4, 8, 12, m[s[0]], m[s[1]])
		g(&v, 1, 5, 9, 13, m[s[2]], m[s[3]])
		g(&v, 2, 6, 10, 14, m[s[4]], m[s[5]])
		g(&v, 3, 7, 11, 15, m[s[6]], m[s[7]])

		g(&v, 0, 5, 10, 15, m[s[8]], m[s[9]])
		g(&v, 1, 6, 11, 12, m[s[10]], m[s[11]])
		g(&v, 2, 7, 8, 13, m[s[12]], m[s[13]])
		g(&v, 3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		v[i] ^= v[i+8]
		v[i+8] ^= cv[i]
	}
	return v
}

// chain truncates a compression result to the 8-word chaining value.
func chain(v [16]uint32) (cv [8]uint32) {
	copy(cv[:], v[:8])
	return cv
}

/* Words cross the byte boundary little-endian in both directions, regardless
of host order. */

func loadBlock(b []byte, m *[16]uint32) {
	_ = b[blockSize-1]
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
}

func loadWords8(b []byte, k *[8]uint32) {
	_ = b[KeySize-1]
	for i := range k {
		k[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
}

func storeWords(v *[16]uint32, b *[blockSize]byte) {
	for i, w := range v {
		binary.LittleEndian.PutUint32(b[i*4:], w)
	}
}
