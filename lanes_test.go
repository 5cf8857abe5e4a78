package blake3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// TestLaneAgreement verifies that the four-lane path and the scalar path
// produce bit-identical chaining values, including at chunk indices past
// 2^32 where the counter's high half comes into play.
func TestLaneAgreement(t *testing.T) {
	t.Parallel()
	keys := [][8]uint32{iv, {}, {0xdeadbeef, 1, 2, 3, 4, 5, 6, 7}}
	indices := []uint64{0, 1, 4, 1020, 1 << 31, 1<<32 - 2, 1 << 40, 1<<54 - 4}
	flags := []uint32{0, flagKeyedHash, flagDeriveKeyMaterial}

	p := make([]byte, 4*chunkSize)
	for trial := 0; trial < 8; trial++ {
		rand.Read(p)
		key := keys[trial%len(keys)]
		f := flags[trial%len(flags)]
		for _, index := range indices {
			var batched [4][8]uint32
			compressChunks4(p, &key, index, f, &batched)
			for l := 0; l < 4; l++ {
				serial := compressChunk(p[l*chunkSize:], &key, index+uint64(l), f)
				require.Equal(t, serial, batched[l],
					"lane %d, index %d, trial %d", l, index, trial)
			}
		}
	}
}

// TestLanePipeline compares whole digests between the batching write path
// and a series of 37-byte writes, each too short ever to batch.
func TestLanePipeline(t *testing.T) {
	t.Parallel()
	for _, size := range []int{0, 1, 63, 64, 65, 1023, 1024, 1025, 4095, 4096,
		4097, 16384, 65537} {
		in := make([]byte, size)
		rand.Read(in)

		batched := New()
		batched.Write(in)

		serial := New()
		for off := 0; off < len(in); off += 37 {
			end := off + 37
			if end > len(in) {
				end = len(in)
			}
			serial.Write(in[off:end])
		}
		require.Equal(t, serial.Sum(nil), batched.Sum(nil), "size %d", size)
	}
}

// TestSchedule rederives the message schedule from its permutation and
// confirms the precomputed table.
func TestSchedule(t *testing.T) {
	t.Parallel()
	perm := [16]uint8{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}
	row := [16]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	for r := 0; r < len(schedule); r++ {
		require.Equal(t, row, schedule[r], "round %d", r)
		var next [16]uint8
		for i := range next {
			next[i] = row[perm[i]]
		}
		row = next
	}
}
