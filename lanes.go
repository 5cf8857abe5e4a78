package blake3

import (
	"encoding/binary"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// A four-lane data-parallel form of the compression function. Four complete
// chunks travel together, one per lane, with the 16-word state transposed
// into sixteen lane vectors so the quarter-round advances all four chunks at
// once. Lane order is chunk order, so the tree driver can push the returned
// chaining values exactly as if the chunks had been hashed one at a time.

type lane [4]uint32

func broadcast(w uint32) lane { return lane{w, w, w, w} }

// g4 is the lane-parallel quarter-round; it mirrors g word for word.
func g4(v *[16]lane, a, b, c, d int, mx, my *lane) {
	for l := 0; l < 4; l++ {
		va, vb, vc, vd := v[a][l], v[b][l], v[c][l], v[d][l]
		va += vb + mx[l]
		vd = bits.RotateLeft32(vd^va, -16)
		vc += vd
		vb = bits.RotateLeft32(vb^vc, -12)
		va += vb + my[l]
		vd = bits.RotateLeft32(vd^va, -8)
		vc += vd
		vb = bits.RotateLeft32(vb^vc, -7)
		v[a][l], v[b][l], v[c][l], v[d][l] = va, vb, vc, vd
	}
}

// compressChunks4 reduces four consecutive complete chunks to their chaining
// values. p holds at least 4*chunkSize bytes and index is the chunk index of
// lane 0; the counter is per-lane, everything else is uniform across lanes.
// Results are bit-identical to four calls of compressChunk.
func compressChunks4(p []byte, key *[8]uint32, index uint64, flags uint32, out *[4][8]uint32) {
	_ = p[4*chunkSize-1]

	var cv [8]lane
	for i := range cv {
		cv[i] = broadcast(key[i])
	}
	var ctrLo, ctrHi lane
	for l := 0; l < 4; l++ {
		c := index + uint64(l)
		ctrLo[l] = uint32(c)
		ctrHi[l] = uint32(c >> 32)
	}

	var m [16]lane
	for b := 0; b < blocksPerChunk; b++ {
		for w := 0; w < 16; w++ {
			off := b*blockSize + w*4
			m[w] = lane{
				binary.LittleEndian.Uint32(p[off:]),
				binary.LittleEndian.Uint32(p[chunkSize+off:]),
				binary.LittleEndian.Uint32(p[2*chunkSize+off:]),
				binary.LittleEndian.Uint32(p[3*chunkSize+off:]),
			}
		}
		f := flags
		switch b {
		case 0:
			f |= flagChunkStart
		case blocksPerChunk - 1:
			f |= flagChunkEnd
		}

		var v [16]lane
		copy(v[:8], cv[:])
		for i := 0; i < 4; i++ {
			v[8+i] = broadcast(iv[i])
		}
		v[12], v[13] = ctrLo, ctrHi
		v[14], v[15] = broadcast(blockSize), broadcast(f)

		for r := range schedule {
			s := &schedule[r]
			g4(&v, 0, 4, 8, 12, &m[s[0]], &m[s[1]])
			g4(&v, 1, 5, 9, 13, &m[s[2]], &m[s[3]])
			g4(&v, 2, 6, 10, 14, &m[s[4]], &m[s[5]])
			g4(&v, 3, 7, 11, 15, &m[s[6]], &m[s[7]])

			g4(&v, 0, 5, 10, 15, &m[s[8]], &m[s[9]])
			g4(&v, 1, 6, 11, 12, &m[s[10]], &m[s[11]])
			g4(&v, 2, 7, 8, 13, &m[s[12]], &m[s[13]])
			g4(&v, 3, 4, 9, 14, &m[s[14]], &m[s[15]])
		}

		/* Only the truncated feed-forward is needed: batched chunks are
		never the root, so the upper half of the state is discarded. */
		for i := 0; i < 8; i++ {
			for l := 0; l < 4; l++ {
				cv[i][l] = v[i][l] ^ v[i+8][l]
			}
		}
	}

	for l := 0; l < 4; l++ {
		for i := 0; i < 8; i++ {
			out[l][i] = cv[i][l]
		}
	}
}
