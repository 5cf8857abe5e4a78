package blake3

import (
	"errors"
	"io"
	"math"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Extendable output. The root node is recompressed once per 64-byte output
// block with the block's index as the counter, so any region of the output
// stream can be produced without computing the bytes before it.

// An OutputReader streams the extendable output of a finalized hash. It
// implements io.Reader and io.Seeker over a stream of 2^64-1 bytes.
type OutputReader struct {
	n     node
	block [blockSize]byte
	off   uint64
}

// Read fills p from the output stream. It returns len(p) and a nil error
// unless the read would pass the end of the stream.
func (r *OutputReader) Read(p []byte) (int, error) {
	if r.off == math.MaxUint64 {
		return 0, io.EOF
	}
	if rem := math.MaxUint64 - r.off; uint64(len(p)) > rem {
		p = p[:rem]
	}

	read := len(p)
	for len(p) > 0 {
		if r.off%blockSize == 0 {
			r.n.counter = r.off / blockSize
			v := compress(&r.n.cv, &r.n.m, r.n.counter, r.n.blockLen, r.n.flags)
			storeWords(&v, &r.block)
		}
		n := copy(p, r.block[r.off%blockSize:])
		p = p[n:]
		r.off += uint64(n)
	}
	return read, nil
}

// Seek repositions the stream. Positions are absolute offsets into the
// output; seeking is cheap because only the containing block is recomputed.
func (r *OutputReader) Seek(offset int64, whence int) (int64, error) {
	off := r.off
	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return 0, errors.New("blake3: seek before start of stream")
		}
		off = uint64(offset)
	case io.SeekCurrent:
		if offset < 0 && uint64(-offset) > off {
			return 0, errors.New("blake3: seek before start of stream")
		}
		off += uint64(offset)
	case io.SeekEnd:
		/* The stream end is 2^64-1, the largest offset a uint64 holds. */
		off = math.MaxUint64 + uint64(offset)
	default:
		return 0, errors.New("blake3: invalid whence")
	}

	r.off = off
	if off%blockSize != 0 {
		r.n.counter = off / blockSize
		v := compress(&r.n.cv, &r.n.m, r.n.counter, r.n.blockLen, r.n.flags)
		storeWords(&v, &r.block)
	}
	/* Offsets past 2^63-1 cannot be represented in the return value. */
	return int64(off), nil
}
