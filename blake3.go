// Package blake3 implements the BLAKE3 extendable-output hash function in
// its plain, keyed, and key-derivation modes. The implementation is pure Go:
// a scalar compression function, a four-lane data-parallel path for runs of
// complete chunks, and an incremental Merkle-tree driver that produces the
// same digest no matter how input is split across writes.
package blake3

import (
	"errors"
	"hash"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the incremental hasher and the one-shot entry points.

// ErrKeySize is returned by NewKeyed and KeyedSum when the provided key is
// not exactly KeySize bytes.
var ErrKeySize = errors.New("blake3: key must be exactly 32 bytes")

// A Hasher computes a BLAKE3 digest incrementally. It implements the
// standard hash.Hash interface with a 32-byte Size; output of any other
// length is available through XOF and Sum's package-level counterparts.
//
// A Hasher owns its buffer and stack outright: methods must not be called
// concurrently on one value, but distinct values never interfere.
type Hasher struct {
	key    [8]uint32
	flags  uint32
	buf    [chunkSize]byte
	bufLen int
	chunks uint64 // completed chunks, which is also the next chunk's index
	stack  [maxStackDepth][8]uint32
	depth  int
}

var _ hash.Hash = (*Hasher)(nil)

// New returns a Hasher for the plain hash mode.
func New() *Hasher {
	return &Hasher{key: iv}
}

// NewKeyed returns a Hasher for the keyed (MAC/PRF) mode. The key must be
// exactly KeySize bytes.
func NewKeyed(key []byte) (*Hasher, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	h := &Hasher{flags: flagKeyedHash}
	loadWords8(key, &h.key)
	return h, nil
}

// NewDeriveKey returns a Hasher for the key-derivation mode: material
// written to it is expanded under a key derived from context. The context
// should be a hardcoded, globally unique string; it is hashed once here and
// never retained.
func NewDeriveKey(context string) *Hasher {
	c := Hasher{key: iv, flags: flagDeriveKeyContext}
	c.Write([]byte(context))
	var sub [KeySize]byte
	c.XOF().Read(sub[:])

	h := &Hasher{flags: flagDeriveKeyMaterial}
	loadWords8(sub[:], &h.key)
	return h
}

// Write absorbs p into the hash state. It never fails and never retains p.
func (h *Hasher) Write(p []byte) (int, error) {
	lenp := len(p)
	for len(p) > 0 {
		/* A full buffered chunk is only reduced once at least one more byte
		is known to follow it; until then it could still be the root. */
		if h.bufLen == chunkSize {
			h.pushChunk(compressChunk(h.buf[:], &h.key, h.chunks, h.flags))
			h.bufLen = 0
		}

		if h.bufLen == 0 {
			for len(p) > 4*chunkSize {
				var cvs [4][8]uint32
				compressChunks4(p, &h.key, h.chunks, h.flags, &cvs)
				h.pushChunk(cvs[0])
				h.pushChunk(cvs[1])
				h.pushChunk(cvs[2])
				h.pushChunk(cvs[3])
				p = p[4*chunkSize:]
			}
			for len(p) > chunkSize {
				h.pushChunk(compressChunk(p, &h.key, h.chunks, h.flags))
				p = p[chunkSize:]
			}
		}

		n := copy(h.buf[h.bufLen:], p)
		h.bufLen += n
		p = p[n:]
	}
	return lenp, nil
}

// pushChunk appends one chunk's chaining value to the subtree stack. Each
// trailing zero-bit of the new chunk total marks a completed pair of
// same-size subtrees, which merge immediately; afterwards the stack holds
// exactly one entry per set bit of the total, deepest subtree at the base.
func (h *Hasher) pushChunk(cv [8]uint32) {
	h.chunks++
	for total := h.chunks; total&1 == 0; total >>= 1 {
		h.depth--
		cv = parentCV(&h.stack[h.depth], &cv, &h.key, h.flags)
	}
	h.stack[h.depth] = cv
	h.depth++
}

// tailNode reruns the buffered final chunk, deferring its last block as a
// node. An input of zero bytes is a single empty chunk: one zero-length
// block carrying both the start and end flags.
func (h *Hasher) tailNode() node {
	buf, flags := h.buf[:h.bufLen], h.flags|flagChunkStart
	cv := h.key
	var m [16]uint32
	for len(buf) > blockSize {
		loadBlock(buf, &m)
		cv = chain(compress(&cv, &m, h.chunks, blockSize, flags))
		flags = h.flags
		buf = buf[blockSize:]
	}

	var last [blockSize]byte
	copy(last[:], buf)
	loadBlock(last[:], &m)
	return node{cv, m, h.chunks, uint32(len(buf)), flags | flagChunkEnd}
}

// rootNode folds the tail chunk up through the stacked subtree roots and
// marks the outermost compression as the root of the whole tree. The state
// itself is left untouched, which is what makes finalization repeatable.
func (h *Hasher) rootNode() node {
	n := h.tailNode()
	for i := h.depth - 1; i >= 0; i-- {
		cv := n.chainingValue()
		n = parentNode(&h.stack[i], &cv, &h.key, h.flags)
	}
	n.flags |= flagRoot
	return n
}

// Sum appends the default 32-byte digest to b without consuming the state.
func (h *Hasher) Sum(b []byte) []byte {
	var d [Size]byte
	h.XOF().Read(d[:])
	return append(b, d[:]...)
}

// XOF returns a reader over the extendable output of the data written so
// far. The reader is a snapshot: later writes to h do not affect it, and
// any number of readers may be taken from the same state.
func (h *Hasher) XOF() *OutputReader {
	return &OutputReader{n: h.rootNode()}
}

// Reset restores the state produced by the Hasher's constructor, keeping
// its mode and key.
func (h *Hasher) Reset() {
	h.buf = [chunkSize]byte{}
	h.bufLen = 0
	h.chunks = 0
	h.depth = 0
}

// Clone returns an independent copy of h; either value may be written to or
// finalized without affecting the other.
func (h *Hasher) Clone() *Hasher {
	c := *h
	return &c
}

// Size returns the default digest length, 32 bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the compression function's block length, 64 bytes.
func (h *Hasher) BlockSize() int { return blockSize }

// Sum256 returns the plain BLAKE3 digest of msg.
func Sum256(msg []byte) (out [32]byte) {
	h := New()
	h.Write(msg)
	h.XOF().Read(out[:])
	return out
}

// Sum512 returns the plain BLAKE3 output of msg extended to 64 bytes.
func Sum512(msg []byte) (out [64]byte) {
	h := New()
	h.Write(msg)
	h.XOF().Read(out[:])
	return out
}

// Sum returns the first n bytes of the plain BLAKE3 output of msg.
func Sum(msg []byte, n int) []byte {
	h := New()
	h.Write(msg)
	out := make([]byte, n)
	h.XOF().Read(out)
	return out
}

// KeyedSum returns the first n bytes of the keyed BLAKE3 output of msg.
func KeyedSum(key, msg []byte, n int) ([]byte, error) {
	h, err := NewKeyed(key)
	if err != nil {
		return nil, err
	}
	h.Write(msg)
	out := make([]byte, n)
	h.XOF().Read(out)
	return out, nil
}

// DeriveKey derives n bytes of key material from material, domain-separated
// by context.
func DeriveKey(context string, material []byte, n int) []byte {
	h := NewDeriveKey(context)
	h.Write(material)
	out := make([]byte, n)
	h.XOF().Read(out)
	return out
}
