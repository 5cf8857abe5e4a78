package blake3

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Fixed parameters of the BLAKE3 compression function: the initialization
// vector shared with BLAKE2s/SHA-256, the sizes that shape the Merkle tree,
// the domain-separation flags, and the precomputed message schedule.

const (
	// Size is the default digest length in bytes; longer or shorter outputs
	// are available through Sum and OutputReader.
	Size = 32
	// KeySize is the exact key length in bytes accepted by NewKeyed.
	KeySize = 32

	blockSize      = 64
	blocksPerChunk = 16
	chunkSize      = blockSize * blocksPerChunk

	/* The deepest possible chaining-value stack: 2^54 chunks span 2^64
	bytes of input, more than a 64-bit byte length can describe. */
	maxStackDepth = 54
)

const (
	flagChunkStart = 1 << iota
	flagChunkEnd
	flagParent
	flagRoot
	flagKeyedHash
	flagDeriveKeyContext
	flagDeriveKeyMaterial
)

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

/* Row 0 is the identity; each later row is the previous one permuted by
[2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8]. No permutation
follows the seventh round, so only seven rows are ever needed. */
var schedule = [7][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8},
	{3, 4, 10, 12, 13, 2, 7, 14, 6, 5, 9, 0, 11, 15, 8, 1},
	{10, 7, 12, 9, 14, 3, 13, 15, 4, 0, 11, 2, 5, 8, 1, 6},
	{12, 13, 9, 11, 15, 10, 14, 8, 7, 2, 5, 3, 0, 1, 6, 4},
	{9, 14, 11, 5, 8, 12, 15, 1, 13, 3, 0, 10, 2, 6, 4, 7},
	{11, 15, 5, 0, 1, 9, 8, 6, 14, 10, 2, 12, 3, 4, 7, 13},
}
