package blake3

import (
	"testing"

	"github.com/aead/chacha20/chacha"
	zeebo "github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// In-package benchmarks against neighboring primitives; the statz program
// renders the fuller comparison table across input sizes.

func BenchmarkSum256(b *testing.B) {
	msg := make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum256(msg)
	}
}

func BenchmarkSum256Large(b *testing.B) {
	msg := make([]byte, 1<<20)
	b.SetBytes(1 << 20)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum256(msg)
	}
}

func BenchmarkHasher(b *testing.B) {
	h, msg := New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
		h.Reset()
	}
}

func BenchmarkZeeboBlake3(b *testing.B) {
	h, msg := zeebo.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
		h.Reset()
	}
}

func BenchmarkXXH3(b *testing.B) {
	h, msg := xxh3.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
		h.Reset()
	}
}

/* Output-side rates: the extendable output against a raw ChaCha20 keystream,
both producing 64KiB per operation. */

func BenchmarkXOF(b *testing.B) {
	h := New()
	h.Write(make([]byte, 1<<10))
	out := make([]byte, 64<<10)
	b.SetBytes(64 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.XOF().Read(out)
	}
}

func BenchmarkChaCha20Stream(b *testing.B) {
	var key [32]byte
	var nonce [12]byte
	out := make([]byte, 64<<10)
	b.SetBytes(64 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chacha.XORKeyStream(out, out, nonce[:], key[:], 20)
	}
}
