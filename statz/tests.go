package main

import (
	"encoding/binary"
	. "fmt"
	"math/big"
	"math/rand"

	"github.com/p7r0x7/blake3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

var (
	iBytes   = make([]byte, 4)
	integers = map[uint32]*big.Int{}
	random   = map[uint32]*big.Int{}
)

func meanBias(hashes map[uint32]*big.Int, ln int) float64 {
	tally := make([]int32, ln)
	for i := range hashes {
		for i2 := ln - 1; i2 >= 0; i2-- {
			if hashes[i].Bit(i2) == 1 {
				tally[i2]++
			}
		}
	}
	var total int32
	for i := range tally {
		tally[i] = tally[i] - int32(ints>>1)
		if tally[i] < 0 {
			total += tally[i] * -1
		} else {
			total += tally[i]
		}
	}
	return (float64(total) / float64(ln)) / float64(ints>>1) * 100
}

func b3Test() {
	const testLength = 256
	msg := make([]byte, 1<<10)
	for i := ints; i > 0; i-- {
		binary.BigEndian.PutUint32(iBytes, i)
		integers[i] = big.NewInt(0).SetBytes(blake3.Sum(iBytes, testLength/8))
		rand.Read(msg)
		random[i] = big.NewInt(0).SetBytes(blake3.Sum(msg, testLength/8))
	}
	Printf("Integer input Monobit test:  %5.3f%%\n", meanBias(integers, testLength))
	Printf("Random input Monobit test:   %5.3f%%\n", meanBias(random, testLength))
}
