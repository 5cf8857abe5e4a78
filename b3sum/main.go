package main

import (
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/p7r0x7/blake3"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This program is a command-line interface for blake3: It handles various flags and an unlimited
// number of arguments, processing files, strings, or STDIN as required by the operator, in any of
// the function's three modes.

const n = "\n"
const success, failure = 0, 1

var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu and quietly exits if no non-flag arguments are given. To consistently
// correctly render this menu in most terminal windows, its content should be no wider than 80
// columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "b3sum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "The BLAKE3 cryptographic hash function.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bKt] [-d <string>] [-l <uint>] [--quiet|no-codes]"+n,
		spaces, "[--strict|raw] -|PATH..."+n,
		spaces, "[-bKt] [-d <string>] [-l <uint>] [--quiet|no-codes]"+n,
		spaces, "[--strict|raw] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

func program() int {
	if pDebug {
		cf, _ := os.Create("cpu.prof")
		_ = pprof.StartCPUProfile(cf)
		defer pprof.StopCPUProfile()

		af, err := os.Create("allocs.prof")
		defer pprof.Lookup("allocs").WriteTo(af, 0)
		if err != nil {
			panic(err)
		}
	}

	if pHelp || NArg() == 0 {
		help()
		return success
	} else if pLength == 0 {
		panic("Output length should be at least 1 byte.")
	} else if pKeyed && pContext != "" {
		panic("Keyed hashing and key derivation are mutually exclusive.")
	}

	var digest *blake3.Hasher
	switch {
	case pKeyed:
		var key [blake3.KeySize]byte
		if _, err := io.ReadFull(os.Stdin, key[:]); err != nil {
			panic(err)
		}
		go os.Stdin.Close() /* STDIN should not be reused. */
		digest, _ = blake3.NewKeyed(key[:])
		star = "(*)"
	case pContext != "":
		digest = blake3.NewDeriveKey(pContext)
	default:
		digest = blake3.New()
	}

	for i, target := range Args() {
		if i > 0 {
			digest.Reset()
		}
		start, delta := time.Now(), ""

		if pString {
			/* hash.Hash does not implement (*Writer).WriteString. */
			if _, err := digest.Write(strToBytes(target)); err != nil {
				warn(err)
				continue
			}
		} else if target == "-" || target == os.Stdin.Name() {
			if _, err := io.Copy(digest, os.Stdin); err != nil {
				warn(err)
				continue
			}
			go os.Stdin.Close() /* STDIN should not be reused. */
		} else {
			file, err := os.Open(target)
			if err != nil {
				warn(err)
				continue
			}
			_, err = io.Copy(digest, file)
			go file.Close()
			if err != nil {
				warn(err)
				continue
			}
		}

		if pTime {
			d := time.Since(start)
			if d.Microseconds() > 99 {
				d = d.Truncate(10 * time.Microsecond)
			}
			delta = " (" + d.String() + ")"
		}

		if pRaw {
			io.CopyN(os.Stdout, digest.XOF(), int64(pLength))
			continue
		}
		if !pQuiet {
			Print(star, yell)
		}
		var enc io.Writer = hex.NewEncoder(os.Stdout)
		if pBase64 {
			enc = base64.NewEncoder(base64.StdEncoding, os.Stdout)
		}
		io.CopyN(enc, digest.XOF(), int64(pLength))
		if pBase64 {
			enc.(io.Closer).Close()
		}

		if pQuiet {
			os.Stdout.WriteString(n)
		} else if pString {
			Print(zero, `  "`, target, `"`, zero, delta, n)
		} else if pNoCodes {
			Print(`  `, filepath.Clean(target), delta, n)
		} else {
			Print(zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	}

	if !(pQuiet || pRaw) {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// strToBytes converts any string into a byte slice without allocating memory; as discussed in
// https://stackoverflow.com/a/69231355, this practice is safe so long as the underlying memory is
// not modified during its lifetime.
func strToBytes(s string) []byte {
	const MaxInt32 = 1<<31 - 1
	return (*[MaxInt32]byte)(unsafe.Pointer((*reflect.StringHeader)(
		unsafe.Pointer(&s)).Data))[: len(s)&MaxInt32 : len(s)&MaxInt32]
}

func warn(err ...interface{}) {
	if pStrict {
		panic(err)
	}
	warnings++
}
