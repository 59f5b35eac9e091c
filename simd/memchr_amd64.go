//go:build amd64

// Package simd provides byte-searching primitives built on SWAR (SIMD Within
// A Register) pure Go implementations. On x86-64 it detects AVX2 and routes
// large inputs through separate dispatch functions, which run the same pure
// Go code; the package contains no assembly.
//
// The primary use case is accelerating regex engine prefilters by quickly
// finding literal bytes/substrings in large text buffers.
package simd

import "golang.org/x/sys/cpu"

// CPU feature detection flags set at package initialization.
// These are used to dispatch to the fastest available implementation.
var (
	// hasAVX2 indicates whether the CPU supports AVX2 instructions (256-bit SIMD).
	// AVX2 was introduced in Intel Haswell (2013) and AMD Excavator (2015).
	hasAVX2 = cpu.X86.HasAVX2
)

// memchrAVX2 is the dispatch target for inputs of 32 bytes or more on
// AVX2-capable CPUs. The package carries no assembly, so it runs the SWAR
// implementation in memchrGeneric.
func memchrAVX2(haystack []byte, needle byte) int { return memchrGeneric(haystack, needle) }

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// This function is equivalent to bytes.IndexByte. Every input size runs the
// SWAR implementation in memchrGeneric (8 bytes per iteration); no vector
// instructions are used.
//
// Example:
//
//	haystack := []byte("hello world")
//	pos := simd.Memchr(haystack, 'o')
//	if pos != -1 {
//	    fmt.Printf("Found 'o' at position %d\n", pos) // Output: Found 'o' at position 4
//	}
//
// Example with not found:
//
//	haystack := []byte("hello world")
//	pos := simd.Memchr(haystack, 'x')
//	if pos == -1 {
//	    fmt.Println("Character 'x' not found")
//	}
func Memchr(haystack []byte, needle byte) int {
	// Empty check
	if len(haystack) == 0 {
		return -1
	}

	// Use AVX2 implementation if available and input is large enough to amortize overhead.
	// For small inputs (< 32 bytes), the setup cost of SIMD outweighs the benefits.
	if hasAVX2 && len(haystack) >= 32 {
		return memchrAVX2(haystack, needle)
	}

	// Fallback to generic implementation for small inputs or non-AVX2 CPUs
	return memchrGeneric(haystack, needle)
}
