//go:build !amd64

package simd

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// On non-AMD64 platforms, this function uses an optimized pure Go implementation
// with SWAR (SIMD Within A Register) technique, which processes 8 bytes at a time
// using uint64 bitwise operations.
//
// Performance characteristics (pure Go SWAR):
//   - Small inputs (< 8 bytes): byte-by-byte comparison
//   - Medium/large inputs: 2-5x faster than naive byte-by-byte
//   - Not as fast as AVX2, but significantly better than simple loops
//
// See memchrGeneric for implementation details.
func Memchr(haystack []byte, needle byte) int {
	return memchrGeneric(haystack, needle)
}
