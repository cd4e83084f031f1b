package content

import (
	"errors"
	"unicode/utf16"
)

// ErrEmptyPool is returned when a pick is attempted against a pool with
// no entries. Registry validation makes this unreachable for built-in
// pools; callers supplying their own must handle it.
var ErrEmptyPool = errors.New("content: empty pool")

// Hash folds a string into a non-negative int using the classic
// h = h*31 + c accumulation over UTF-16 code units with 32-bit
// wraparound. The same string always yields the same value on every
// platform, which is what makes all generated content reproducible.
//
// Surrogate pairs count as two code units, matching how the seed
// strings were hashed historically. Do not swap this for FNV or
// maphash: every stored seed in the wild depends on these exact values.
func Hash(s string) int {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// Pick returns the pool entry at seed modulo pool size.
func Pick(pool []string, seed int) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	return pool[poolIndex(seed, len(pool))], nil
}

// Rotate returns a copy of the pool starting at seed modulo pool size
// and wrapping around. An empty pool rotates to nil.
func Rotate(pool []string, seed int) []string {
	n := len(pool)
	if n == 0 {
		return nil
	}
	start := poolIndex(seed, n)
	out := make([]string, 0, n)
	out = append(out, pool[start:]...)
	out = append(out, pool[:start]...)
	return out
}

// SampleDeterministic returns up to count entries drawn from the pool
// without repeats, rotated by the seed. The same seed produces the same
// sample; nearby seeds produce visibly different ones.
func SampleDeterministic(pool []string, seed, count int) []string {
	if count <= 0 {
		return nil
	}
	rotated := Rotate(pool, seed)
	if count >= len(rotated) {
		return rotated
	}
	return rotated[:count]
}

// poolIndex maps a seed onto a valid slice index. Seeds are non-negative
// in practice; negatives are normalized rather than allowed to panic.
func poolIndex(seed, n int) int {
	i := seed % n
	if i < 0 {
		i += n
	}
	return i
}
