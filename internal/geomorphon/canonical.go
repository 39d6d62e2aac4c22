package geomorphon

import (
	"sort"
	"sync"
)

// Canonical returns the smallest code reachable from code by rotating the
// eight digits around the ring, optionally after reversing them. Patterns
// that differ only in which ray is called North, or by a mirror of the
// compass, describe the same landform and share a canonical code.
//
// Only the eight least significant base-3 digits of code are considered.
func Canonical(code int) int {
	var fwd, rev [NumDirections]int
	for i := 0; i < NumDirections; i++ {
		digit := code % 3
		fwd[i] = digit
		rev[NumDirections-1-i] = digit
		code /= 3
	}

	best := -1
	for shift := 0; shift < NumDirections; shift++ {
		fwdCode, revCode := 0, 0
		power := 1
		for i := 0; i < NumDirections; i++ {
			src := (i - shift + NumDirections) % NumDirections
			fwdCode += fwd[src] * power
			revCode += rev[src] * power
			power *= 3
		}
		if best < 0 || fwdCode < best {
			best = fwdCode
		}
		if revCode < best {
			best = revCode
		}
	}
	return best
}

var (
	canonicalOnce  sync.Once
	canonicalTable [MaxCode + 1]uint16
)

// lookupCanonical is Canonical through a table built on first use.
func lookupCanonical(code int) int {
	canonicalOnce.Do(func() {
		for c := 0; c <= MaxCode; c++ {
			canonicalTable[c] = uint16(Canonical(c))
		}
	})
	return int(canonicalTable[code])
}

// CanonicalCodes returns every distinct canonical code in ascending order.
func CanonicalCodes() []int {
	seen := make(map[int]struct{})
	for c := 0; c <= MaxCode; c++ {
		seen[lookupCanonical(c)] = struct{}{}
	}
	codes := make([]int, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
