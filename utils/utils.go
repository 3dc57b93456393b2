package utils

import (
	"fmt"
	"github.com/twmb/murmur3"
	"runtime/debug"
)

func HashString(s string) uint64 {
	hash := murmur3.New64()
	_, err := hash.Write([]byte(s))
	if err != nil {
		panic(err)
	}
	return hash.Sum64()
}

func HashStrings(ss ...string) uint64 {
	hash := murmur3.New64()
	for _, s := range ss {
		// separator keeps ("ab", "c") and ("a", "bc") apart
		if _, err := hash.Write([]byte(s)); err != nil {
			panic(err)
		}
		if _, err := hash.Write([]byte{0}); err != nil {
			panic(err)
		}
	}
	return hash.Sum64()
}

// RecoverWithError turns a panic in the calling function into an error.
// Use as `defer utils.RecoverWithError(&err)`.
func RecoverWithError(err *error) {
	if rv := recover(); rv != nil {
		*err = fmt.Errorf("got panic: %v\n%s", rv, debug.Stack())
	}
}
