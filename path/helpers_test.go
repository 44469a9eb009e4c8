package path_test

import "unsafe"

// unsafeData exposes the backing storage of s so tests can
// check whether two strings share memory.
func unsafeData(s string) *byte {
	return unsafe.StringData(s)
}
