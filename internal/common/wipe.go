// Package common holds small helpers shared by the client packages.
package common

// WipeByteArray zeroes b. Use it on password buffers once they are no longer
// needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
