package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop password bytes read from the terminal once copied.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
