package utils

import "math/rand"

const shortIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewShortID returns a 7-char base36 id for saved itineraries. Not globally
// unique; a collision overwrites the older record, which is acceptable here.
func NewShortID() string {
	b := make([]byte, 7)
	for i := range b {
		b[i] = shortIDAlphabet[rand.Intn(len(shortIDAlphabet))]
	}
	return string(b)
}
