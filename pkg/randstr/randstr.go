package randstr

import (
	"math/rand"
)

// Generator produces random strings over a fixed alphabet.
type Generator struct {
	letters []byte
}

func New(letters []byte) *Generator {
	return &Generator{letters: letters}
}

func (g *Generator) GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = g.letters[rand.Intn(len(g.letters))]
	}

	return string(b)
}
