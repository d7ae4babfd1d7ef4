package server

import (
	"math/rand/v2"
	"strings"
)

const gameCodeLength = 6

// Alphabet for game codes, excluding look-alike characters (0/O, 1/I).
const gameCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// randomGameCode draws one candidate code. Uniqueness is the hub's job.
func randomGameCode(rng *rand.Rand) string {
	var sb strings.Builder
	for i := 0; i < gameCodeLength; i++ {
		sb.WriteByte(gameCodeAlphabet[rng.IntN(len(gameCodeAlphabet))])
	}
	return sb.String()
}

// ValidGameCode reports whether code has the right length and alphabet.
func ValidGameCode(code string) bool {
	if len(code) != gameCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(gameCodeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}
