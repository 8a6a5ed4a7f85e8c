package score

import (
	"math"
	"unicode/utf8"

	"github.com/cognicore/hanzimine/pkg/hanzimine/freq"
)

// Cohesion measures how strongly the characters of word stick together.
//
//	cohesion_l = (f(word) / f(first char)) ^ (1 / (L-1))
//	cohesion_r = (f(word) / f(last char))  ^ (1 / (L-1))
//	cohesion   = sqrt(cohesion_l * cohesion_r)
//	cohesion_s = (cohesion_l + cohesion_r) / 2
//
// Words shorter than minWindow (or empty) score 0 on every field. A side
// scores 0 when the word or its boundary character was never counted.
func Cohesion(word string, tokens, unigrams freq.Counter, minWindow int) (l, r, c, s float64) {
	n := utf8.RuneCountInString(word)
	if word == "" || n < minWindow || n < 2 {
		return 0, 0, 0, 0
	}

	first, _ := utf8.DecodeRuneInString(word)
	last, _ := utf8.DecodeLastRuneInString(word)
	whole := float64(tokens[word])
	exp := 1 / float64(n-1)

	l = ratioPow(whole, float64(unigrams[string(first)]), exp)
	r = ratioPow(whole, float64(unigrams[string(last)]), exp)
	c = math.Sqrt(l * r)
	s = (l + r) / 2
	return l, r, c, s
}

func ratioPow(num, den, exp float64) float64 {
	if num == 0 || den == 0 {
		return 0
	}
	return math.Pow(num/den, exp)
}
