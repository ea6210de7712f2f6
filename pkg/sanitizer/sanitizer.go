package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeKeyword prepares an enum-like setting such as a store backend or
// reservation mode for comparison against its lowercase constants.
func NormalizeKeyword(keyword string) string {
	p := Pipeline{
		TrimAndNormalize,
		lower,
	}
	return p.Apply(keyword)
}
