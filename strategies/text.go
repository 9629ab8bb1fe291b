package strategies

import (
	"iter"
	"math/rand/v2"

	"github.com/quickmorph/morph"
)

// Text returns a strategy producing string templates over printable
// ASCII.
func Text() morph.Strategy {
	return &text{name: "text"}
}

type text struct {
	name string
}

var _ morph.Strategy = (*text)(nil)

// runeSimplicity orders runes for shrinking: '0' is the simplest,
// then runes by distance from it, the higher codepoint winning ties.
func runeSimplicity(c rune) int64 {
	d := int64(c) - '0'
	if d < 0 {
		return -2*d + 1
	}
	return 2 * d
}

// DrawParameter picks the geometric stop probability for the length.
func (s *text) DrawParameter(r *rand.Rand) any {
	return 0.1 + 0.8*r.Float64()
}

// DrawTemplate draws a geometric-length string of printable ASCII.
func (s *text) DrawTemplate(r *rand.Rand, parameter any) any {
	p := parameter.(float64)
	var runes []rune
	for r.Float64() > p && len(runes) < 1<<10 {
		runes = append(runes, rune(' '+r.IntN(95)))
	}
	return string(runes)
}

// Reify is the identity.
func (s *text) Reify(template any) any {
	return template
}

// Encode returns the template itself: strings are already canonical.
func (s *text) Encode(template any) morph.Basic {
	return template.(string)
}

// Decode accepts canonical strings only.
func (s *text) Decode(data morph.Basic) (any, error) {
	str, ok := data.(string)
	if !ok {
		return nil, morph.NewBadDataError("text.Decode", nil)
	}
	return str, nil
}

// Simplify shrinks toward "": the empty string, halves, single-rune
// drops, then per-rune movement toward '0'.
func (s *text) Simplify(r *rand.Rand, template any) iter.Seq[any] {
	str := template.(string)
	return func(yield func(any) bool) {
		if str == "" {
			return
		}
		runes := []rune(str)
		if !yield("") {
			return
		}
		if len(runes) > 1 {
			if !yield(string(runes[:len(runes)/2])) {
				return
			}
			if !yield(string(runes[len(runes)/2:])) {
				return
			}
			for i := range runes {
				dropped := make([]rune, 0, len(runes)-1)
				dropped = append(dropped, runes[:i]...)
				dropped = append(dropped, runes[i+1:]...)
				if !yield(string(dropped)) {
					return
				}
			}
		}
		for i, c := range runes {
			for _, simpler := range simplerRunes(c) {
				replaced := append([]rune(nil), runes...)
				replaced[i] = simpler
				if !yield(string(replaced)) {
					return
				}
			}
		}
	}
}

// simplerRunes proposes replacements for c, simplest first.
func simplerRunes(c rune) []rune {
	if c == '0' {
		return nil
	}
	out := []rune{'0'}
	if mid := rune((int64(c) + '0') / 2); mid != c && mid != '0' && runeSimplicity(mid) < runeSimplicity(c) {
		out = append(out, mid)
	}
	step := c - 1
	if c < '0' {
		step = c + 1
	}
	if step != '0' && runeSimplicity(step) < runeSimplicity(c) {
		out = append(out, step)
	}
	return out
}

// StrictlySimpler prefers shorter strings; at equal length runes are
// compared pointwise by simplicity, lexicographically.
func (s *text) StrictlySimpler(a, b any) bool {
	x, y := []rune(a.(string)), []rune(b.(string))
	if len(x) != len(y) {
		return len(x) < len(y)
	}
	for i := range x {
		sx, sy := runeSimplicity(x[i]), runeSimplicity(y[i])
		if sx != sy {
			return sx < sy
		}
	}
	return false
}

func (s *text) String() string {
	return s.name
}
