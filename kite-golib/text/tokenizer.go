package text

import (
	"regexp"
	"strings"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"golang.org/x/text/unicode/norm"
)

var (
	// WordSplitRegexp matches the punctuation characters that are split
	// off into tokens of their own.
	WordSplitRegexp = regexp.MustCompile(`[.,!?"':;)(]`)

	// DigitRegexp matches a single digit. The default tokenizer leaves digits
	// alone; DigitTokenizer uses this to normalize them.
	DigitRegexp = regexp.MustCompile(`\d`)
)

// Tokens represents a slice of strings
type Tokens []string

// Tokenizer is generic interface for an object which breaks an input
// line into Tokens. Implementations must be pure.
type Tokenizer interface {
	Tokenize(string) Tokens
}

// TokenizerFunc adapts a plain function to the Tokenizer interface
type TokenizerFunc func(string) Tokens

// Tokenize implements Tokenizer
func (f TokenizerFunc) Tokenize(s string) Tokens {
	return f(s)
}

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Processor runs a base tokenizer and then a list of text processing rules over its output.
type Processor struct {
	base    Tokenizer
	filters []TokenFunc
}

// NewProcessor returns a Tokenizer applying funcs, in order, to the tokens produced by base.
func NewProcessor(base Tokenizer, funcs ...TokenFunc) *Processor {
	return &Processor{
		base:    base,
		filters: append([]TokenFunc(nil), funcs...),
	}
}

// Tokenize implements Tokenizer
func (p *Processor) Tokenize(s string) Tokens {
	ts := p.base.Tokenize(s)
	for _, fn := range p.filters {
		ts = fn(ts)
	}
	return ts
}

// PunctTokenizer is the default tokenizer. It lower cases ASCII letters, trims the
// line, splits it on whitespace, and then splits every punctuation
// character matched by WordSplitRegexp off into its own token.
// Examples:
// "Hello, world!" -> {"hello", ",", "world", "!"}
// "it's" -> {"it", "'", "s"}
type PunctTokenizer struct{}

// Tokenize implements Tokenizer
func (PunctTokenizer) Tokenize(line string) Tokens {
	var tokens Tokens
	for _, piece := range strings.Fields(lowerASCII(line)) {
		tokens = splitPunct(piece, tokens)
	}
	return tokens
}

// lowerASCII lower cases A-Z only. Other bytes, including invalid UTF-8, are kept
// as is so distinct inputs stay distinct tokens.
func lowerASCII(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return 'A' <= r && r <= 'Z' })
	if i < 0 {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// splitPunct appends the pieces of w, split around punctuation, to tokens.
// Empty strings are never produced.
func splitPunct(w string, tokens Tokens) Tokens {
	var last int
	for _, loc := range WordSplitRegexp.FindAllStringIndex(w, -1) {
		if loc[0] > last {
			tokens = append(tokens, w[last:loc[0]])
		}
		tokens = append(tokens, w[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(w) {
		tokens = append(tokens, w[last:])
	}
	return tokens
}

// SpaceTokenizer tokenizes on whitespace only, preserving case and punctuation.
type SpaceTokenizer struct{}

// Tokenize satisfies the Tokenizer interface.
func (SpaceTokenizer) Tokenize(line string) Tokens {
	return Tokens(strings.Fields(line))
}

// NormalizeDigits replaces every digit in every token with "0"
func NormalizeDigits(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = DigitRegexp.ReplaceAllString(t, "0")
	}
	return ts
}

// NormalizeUnicode applies NFKC normalization to every token
func NormalizeUnicode(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = norm.NFKC.String(t)
	}
	return ts
}

// Lower converts all tokens to lower case
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

var (
	// Default is the tokenizer used when callers do not supply one
	Default Tokenizer = PunctTokenizer{}

	// DigitTokenizer is PunctTokenizer with every digit collapsed to "0", so
	// "3 apples" and "7 apples" share a vocabulary entry.
	DigitTokenizer Tokenizer = NewProcessor(PunctTokenizer{}, NormalizeDigits)

	// NFKCTokenizer normalizes the line to NFKC before PunctTokenizer runs, so
	// full width punctuation is split off like its ascii form.
	NFKCTokenizer Tokenizer = TokenizerFunc(func(line string) Tokens {
		return PunctTokenizer{}.Tokenize(norm.NFKC.String(line))
	})
)

// TokenizerNames lists the names accepted by ByName
var TokenizerNames = []string{"punct", "digits", "space", "nfkc"}

// ByName returns the tokenizer registered under name. The empty name selects Default.
func ByName(name string) (Tokenizer, error) {
	switch name {
	case "", "punct":
		return Default, nil
	case "digits":
		return DigitTokenizer, nil
	case "space":
		return SpaceTokenizer{}, nil
	case "nfkc":
		return NFKCTokenizer, nil
	}
	return nil, errors.Errorf("unknown tokenizer %q, expected one of %s", name, strings.Join(TokenizerNames, ", "))
}
