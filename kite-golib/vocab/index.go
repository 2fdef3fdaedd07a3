package vocab

import (
	"strings"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/spf13/afero"
)

// Index is the bidirectional view of a vocabulary: id -> token and token -> id.
// It is never mutated after construction and may be shared between goroutines.
type Index struct {
	tokens []string
	ids    map[string]int
}

// NewIndex builds an index over tokens, where a token's id is its position.
// If a token repeats, the last position wins.
func NewIndex(tokens []string) *Index {
	idx := &Index{
		tokens: append([]string(nil), tokens...),
		ids:    make(map[string]int, len(tokens)),
	}
	for id, tok := range idx.tokens {
		idx.ids[tok] = id
	}
	return idx
}

// Load reads the vocabulary file at path, one token per line with surrounding
// whitespace removed. A missing file is a not found error. The contents are not
// validated, call Validate for that.
func Load(fs afero.Fs, path string) (*Index, error) {
	f, err := openInput(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "vocabulary file")
	}
	defer f.Close()

	var tokens []string
	err = forEachLine(f, func(line string) error {
		tokens = append(tokens, strings.TrimSpace(line))
		return nil
	})
	if err != nil {
		return nil, errors.IOFailuref(err, "reading vocabulary %s", path)
	}

	return NewIndex(tokens), nil
}

// Len returns the number of entries
func (i *Index) Len() int {
	return len(i.tokens)
}

// Tokens returns a copy of the vocabulary in id order
func (i *Index) Tokens() []string {
	return append([]string(nil), i.tokens...)
}

// Token returns the token with the given id
func (i *Index) Token(id int) (string, bool) {
	if id < 0 || id >= len(i.tokens) {
		return "", false
	}
	return i.tokens[id], true
}

// ID returns the id of tok
func (i *Index) ID(tok string) (int, bool) {
	id, ok := i.ids[tok]
	return id, ok
}

// Validate checks the layout the builder guarantees: the special symbols at
// ids 0-3 in order, no empty entries and no repeated tokens. All problems are reported.
func (i *Index) Validate() error {
	var errs errors.Errors
	for id, sym := range StartVocab {
		switch {
		case id >= len(i.tokens):
			errs = errors.Append(errs, errors.Malformedf("missing special symbol %s at id %d", sym, id))
		case i.tokens[id] != sym:
			errs = errors.Append(errs, errors.Malformedf("expected special symbol %s at id %d, found %q", sym, id, i.tokens[id]))
		}
	}

	seen := make(map[string]int, len(i.tokens))
	for id, tok := range i.tokens {
		if tok == "" {
			errs = errors.Append(errs, errors.Malformedf("empty token at id %d", id))
			continue
		}
		if prev, ok := seen[tok]; ok {
			errs = errors.Append(errs, errors.Malformedf("token %q at id %d repeats id %d", tok, id, prev))
			continue
		}
		seen[tok] = id
	}

	if errs == nil {
		return nil
	}
	return errors.MalformedOrNil(errs)
}
