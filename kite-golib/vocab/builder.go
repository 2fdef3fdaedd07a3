package vocab

import (
	"bufio"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/kitelog"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/spf13/afero"
)

// Builder counts tokens over a set of corpora and writes a size-bounded vocabulary.
type Builder struct {
	Fs        afero.Fs
	Tokenizer text.Tokenizer
	Logger    kitelog.Interface

	// ProgressInterval is the number of lines between progress log lines, across all corpora
	ProgressInterval int
}

// NewBuilder returns a Builder reading and writing through fs. A nil tokenizer selects text.Default.
func NewBuilder(fs afero.Fs, tok text.Tokenizer) *Builder {
	if tok == nil {
		tok = text.Default
	}
	return &Builder{
		Fs:               fs,
		Tokenizer:        tok,
		Logger:           kitelog.Basic,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Build writes the vocabulary for corpora to output, keeping at most maxSize
// entries including the special symbols. If output already exists nothing is read
// and Build returns false; remove the file to force a rebuild.
func (b *Builder) Build(corpora []string, output string, maxSize int) (bool, error) {
	logger := kitelog.OrBasic(b.Logger)

	if maxSize < len(StartVocab) {
		return false, errors.Errorf("max vocab size %d cannot hold the %d special symbols", maxSize, len(StartVocab))
	}

	ok, err := exists(b.Fs, output)
	if err != nil {
		return false, err
	}
	if ok {
		logger.Printf("%s already exists, reading vocab from it", output)
		return false, nil
	}

	start := time.Now()
	logger.Printf("building vocab %s from %v, max vocab size %d", output, corpora, maxSize)

	counts, err := b.Count(corpora)
	if err != nil {
		return false, err
	}

	vocab := Truncate(counts, maxSize)
	err = commit(b.Fs, output, func(w *bufio.Writer) error {
		for _, tok := range vocab {
			if _, err := w.WriteString(tok + "\n"); err != nil {
				return errors.IOFailuref(err, "writing %s", output)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Printf("wrote %d of %s distinct tokens to %s, took %v",
		len(vocab), humanize.Comma(int64(counts.Len())), output, time.Since(start))
	return true, nil
}

// Count streams every corpus, in order, through the tokenizer and returns the combined counts.
// Every corpus is checked for existence before any of them is read.
func (b *Builder) Count(corpora []string) (*Counts, error) {
	logger := kitelog.OrBasic(b.Logger)
	tok := b.Tokenizer
	if tok == nil {
		tok = text.Default
	}

	for _, path := range corpora {
		if err := requireExists(b.Fs, path); err != nil {
			return nil, err
		}
	}

	counts := NewCounts()
	var lines int64
	for _, path := range corpora {
		logger.Printf("reading %s", path)

		err := b.countFile(path, func(line string) {
			lines++
			if b.ProgressInterval > 0 && lines%int64(b.ProgressInterval) == 0 {
				logger.Printf("  processing line %s", humanize.Comma(lines))
			}
			counts.HitAll(tok.Tokenize(line))
		})
		if err != nil {
			return nil, err
		}
	}

	return counts, nil
}

func (b *Builder) countFile(path string, fn func(line string)) error {
	f, err := openInput(b.Fs, path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = forEachLine(f, func(line string) error {
		fn(line)
		return nil
	})
	return errors.IOFailuref(err, "reading %s", path)
}

// Truncate returns the vocabulary for counts: the special symbols followed by
// tokens in descending count order (ties in first-seen order), at most maxSize
// entries in total. Tokens equal to a special symbol keep their reserved id.
func Truncate(counts *Counts, maxSize int) []string {
	size := len(StartVocab) + counts.Len()
	if size > maxSize && maxSize >= len(StartVocab) {
		size = maxSize
	}
	vocab := append(make([]string, 0, size), StartVocab...)
	for _, e := range counts.Sorted() {
		if len(vocab) >= maxSize {
			break
		}
		if IsSpecial(e.Token) {
			continue
		}
		vocab = append(vocab, e.Token)
	}
	if len(vocab) > maxSize {
		vocab = vocab[:maxSize]
	}
	return vocab
}
