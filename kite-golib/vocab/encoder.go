package vocab

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/kitelog"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/spf13/afero"
)

// Encoder converts text to token ids with a vocabulary Index
type Encoder struct {
	Fs        afero.Fs
	Index     *Index
	Tokenizer text.Tokenizer
	Logger    kitelog.Interface

	// ProgressInterval is the number of lines between progress log lines in EncodeFile
	ProgressInterval int
}

// NewEncoder returns an Encoder over idx. A nil tokenizer selects text.Default.
func NewEncoder(fs afero.Fs, idx *Index, tok text.Tokenizer) *Encoder {
	if tok == nil {
		tok = text.Default
	}
	return &Encoder{
		Fs:               fs,
		Index:            idx,
		Tokenizer:        tok,
		Logger:           kitelog.Basic,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Encode returns one id per token of line; tokens missing from the vocabulary map to UnkID.
func (e *Encoder) Encode(line string) []int {
	tok := e.Tokenizer
	if tok == nil {
		tok = text.Default
	}
	toks := tok.Tokenize(line)
	ids := make([]int, 0, len(toks))
	for _, tok := range toks {
		id, ok := e.Index.ID(tok)
		if !ok {
			id = UnkID
		}
		ids = append(ids, id)
	}
	return ids
}

// Decode maps ids back to tokens; ids outside the vocabulary map to Unk.
func (e *Encoder) Decode(ids []int) []string {
	toks := make([]string, 0, len(ids))
	for _, id := range ids {
		tok, ok := e.Index.Token(id)
		if !ok {
			tok = Unk
		}
		toks = append(toks, tok)
	}
	return toks
}

// FormatIDs renders ids as space separated decimals
func FormatIDs(ids []int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// ParseIDs reads a line written by FormatIDs back into ids
func ParseIDs(line string) ([]int, error) {
	fields := strings.Fields(line)
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// EncodeFile writes the encoding of every line of input as a line of output.
// If output already exists nothing is read and EncodeFile returns false.
func (e *Encoder) EncodeFile(input, output string) (bool, error) {
	logger := kitelog.OrBasic(e.Logger)

	ok, err := exists(e.Fs, output)
	if err != nil {
		return false, err
	}
	if ok {
		logger.Printf("ids file %s already exists", output)
		return false, nil
	}

	f, err := openInput(e.Fs, input)
	if err != nil {
		return false, err
	}
	defer f.Close()

	start := time.Now()
	logger.Printf("tokenizing data from %s", input)

	var lines int64
	err = commit(e.Fs, output, func(w *bufio.Writer) error {
		err := forEachLine(f, func(line string) error {
			lines++
			if e.ProgressInterval > 0 && lines%int64(e.ProgressInterval) == 0 {
				logger.Printf("  tokenizing line %s of %s", humanize.Comma(lines), input)
			}
			if _, err := w.WriteString(FormatIDs(e.Encode(line)) + "\n"); err != nil {
				return errors.IOFailuref(err, "writing %s", output)
			}
			return nil
		})
		if err != nil && errors.KindOf(err) == errors.KindUnknown {
			return errors.IOFailuref(err, "reading %s", input)
		}
		return err
	})
	if err != nil {
		return false, err
	}

	logger.Printf("wrote %s lines to %s, took %v", humanize.Comma(lines), output, time.Since(start))
	return true, nil
}
