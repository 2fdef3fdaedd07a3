package corpus

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/kitelog"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
	"github.com/kiteco/chatvocab/kite-golib/workerpool"
	"github.com/spf13/afero"
)

// Names of the parallel corpus files inside a corpus directory
const (
	TrainSource = "train.source"
	TrainTarget = "train.target"
	ValidSource = "valid.source"
	ValidTarget = "valid.target"

	// EncodedSuffix is appended to a corpus file name to get its encoded counterpart
	EncodedSuffix = ".token"
	// VocabPrefix is followed by the max vocab size to get the vocabulary file name
	VocabPrefix = "all_vocab"
)

// Inputs lists the corpus files in the order they are encoded
var Inputs = []string{TrainSource, TrainTarget, ValidSource, ValidTarget}

// VocabName returns the vocabulary file name for maxSize
func VocabName(maxSize int) string {
	return fmt.Sprintf("%s%d", VocabPrefix, maxSize)
}

// EncodedName returns the name of the encoded counterpart of input
func EncodedName(input string) string {
	return input + EncodedSuffix
}

// Options for Prepare
type Options struct {
	Dir          string
	MaxVocabSize int

	// Tokenizer defaults to text.Default
	Tokenizer text.Tokenizer
	// Concurrency is the number of files encoded at once, defaults to 1
	Concurrency int
	// Strict validates the vocabulary layout before encoding
	Strict bool
	// Logger defaults to kitelog.Basic
	Logger kitelog.Interface
	// ProgressInterval is the number of lines between progress lines, defaults to vocab.DefaultProgressInterval
	ProgressInterval int
}

func (o Options) withDefaults() (Options, error) {
	if o.Dir == "" {
		return o, errors.Errorf("corpus directory must be set")
	}
	if o.MaxVocabSize < len(vocab.StartVocab) {
		return o, errors.Errorf("max vocab size %d cannot hold the %d special symbols", o.MaxVocabSize, len(vocab.StartVocab))
	}
	if o.Tokenizer == nil {
		o.Tokenizer = text.Default
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = vocab.DefaultProgressInterval
	}
	o.Logger = kitelog.OrBasic(o.Logger)
	return o, nil
}

// Paths produced by Prepare
type Paths struct {
	Vocab       string
	TrainSource string
	TrainTarget string
	ValidSource string
	ValidTarget string
}

// Encoded returns the encoded file paths in the order of Inputs
func (p Paths) Encoded() []string {
	return []string{p.TrainSource, p.TrainTarget, p.ValidSource, p.ValidTarget}
}

// PathsFor returns the paths Prepare writes for the given directory and vocab size
func PathsFor(dir string, maxSize int) Paths {
	enc := func(name string) string {
		return filepath.Join(dir, EncodedName(name))
	}
	return Paths{
		Vocab:       filepath.Join(dir, VocabName(maxSize)),
		TrainSource: enc(TrainSource),
		TrainTarget: enc(TrainTarget),
		ValidSource: enc(ValidSource),
		ValidTarget: enc(ValidTarget),
	}
}

// Prepare builds the vocabulary from the training pair in opts.Dir, then encodes
// all four corpus files with it. Every artifact that already exists is reused as is.
func Prepare(fs afero.Fs, opts Options) (Paths, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return Paths{}, err
	}
	logger := opts.Logger
	paths := PathsFor(opts.Dir, opts.MaxVocabSize)

	var durations kitelog.Durations
	defer durations.Flush(logger)

	start := time.Now()
	builder := vocab.NewBuilder(fs, opts.Tokenizer)
	builder.Logger = logger
	builder.ProgressInterval = opts.ProgressInterval
	corpora := []string{
		filepath.Join(opts.Dir, TrainSource),
		filepath.Join(opts.Dir, TrainTarget),
	}
	if _, err := builder.Build(corpora, paths.Vocab, opts.MaxVocabSize); err != nil {
		return Paths{}, errors.WrapfOrNil(err, "error building vocab")
	}
	durations.Since("build vocab", start)

	start = time.Now()
	idx, err := vocab.Load(fs, paths.Vocab)
	if err != nil {
		return Paths{}, err
	}
	if opts.Strict {
		if err := idx.Validate(); err != nil {
			return Paths{}, errors.WrapfOrNil(err, "invalid vocab %s", paths.Vocab)
		}
	}
	logger.Printf("loaded vocab of %d tokens from %s", idx.Len(), paths.Vocab)
	durations.Since("load vocab", start)

	start = time.Now()
	if err := encodeAll(fs, idx, opts, paths); err != nil {
		return Paths{}, err
	}
	durations.Since("encode", start)

	return paths, nil
}

func encodeAll(fs afero.Fs, idx *vocab.Index, opts Options, paths Paths) error {
	pool := workerpool.New(opts.Concurrency)
	defer pool.Stop()

	var jobs []workerpool.Job
	for i, output := range paths.Encoded() {
		input := filepath.Join(opts.Dir, Inputs[i])
		output := output
		jobs = append(jobs, func() error {
			enc := vocab.NewEncoder(fs, idx, opts.Tokenizer)
			enc.Logger = opts.Logger
			enc.ProgressInterval = opts.ProgressInterval
			_, err := enc.EncodeFile(input, output)
			return errors.WrapfOrNil(err, "error encoding %s", input)
		})
	}

	pool.AddBlocking(jobs)
	return pool.Wait()
}
