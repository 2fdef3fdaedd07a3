package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/kitelog"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/kiteco/chatvocab/kite-golib/vocab/corpus"
)

var prepareCmd = cmdline.Command{
	Name:     "prepare",
	Synopsis: "build the vocab for a corpus directory and encode its four files",
	Args: &prepareArgs{
		Dir:          "corpus/",
		MaxVocabSize: 60000,
		Tokenizer:    "punct",
		Concurrency:  1,
	},
}

type prepareArgs struct {
	Dir          string `arg:"--dir" help:"directory holding train/valid .source/.target files"`
	MaxVocabSize int    `arg:"--maxvocabsize" help:"vocabulary size including the special symbols"`
	Tokenizer    string `arg:"--tokenizer" help:"one of punct, digits, space, nfkc"`
	Concurrency  int    `arg:"--concurrency" help:"number of files encoded at once"`
	Strict       bool   `arg:"--strict" help:"validate the vocabulary layout before encoding"`
	Progress     int    `arg:"--progress" help:"lines between progress log lines"`
}

func (args *prepareArgs) Validate() error {
	if args.MaxVocabSize < 4 {
		return errors.Errorf("--maxvocabsize must be at least 4, got %d", args.MaxVocabSize)
	}
	if args.Concurrency < 1 {
		return errors.Errorf("--concurrency must be positive, got %d", args.Concurrency)
	}
	if _, err := text.ByName(args.Tokenizer); err != nil {
		return err
	}
	return nil
}

func (args *prepareArgs) Handle() error {
	start := time.Now()

	tok, err := text.ByName(args.Tokenizer)
	if err != nil {
		return err
	}

	paths, err := corpus.Prepare(fs, corpus.Options{
		Dir:          args.Dir,
		MaxVocabSize: args.MaxVocabSize,
		Tokenizer:    tok,
		Concurrency:  args.Concurrency,
		Strict:       args.Strict,
		Logger:       kitelog.Basic,

		ProgressInterval: args.Progress,
	})
	if err != nil {
		return errors.Wrapf(err, "error preparing %s (%s)", args.Dir, errors.KindOf(err))
	}

	fmt.Println(strings.Join(paths.Encoded(), "\n"))
	fmt.Printf("done, took %v\n", time.Since(start))
	return nil
}
