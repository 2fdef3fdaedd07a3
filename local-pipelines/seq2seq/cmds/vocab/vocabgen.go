package main

import (
	"fmt"
	"time"

	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
)

var vocabGenCmd = cmdline.Command{
	Name:     "vocabgen",
	Synopsis: "build a vocab from an ordered list of corpora",
	Args: &vocabGenArgs{
		Out:          "vocab.txt",
		MaxVocabSize: 60000,
		Tokenizer:    "punct",
	},
}

type vocabGenArgs struct {
	Corpora      []string `arg:"positional,required"`
	Out          string   `arg:"--out"`
	MaxVocabSize int      `arg:"--maxvocabsize"`
	Tokenizer    string   `arg:"--tokenizer" help:"one of punct, digits, space, nfkc"`
	Progress     int      `arg:"--progress" help:"lines between progress log lines"`
}

func (args *vocabGenArgs) Validate() error {
	if args.MaxVocabSize < len(vocab.StartVocab) {
		return errors.Errorf("--maxvocabsize must be at least %d, got %d", len(vocab.StartVocab), args.MaxVocabSize)
	}
	_, err := text.ByName(args.Tokenizer)
	return err
}

func (args *vocabGenArgs) Handle() error {
	start := time.Now()

	tok, err := text.ByName(args.Tokenizer)
	if err != nil {
		return err
	}

	builder := vocab.NewBuilder(fs, tok)
	if args.Progress > 0 {
		builder.ProgressInterval = args.Progress
	}
	built, err := builder.Build(args.Corpora, args.Out, args.MaxVocabSize)
	if err != nil {
		return err
	}
	if !built {
		fmt.Printf("%s already exists, remove it to rebuild\n", args.Out)
		return nil
	}

	fmt.Printf("done, took %v\n", time.Since(start))
	return nil
}
