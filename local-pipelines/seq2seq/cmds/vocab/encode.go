package main

import (
	"fmt"
	"time"

	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
)

var encodeCmd = cmdline.Command{
	Name:     "encode",
	Synopsis: "encode a text file into token ids with an existing vocab",
	Args: &encodeArgs{
		Tokenizer: "punct",
	},
}

type encodeArgs struct {
	Vocab     string `arg:"--vocab,required"`
	In        string `arg:"--in,required"`
	Out       string `arg:"--out" help:"defaults to the input path with .token appended"`
	Tokenizer string `arg:"--tokenizer" help:"one of punct, digits, space, nfkc"`
	Strict    bool   `arg:"--strict" help:"validate the vocabulary layout before encoding"`
	Progress  int    `arg:"--progress" help:"lines between progress log lines"`
}

func (args *encodeArgs) Validate() error {
	_, err := text.ByName(args.Tokenizer)
	return err
}

func (args *encodeArgs) Handle() error {
	start := time.Now()

	tok, err := text.ByName(args.Tokenizer)
	if err != nil {
		return err
	}
	if args.Out == "" {
		args.Out = args.In + ".token"
	}

	idx, err := vocab.Load(fs, args.Vocab)
	if err != nil {
		return err
	}
	if args.Strict {
		if err := idx.Validate(); err != nil {
			return err
		}
	}

	enc := vocab.NewEncoder(fs, idx, tok)
	if args.Progress > 0 {
		enc.ProgressInterval = args.Progress
	}
	written, err := enc.EncodeFile(args.In, args.Out)
	if err != nil {
		return err
	}
	if !written {
		fmt.Printf("%s already exists, remove it to re-encode\n", args.Out)
		return nil
	}

	fmt.Printf("wrote %s, took %v\n", args.Out, time.Since(start))
	return nil
}
