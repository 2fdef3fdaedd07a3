package main

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/fileutil"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
)

var wordCountCmd = cmdline.Command{
	Name:     "wordcount",
	Synopsis: "count tokens in corpora and dump the counts as json lines",
	Args: &wordCountArgs{
		Out:       "wordcounts.json",
		Tokenizer: "punct",
	},
}

type wordCountArgs struct {
	Corpora   []string `arg:"positional,required"`
	Out       string   `arg:"--out" help:"local path or s3 uri"`
	Tokenizer string   `arg:"--tokenizer" help:"one of punct, digits, space, nfkc"`
	Sorted    bool     `arg:"--sorted" help:"write the most frequent tokens first"`
}

func (args *wordCountArgs) Validate() error {
	_, err := text.ByName(args.Tokenizer)
	return err
}

func (args *wordCountArgs) Handle() error {
	start := time.Now()

	tok, err := text.ByName(args.Tokenizer)
	if err != nil {
		return err
	}

	counts, err := vocab.NewBuilder(fs, tok).Count(args.Corpora)
	if err != nil {
		return err
	}
	if args.Sorted {
		sorted := vocab.NewCounts()
		for _, e := range counts.Sorted() {
			sorted.Hit(e.Token, e.Count)
		}
		counts = sorted
	}

	w, err := fileutil.NewBufferedWriter(fs, args.Out)
	if err != nil {
		return err
	}
	if _, err := counts.WriteTo(w); err != nil {
		fileutil.Discard(w)
		return errors.IOFailuref(err, "error writing %s", args.Out)
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s distinct tokens to %s, took %v\n", humanize.Comma(int64(counts.Len())), w.Name(), time.Since(start))
	return nil
}
