package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/fileutil"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
)

var decodeCmd = cmdline.Command{
	Name:     "decode",
	Synopsis: "turn an encoded file back into space separated tokens",
	Args:     &decodeArgs{},
}

type decodeArgs struct {
	Vocab string `arg:"--vocab,required"`
	In    string `arg:"--in,required" help:"encoded file, local path or s3 uri"`
	Out   string `arg:"--out,required" help:"local path or s3 uri"`
}

func (args *decodeArgs) Handle() error {
	idx, err := vocab.Load(fs, args.Vocab)
	if err != nil {
		return err
	}
	enc := vocab.NewEncoder(fs, idx, nil)

	r, err := fileutil.NewReader(fs, args.In)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := fileutil.NewBufferedWriter(fs, args.Out)
	if err != nil {
		return err
	}
	if err := decodeLines(enc, r, w); err != nil {
		fileutil.Discard(w)
		return errors.Wrapf(err, "error decoding %s", args.In)
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", w.Name())
	return nil
}

func decodeLines(enc *vocab.Encoder, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			ids, perr := vocab.ParseIDs(line)
			if perr != nil {
				return errors.Wrapf(perr, "line %d", n)
			}
			if _, werr := bw.WriteString(strings.Join(enc.Decode(ids), " ") + "\n"); werr != nil {
				return errors.IOFailuref(werr, "writing")
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.IOFailuref(err, "reading")
		}
	}
	return errors.IOFailuref(bw.Flush(), "writing")
}
