package main

import (
	"log"

	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/envutil"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
	"github.com/spf13/afero"
)

// all commands read and write through this filesystem
var fs = afero.NewOsFs()

// progressInterval is the default for --progress, overridable with VOCAB_PROGRESS_INTERVAL
func progressInterval() int {
	n, err := envutil.GetenvDefaultInt("VOCAB_PROGRESS_INTERVAL", vocab.DefaultProgressInterval)
	if err != nil {
		log.Fatalln(err)
	}
	return n
}

func main() {
	progress := progressInterval()
	prepareCmd.Args.(*prepareArgs).Progress = progress
	vocabGenCmd.Args.(*vocabGenArgs).Progress = progress
	encodeCmd.Args.(*encodeArgs).Progress = progress

	cmdline.MustDispatch(prepareCmd, vocabGenCmd, encodeCmd, decodeCmd, wordCountCmd, syncCmd)
}
