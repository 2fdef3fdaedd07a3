package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/kiteco/chatvocab/kite-golib/cmdline"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/fileutil"
	"github.com/kiteco/chatvocab/kite-golib/vocab/corpus"
	"github.com/kiteco/chatvocab/kite-golib/workerpool"
)

var syncCmd = cmdline.Command{
	Name:     "sync",
	Synopsis: "copy corpus files between local directories and s3, skipping existing ones",
	Args: &syncArgs{
		Concurrency: 4,
	},
}

type syncArgs struct {
	Src         string   `arg:"--src,required" help:"local directory or s3 uri"`
	Dst         string   `arg:"--dst,required" help:"local directory or s3 uri"`
	Files       []string `arg:"--files" help:"file names to copy, relative to src and dst; defaults to the four corpus files"`
	All         bool     `arg:"--all" help:"copy every file found under src instead of --files"`
	Concurrency int      `arg:"--concurrency"`
}

func (args *syncArgs) Validate() error {
	if args.Concurrency < 1 {
		return errors.Errorf("--concurrency must be positive, got %d", args.Concurrency)
	}
	if args.All && len(args.Files) > 0 {
		return errors.Errorf("--files and --all cannot be combined")
	}
	return nil
}

func (args *syncArgs) names() ([]string, error) {
	if !args.All {
		if len(args.Files) == 0 {
			return append([]string(nil), corpus.Inputs...), nil
		}
		return args.Files, nil
	}
	paths, err := fileutil.ListDir(fs, args.Src)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range paths {
		names = append(names, fileutil.Base(p))
	}
	return names, nil
}

func (args *syncArgs) Handle() error {
	start := time.Now()

	names, err := args.names()
	if err != nil {
		return err
	}

	var copied, skipped int32
	pool := workerpool.New(args.Concurrency)
	defer pool.Stop()

	var jobs []workerpool.Job
	for _, name := range names {
		src := fileutil.Join(args.Src, name)
		dst := fileutil.Join(args.Dst, name)
		jobs = append(jobs, func() error {
			ok, err := fileutil.Copy(fs, src, dst)
			if err != nil {
				return err
			}
			if ok {
				log.Printf("copied %s to %s", src, dst)
				atomic.AddInt32(&copied, 1)
			} else {
				log.Printf("%s already exists, skipping", dst)
				atomic.AddInt32(&skipped, 1)
			}
			return nil
		})
	}

	pool.Add(jobs)
	if err := pool.Wait(); err != nil {
		return err
	}

	log.Printf("synced %s to %s: %d copied, %d skipped, took %v", args.Src, args.Dst, copied, skipped, time.Since(start))
	return nil
}
