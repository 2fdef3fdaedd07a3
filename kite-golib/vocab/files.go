package vocab

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/spf13/afero"
)

// DefaultProgressInterval is how many lines are processed between progress log lines
const DefaultProgressInterval = 100000

// exists reports whether path is present on fs. The existence of an output is the
// signal that a previous run already produced it.
func exists(fs afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return false, errors.IOFailuref(err, "checking %s", path)
	}
	return ok, nil
}

// requireExists returns a not found error if path is missing
func requireExists(fs afero.Fs, path string) error {
	_, err := fs.Stat(path)
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return errors.NotFoundf("%s does not exist", path)
	default:
		return errors.IOFailuref(err, "checking %s", path)
	}
}

// openInput opens path for reading, classifying the failure
func openInput(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.Open(path)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("%s does not exist", path)
	}
	return nil, errors.IOFailuref(err, "opening %s", path)
}

// forEachLine calls fn with every line of r, including its trailing newline if any.
// Lines may be arbitrarily long.
func forEachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReaderSize(r, 1<<16)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}

// commit writes an output file so that it either appears under path complete or not at all:
// write is given a buffered writer on a temporary file in the same directory, which is
// renamed into place only after write returns nil and everything is flushed.
func commit(fs afero.Fs, path string, write func(w *bufio.Writer) error) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.IOFailuref(err, "creating directory %s", dir)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return errors.IOFailuref(err, "creating temporary file for %s", path)
	}

	var committed bool
	defer func() {
		if !committed {
			tmp.Close()
			fs.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.IOFailuref(err, "writing %s", path)
	}
	if err := tmp.Sync(); err != nil {
		return errors.IOFailuref(err, "syncing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.IOFailuref(err, "closing %s", path)
	}
	if err := fs.Rename(tmp.Name(), path); err != nil {
		return errors.IOFailuref(err, "renaming %s to %s", tmp.Name(), path)
	}

	committed = true
	return nil
}
