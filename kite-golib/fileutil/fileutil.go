package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kiteco/chatvocab/kite-golib/awsutil"
	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/spf13/afero"
)

// NewReader opens a local or remote path for reading. If the path looks like
// "s3://bucket/path/to/object" then this will read an object from S3. Otherwise, this
// will read a path from fs.
func NewReader(fs afero.Fs, path string) (io.ReadCloser, error) {
	if awsutil.IsS3URI(path) {
		return awsutil.NewS3Reader(path)
	}

	f, err := fs.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("%s does not exist", path)
	}
	if err != nil {
		return nil, errors.IOFailuref(err, "error opening %s", path)
	}
	return f, nil
}

// NamedWriteCloser is a file-like object extending io.WriteCloser with a string Name() similar to os.File.Name()
type NamedWriteCloser = awsutil.NamedWriteCloser

// localWriter writes to a temp file next to the destination, renamed into place on Close
type localWriter struct {
	fs   afero.Fs
	f    afero.File
	path string
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w *localWriter) Name() string {
	return w.path
}

func (w *localWriter) Close() error {
	tmp := w.f.Name()
	if err := w.f.Close(); err != nil {
		w.fs.Remove(tmp)
		return errors.IOFailuref(err, "error closing %s", tmp)
	}
	if err := w.fs.Rename(tmp, w.path); err != nil {
		w.fs.Remove(tmp)
		return errors.IOFailuref(err, "error renaming %s to %s", tmp, w.path)
	}
	return nil
}

// Discard drops the temp file, leaving the destination untouched
func (w *localWriter) Discard() error {
	defer w.fs.Remove(w.f.Name())
	return w.f.Close()
}

// Discard abandons a writer returned by NewBufferedWriter: nothing written to it
// reaches its destination.
func Discard(w NamedWriteCloser) error {
	d, ok := w.(interface{ Discard() error })
	if !ok {
		return errors.Errorf("cannot discard writes to %s", w.Name())
	}
	return d.Discard()
}

// NewBufferedWriter opens a local or remote path for writing. If the path starts with
// "s3://", then this will write to a local buffer, copying to s3 on close. Otherwise,
// this will write to fs. Either way the destination only appears once Close succeeds.
func NewBufferedWriter(fs afero.Fs, path string) (NamedWriteCloser, error) {
	if awsutil.IsS3URI(path) {
		return awsutil.NewBufferedS3Writer(path)
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.IOFailuref(err, "error creating %s", dir)
	}
	f, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return nil, errors.IOFailuref(err, "error creating temp file for %s", path)
	}
	return &localWriter{fs: fs, f: f, path: path}, nil
}

// Exists reports whether a local or remote path exists
func Exists(fs afero.Fs, path string) (bool, error) {
	if awsutil.IsS3URI(path) {
		return awsutil.Exists(path)
	}
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return false, errors.IOFailuref(err, "error checking %s", path)
	}
	return ok, nil
}

// ListDir returns the fully qualified names for the files in the provided
// directory, sorted. If the directory is on s3 these are the uris of the
// objects under it.
func ListDir(fs afero.Fs, path string) ([]string, error) {
	if awsutil.IsS3URI(path) {
		s3url, err := awsutil.ValidateURI(path)
		if err != nil {
			return nil, err
		}
		bucket, prefix := awsutil.BucketKey(s3url)
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}

		keys, err := awsutil.ListObjects("s3://" + bucket + "/" + prefix)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading from s3 path %s", path)
		}

		var paths []string
		for _, key := range keys {
			paths = append(paths, Join("s3://", bucket, key))
		}
		sort.Strings(paths)
		return paths, nil
	}

	entries, err := afero.ReadDir(fs, path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("%s does not exist", path)
	}
	if err != nil {
		return nil, errors.IOFailuref(err, "error reading dir %s", path)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, Join(path, entry.Name()))
	}
	return paths, nil
}

// Copy copies src to dst, either of which may be on s3. Nothing is read
// when dst already exists; the returned bool reports whether a copy was made.
func Copy(fs afero.Fs, src, dst string) (copied bool, err error) {
	ok, err := Exists(fs, dst)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	r, err := NewReader(fs, src)
	if err != nil {
		return false, err
	}
	defer errors.Defer(&err, r.Close)

	w, err := NewBufferedWriter(fs, dst)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(w, r); err != nil {
		Discard(w)
		return false, errors.IOFailuref(err, "error copying %s to %s", src, dst)
	}
	if err := w.Close(); err != nil {
		return false, err
	}
	return true, nil
}
