package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// countingFs counts how many times each path is opened for reading
type countingFs struct {
	afero.Fs

	m     sync.Mutex
	reads map[string]int
}

func newCountingFs(fs afero.Fs) *countingFs {
	return &countingFs{
		Fs:    fs,
		reads: make(map[string]int),
	}
}

func (c *countingFs) hit(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.reads[filepath.Clean(name)]++
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.hit(name)
	return c.Fs.Open(name)
}

func (c *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) == 0 {
		c.hit(name)
	}
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *countingFs) Reads(name string) int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.reads[filepath.Clean(name)]
}

func (c *countingFs) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.reads = make(map[string]int)
}

// brokenReadFs returns files that fail on the first read of any path under prefix
type brokenReadFs struct {
	afero.Fs
	prefix string
}

type brokenFile struct {
	afero.File
}

func (brokenFile) Read([]byte) (int, error) {
	return 0, errors.New("device not ready")
}

func (b brokenReadFs) Open(name string) (afero.File, error) {
	f, err := b.Fs.Open(name)
	if err != nil || !strings.HasPrefix(name, b.prefix) {
		return f, err
	}
	return brokenFile{f}, nil
}

// brokenRenameFs fails every rename, so nothing can be committed
type brokenRenameFs struct {
	afero.Fs
}

func (brokenRenameFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
}

func requireWriteFile(t *testing.T, fs afero.Fs, path string, lines ...string) {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), os.ModePerm))
}

func requireReadFile(t *testing.T, fs afero.Fs, path string) string {
	buf, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(buf)
}

func requireDirNames(t *testing.T, fs afero.Fs, dir string) []string {
	fis, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	var names []string
	for _, fi := range fis {
		names = append(names, fi.Name())
	}
	return names
}
