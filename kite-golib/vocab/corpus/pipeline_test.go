package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/kiteco/chatvocab/kite-golib/kitelog"
	"github.com/kiteco/chatvocab/kite-golib/text"
	"github.com/kiteco/chatvocab/kite-golib/vocab"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/data/corpus"

// readCountingFs counts how many times each path is opened for reading
type readCountingFs struct {
	afero.Fs

	m     sync.Mutex
	reads map[string]int
}

func (c *readCountingFs) hit(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.reads == nil {
		c.reads = make(map[string]int)
	}
	c.reads[filepath.Clean(name)]++
}

func (c *readCountingFs) Open(name string) (afero.File, error) {
	c.hit(name)
	return c.Fs.Open(name)
}

func (c *readCountingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) == 0 {
		c.hit(name)
	}
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *readCountingFs) total() int {
	c.m.Lock()
	defer c.m.Unlock()
	var n int
	for _, count := range c.reads {
		n += count
	}
	return n
}

func writeCorpus(t *testing.T, fs afero.Fs, files map[string][]string) {
	for name, lines := range files {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, name), []byte(content), os.ModePerm))
	}
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	buf, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(buf)
}

var fruitCorpus = map[string][]string{
	TrainSource: {"I have 3 apples."},
	TrainTarget: {"I have 2 bananas."},
	ValidSource: {"I have pears."},
	ValidTarget: {"", "apples?"},
}

func testOptions() Options {
	return Options{
		Dir:          testDir,
		MaxVocabSize: 10,
		Logger:       kitelog.Discard,
	}
}

func TestPrepare(t *testing.T) {
	type tc struct {
		name        string
		concurrency int
	}

	for _, c := range []tc{
		{"sequential", 1},
		{"concurrent", 4},
	} {
		t.Run(c.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeCorpus(t, fs, fruitCorpus)

			opts := testOptions()
			opts.Concurrency = c.concurrency
			paths, err := Prepare(fs, opts)
			require.NoError(t, err)
			require.Equal(t, PathsFor(testDir, 10), paths)

			vocabLines := []string{vocab.Pad, vocab.Go, vocab.EOS, vocab.Unk, "i", "have", ".", "3", "apples", "2"}
			assert.Equal(t, strings.Join(vocabLines, "\n")+"\n", readFile(t, fs, paths.Vocab))

			assert.Equal(t, "4 5 7 8 6\n", readFile(t, fs, paths.TrainSource))
			assert.Equal(t, "4 5 9 3 6\n", readFile(t, fs, paths.TrainTarget))
			// pears only occurs in validation data, which never feeds the vocab
			assert.Equal(t, "4 5 3 6\n", readFile(t, fs, paths.ValidSource))
			assert.Equal(t, "\n8 3\n", readFile(t, fs, paths.ValidTarget))
		})
	}
}

func TestPrepareRerunReadsNothing(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeCorpus(t, mem, fruitCorpus)

	paths, err := Prepare(mem, testOptions())
	require.NoError(t, err)

	before := make(map[string]string)
	for _, p := range append(paths.Encoded(), paths.Vocab) {
		before[p] = readFile(t, mem, p)
	}

	fs := &readCountingFs{Fs: mem}
	_, err = Prepare(fs, testOptions())
	require.NoError(t, err)

	for _, name := range Inputs {
		assert.Equal(t, 0, fs.reads[filepath.Join(testDir, name)], "%s should not be read", name)
	}
	// loading the vocab is the only read
	assert.Equal(t, 1, fs.total())

	for p, content := range before {
		assert.Equal(t, content, readFile(t, mem, p))
	}
}

func TestPrepareMissingFile(t *testing.T) {
	type tc struct {
		missing string
		written []string
	}

	for _, c := range []tc{
		{TrainTarget, nil},
		{ValidSource, []string{VocabName(10), EncodedName(TrainSource), EncodedName(TrainTarget), EncodedName(ValidTarget)}},
	} {
		t.Run(c.missing, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			files := make(map[string][]string)
			for name, lines := range fruitCorpus {
				if name != c.missing {
					files[name] = lines
				}
			}
			writeCorpus(t, fs, files)

			_, err := Prepare(fs, testOptions())
			require.Error(t, err)
			assert.True(t, errors.IsNotFound(err), "got %v", err)

			for _, name := range c.written {
				ok, err := afero.Exists(fs, filepath.Join(testDir, name))
				require.NoError(t, err)
				assert.True(t, ok, "%s should have been written", name)
			}
			ok, err := afero.Exists(fs, filepath.Join(testDir, EncodedName(c.missing)))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPrepareStrict(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCorpus(t, fs, fruitCorpus)
	bad := strings.Join([]string{vocab.Go, vocab.Pad, vocab.EOS, vocab.Unk, "i", "i"}, "\n") + "\n"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, VocabName(10)), []byte(bad), os.ModePerm))

	opts := testOptions()
	_, err := Prepare(fs, opts)
	require.NoError(t, err, "a hand-edited vocab is used as is by default")

	for _, name := range Inputs {
		require.NoError(t, fs.Remove(filepath.Join(testDir, EncodedName(name))))
	}

	opts.Strict = true
	_, err = Prepare(fs, opts)
	require.Error(t, err)
	assert.True(t, errors.IsMalformed(err), "got %v", err)

	for _, name := range Inputs {
		ok, err := afero.Exists(fs, filepath.Join(testDir, EncodedName(name)))
		require.NoError(t, err)
		assert.False(t, ok, "nothing is encoded with a malformed vocab")
	}
}

func TestPrepareOptions(t *testing.T) {
	type tc struct {
		name string
		opts Options
	}

	for _, c := range []tc{
		{"no dir", Options{MaxVocabSize: 10}},
		{"tiny vocab", Options{Dir: testDir, MaxVocabSize: 3}},
	} {
		t.Run(c.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeCorpus(t, fs, fruitCorpus)

			_, err := Prepare(fs, c.opts)
			require.Error(t, err)

			fis, err := afero.ReadDir(fs, testDir)
			require.NoError(t, err)
			assert.Len(t, fis, len(fruitCorpus))
		})
	}
}

func TestPrepareTokenizer(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCorpus(t, fs, map[string][]string{
		TrainSource: {"call 555 1234"},
		TrainTarget: {"call 911"},
		ValidSource: {"call 42"},
		ValidTarget: {"nope"},
	})

	opts := testOptions()
	opts.Tokenizer = text.DigitTokenizer
	paths, err := Prepare(fs, opts)
	require.NoError(t, err)

	idx, err := vocab.Load(fs, paths.Vocab)
	require.NoError(t, err)
	assert.Equal(t, []string{vocab.Pad, vocab.Go, vocab.EOS, vocab.Unk, "call", "000", "0000"}, idx.Tokens())
	assert.Equal(t, "4 3\n", readFile(t, fs, paths.ValidSource))
	assert.Equal(t, "3\n", readFile(t, fs, paths.ValidTarget))
}

func TestPrepareLogsDurations(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCorpus(t, fs, fruitCorpus)

	var buf bytes.Buffer
	opts := testOptions()
	opts.Logger = kitelog.New(&buf)
	opts.ProgressInterval = 1
	_, err := Prepare(fs, opts)
	require.NoError(t, err)

	out := buf.String()
	for _, stage := range []string{"processing line 2", "tokenizing line 1 of", "build vocab", "load vocab", "encode", "total"} {
		assert.Contains(t, out, stage)
	}
}
