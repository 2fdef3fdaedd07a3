package kitelog

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/kiteco/chatvocab/kite-golib/envutil"
)

var (
	region  = envutil.GetenvDefault("REGION", "")
	release = envutil.GetenvDefault("RELEASE", "")

	prefix = fmt.Sprintf("[region=%s release=%s] ", region, release)
	flags  = log.LstdFlags | log.Lshortfile | log.Lmicroseconds
)

func init() {
	// for clients still using the standard log package
	log.SetPrefix(prefix)
	log.SetFlags(flags)
}

// Basic prefixes the log line with the region & release identifiers
var Basic = &Logger{
	Default: log.New(os.Stderr, prefix, flags),
}

// Discard drops everything written to it
var Discard = &Logger{
	Default: log.New(ioutil.Discard, "", 0),
}

// New returns a logger writing to w with the standard prefix and flags
func New(w io.Writer) *Logger {
	return &Logger{
		Default: log.New(w, prefix, flags),
	}
}

// Logger encapsulates multiple logging handlers
type Logger struct {
	Default *log.Logger
}

// Interface encapsulates the relevant methods of log.Logger
type Interface interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Printf implements Interface
func (l *Logger) Printf(format string, v ...interface{}) {
	l.Default.Output(2, fmt.Sprintf(format, v...))
}

// Println implements Interface
func (l *Logger) Println(v ...interface{}) {
	l.Default.Output(2, fmt.Sprintln(v...))
}

// OrBasic returns i, or Basic if i is nil
func OrBasic(i Interface) Interface {
	if i == nil {
		return Basic
	}
	return i
}
