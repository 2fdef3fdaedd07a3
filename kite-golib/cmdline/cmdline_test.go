package cmdline

import (
	"bytes"
	"testing"

	"github.com/kiteco/chatvocab/kite-golib/errors"
	"github.com/stretchr/testify/assert"
)

type greetArgs struct {
	Name  string `arg:"positional,required"`
	Times int    `arg:"--times"`

	handled []string `arg:"-"`
	fail    error    `arg:"-"`
}

func (g *greetArgs) Validate() error {
	if g.Times < 1 {
		return errors.Errorf("times must be positive")
	}
	return nil
}

func (g *greetArgs) Handle() error {
	for i := 0; i < g.Times; i++ {
		g.handled = append(g.handled, g.Name)
	}
	return g.fail
}

func TestDispatch(t *testing.T) {
	type tc struct {
		name     string
		args     []string
		fail     error
		code     int
		handled  []string
		contains string
	}

	for _, c := range []tc{
		{"no command", []string{"tool"}, nil, ExitUsage, nil, "no command provided"},
		{"help", []string{"tool", "help"}, nil, ExitOK, nil, "greet"},
		{"help command", []string{"tool", "help", "greet"}, nil, ExitOK, nil, "--times"},
		{"unknown", []string{"tool", "wave"}, nil, ExitUsage, nil, "unknown command wave"},
		{"ok", []string{"tool", "greet", "bob", "--times", "2"}, nil, ExitOK, []string{"bob", "bob"}, ""},
		{"missing positional", []string{"tool", "greet"}, nil, ExitUsage, nil, "error:"},
		{"invalid", []string{"tool", "greet", "bob", "--times", "0"}, nil, ExitUsage, nil, "times must be positive"},
		{"handler fails", []string{"tool", "greet", "bob"}, errors.New("boom"), ExitFailure, []string{"bob"}, "boom"},
	} {
		t.Run(c.name, func(t *testing.T) {
			greet := &greetArgs{Times: 1, fail: c.fail}
			var buf bytes.Buffer
			code := Dispatch(&buf, c.args, Command{Name: "greet", Synopsis: "say hello", Args: greet})

			assert.Equal(t, c.code, code, buf.String())
			assert.Equal(t, c.handled, greet.handled)
			assert.Contains(t, buf.String(), c.contains)
		})
	}
}
