package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeErrs(names ...string) []error {
	var errs []error
	for _, name := range names {
		errs = append(errs, Errorf("error encoding %s", name))
	}
	return errs
}

func appendAll(errs ...error) Errors {
	var out Errors
	for _, err := range errs {
		out = Append(out, err)
	}
	return out
}

func TestAppend(t *testing.T) {
	errs := encodeErrs("train.source", "train.target", "valid.source", "valid.target")

	require.Nil(t, Append(nil, nil))

	single := Append(nil, errs[0])
	require.Equal(t, []error{errs[0]}, single.Slice())
	require.Equal(t, single, Append(single, nil), "appending nil is a no-op")

	train := appendAll(errs[0], errs[1])
	valid := appendAll(errs[2], errs[3])
	require.Equal(t, errs, Append(train, valid).Slice(), "appending a list flattens it")
}

func TestCombine(t *testing.T) {
	errs := encodeErrs("train.source", "train.target", "valid.source", "valid.target")
	train := appendAll(errs[0], errs[1])
	valid := appendAll(errs[2], errs[3])

	type tc struct {
		name     string
		e, f     error
		expected []error
	}

	for _, c := range []tc{
		{"nil nil", nil, nil, nil},
		{"error nil", errs[0], nil, errs[:1]},
		{"nil error", nil, errs[0], errs[:1]},
		{"error error", errs[0], errs[1], errs[:2]},
		{"error list", errs[1], valid, errs[1:]},
		{"list error", train, errs[2], errs[:3]},
		{"list list", train, valid, errs},
	} {
		t.Run(c.name, func(t *testing.T) {
			combined := Combine(c.e, c.f)
			if c.expected == nil {
				require.NoError(t, combined)
				return
			}
			if len(c.expected) == 1 {
				require.Equal(t, c.expected[0], combined)
				return
			}
			require.Equal(t, c.expected, combined.(Errors).Slice())
		})
	}

	// combining into a list twice must not share its backing array
	first := Combine(train, errs[2]).(Errors).sliceNoCopy()
	Combine(train, errs[3])
	assert.Equal(t, errs[2], first[2])
}

func TestDefer(t *testing.T) {
	closeErr := Errorf("error closing all_vocab10")
	run := func(body error) (err error) {
		defer Defer(&err, func() error { return closeErr })
		return body
	}

	assert.Equal(t, closeErr, run(nil))

	writeErr := Errorf("error writing all_vocab10")
	err := run(writeErr)
	require.Error(t, err)
	assert.Equal(t, []error{writeErr, closeErr}, err.(Errors).Slice())
}

func TestErrorsMessage(t *testing.T) {
	single := Append(nil, New("only"))
	require.Equal(t, "only", single.Error())

	both := Combine(New("first"), New("second"))
	require.Equal(t, "2 errors occurred:\n\t* first\n\t* second", both.Error())
}

func TestKindOfCombined(t *testing.T) {
	nf0 := NotFoundf("missing %s", "a")
	nf1 := NotFoundf("missing %s", "b")
	ioErr := IOFailuref(New("disk full"), "writing %s", "c")

	require.Equal(t, KindNotFound, KindOf(Combine(nf0, nf1)))
	require.Equal(t, KindUnknown, KindOf(Combine(nf0, ioErr)))
}
