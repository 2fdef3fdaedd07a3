package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errorf is re-exported from fmt
var Errorf = fmt.Errorf

// New is an alias to Errorf
var New = Errorf

// WrapfOrNil is WithMessagef re-exported from github.com/pkg/errors
func WrapfOrNil(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, fmt.Sprintf(format, args...))
}

// Wrapf is WrapfOrNil if err != nil, and Errorf otherwise: it never returns nil
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return Errorf(format, args...)
	}
	return WrapfOrNil(err, format, args...)
}

// WithStack is re-exported from github.com/pkg/errors
var WithStack = errors.WithStack

// Cause is re-exported from github.com/pkg/errors
var Cause = errors.Cause

// Kind classifies a failure so callers can decide whether fixing the
// environment (a missing file, a bad vocabulary) and rerunning will help.
type Kind int

const (
	// KindUnknown is any error that was not tagged with a kind
	KindUnknown Kind = iota
	// KindNotFound means a required input path does not exist
	KindNotFound
	// KindIOFailure means reading or writing failed part way through a stage
	KindIOFailure
	// KindMalformedVocabulary means a vocabulary file violates the layout the builder produces
	KindMalformedVocabulary
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindIOFailure:
		return "io failure"
	case KindMalformedVocabulary:
		return "malformed vocabulary"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

// Unwrap gives access to the tagged error for errors.Is/As
func (e *kindError) Unwrap() error {
	return e.err
}

func withKind(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// NotFoundf returns a KindNotFound error with the formatted message
func NotFoundf(format string, args ...interface{}) error {
	return withKind(KindNotFound, errors.Errorf(format, args...))
}

// IOFailuref tags err as a KindIOFailure, annotating it with the formatted message.
// It returns nil if err is nil.
func IOFailuref(err error, format string, args ...interface{}) error {
	return withKind(KindIOFailure, WrapfOrNil(err, format, args...))
}

// Malformedf returns a KindMalformedVocabulary error with the formatted message
func Malformedf(format string, args ...interface{}) error {
	return withKind(KindMalformedVocabulary, errors.Errorf(format, args...))
}

// MalformedOrNil tags a non-nil err as KindMalformedVocabulary
func MalformedOrNil(err error) error {
	return withKind(KindMalformedVocabulary, err)
}

// KindOf returns the kind of the first tagged error found by walking
// the Cause/Unwrap chain of err.
func KindOf(err error) Kind {
	for err != nil {
		switch e := err.(type) {
		case *kindError:
			return e.kind
		case errorSlice:
			return e.Kind()
		case interface{ Cause() error }:
			err = e.Cause()
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		default:
			return KindUnknown
		}
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsIOFailure reports whether err is a KindIOFailure error
func IsIOFailure(err error) bool {
	return KindOf(err) == KindIOFailure
}

// IsMalformed reports whether err is a KindMalformedVocabulary error
func IsMalformed(err error) bool {
	return KindOf(err) == KindMalformedVocabulary
}
