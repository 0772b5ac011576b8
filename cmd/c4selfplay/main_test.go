package main

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

type failingCloser struct {
	err    error
	closed bool
}

func (c *failingCloser) Close() error {
	c.closed = true
	return c.err
}

func TestCloseIntoReportsError(t *testing.T) {
	is := is.New(t)
	diskFull := errors.New("disk full")
	c := &failingCloser{err: diskFull}
	var err error
	closeInto(&err, c, "output file")
	is.True(c.closed)
	is.True(errors.Is(err, diskFull))
	is.Equal(err.Error(), "closing output file: disk full")
}

func TestCloseIntoKeepsEarlierError(t *testing.T) {
	is := is.New(t)
	earlier := errors.New("writing rows")
	c := &failingCloser{err: errors.New("disk full")}
	err := earlier
	closeInto(&err, c, "output file")
	is.True(c.closed)
	is.Equal(err, earlier)

	ok := &failingCloser{}
	var none error
	closeInto(&none, ok, "gamestore")
	is.NoErr(none)
}

