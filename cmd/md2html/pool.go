package main

import (
	"fmt"

	md2html "github.com/alnah/go-md2html"
)

// poolFactory builds the converter pool for a batch.
type poolFactory func(size int, opts ...md2html.Option) Pool

// poolAdapter adapts md2html.ConverterPool to the CLI Pool interface.
type poolAdapter struct {
	pool *md2html.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newConverterPool is the production poolFactory.
func newConverterPool(size int, opts ...md2html.Option) Pool {
	return &poolAdapter{pool: md2html.NewConverterPool(size, opts...)}
}

// Acquire gets a converter, creating it on first use.
func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter obtained from Acquire.
// Panics on any other type (programmer error).
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*md2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// Close releases every converter and its browser.
func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
