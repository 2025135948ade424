// Package iocontext carries the command's standard streams on a context so
// commands can be exercised against buffers.
package iocontext

import (
	"context"
	"io"
)

type ctxKey int

const (
	stdinKey ctxKey = iota
	stdoutKey
	stderrKey
)

// Streams groups the three standard streams of a command invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams injects all non-nil streams into ctx.
func WithStreams(ctx context.Context, s Streams) context.Context {
	if s.In != nil {
		ctx = context.WithValue(ctx, stdinKey, s.In)
	}
	if s.Out != nil {
		ctx = context.WithValue(ctx, stdoutKey, s.Out)
	}
	if s.Err != nil {
		ctx = context.WithValue(ctx, stderrKey, s.Err)
	}
	return ctx
}

// WithIO injects stdout and stderr writers into context.
func WithIO(ctx context.Context, stdout, stderr io.Writer) context.Context {
	return WithStreams(ctx, Streams{Out: stdout, Err: stderr})
}

// Stdin returns the reader injected into ctx, or def.
func Stdin(ctx context.Context, def io.Reader) io.Reader {
	if r, ok := ctx.Value(stdinKey).(io.Reader); ok {
		return r
	}
	return def
}

// StdoutOrDefault returns stdout from context or the provided default.
func StdoutOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w, ok := ctx.Value(stdoutKey).(io.Writer); ok {
		return w
	}
	return def
}

// StderrOrDefault returns stderr from context or the provided default.
func StderrOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w, ok := ctx.Value(stderrKey).(io.Writer); ok {
		return w
	}
	return def
}
