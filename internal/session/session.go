// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

// Package session tracks the single running Godot project process.
//
// At most one tracked process exists at a time. Starting a new run while one
// is active stops the old one first; there is never overlap, and there is no
// queue. Output from the process's stdout and stderr is interleaved in
// arrival order into one bounded buffer with no line framing guarantees.
package session

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matula/godot-mcp-server/internal/testable"
)

// DefaultBufferLimit bounds the debug output buffer. Older output is
// discarded once the limit is reached.
const DefaultBufferLimit = 1 << 20 // 1 MiB

// Session owns the zero-or-one running project process.
type Session struct {
	mu       sync.Mutex
	executor testable.CommandExecutor
	limit    int
	proc     *process
}

// process is a live tracked run.
type process struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	buf    *ringBuffer
	done   chan struct{}
}

// New returns an idle Session.
func New(executor testable.CommandExecutor, bufferLimit int) *Session {
	if executor == nil {
		executor = testable.DefaultExecutor()
	}
	if bufferLimit <= 0 {
		bufferLimit = DefaultBufferLimit
	}
	return &Session{executor: executor, limit: bufferLimit}
}

// Start launches exe with args in cwd as the tracked process. If a process
// is already running it is terminated first and its buffered output is
// discarded. The process is not tied to ctx: it runs until it exits on its
// own or Stop is called.
func (s *Session) Start(_ context.Context, exe string, args []string, cwd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc != nil {
		s.stopLocked()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	cmd := s.executor.CommandContext(runCtx, exe, args...)
	cmd.Dir = cwd

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("spawn %s: %w", exe, err)
	}

	p := &process{
		cmd:    cmd,
		cancel: cancel,
		buf:    newRingBuffer(s.limit),
		done:   make(chan struct{}),
	}

	// Both streams drain into the one shared buffer in arrival order.
	var pumps errgroup.Group
	pumps.Go(func() error { return drain(p.buf, stdout) })
	pumps.Go(func() error { return drain(p.buf, stderr) })
	go func() {
		_ = pumps.Wait()
		_ = cmd.Wait()
		close(p.done)
	}()

	s.proc = p
	return nil
}

// Stop terminates the tracked process. The second return is false when
// nothing was running, which is a no-op rather than an error.
func (s *Session) Stop() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil {
		return false, nil
	}
	s.stopLocked()
	return true, nil
}

// stopLocked kills the current process, waits for it to be reaped, and
// clears the slot. Caller holds s.mu.
func (s *Session) stopLocked() {
	p := s.proc
	p.cancel()
	<-p.done
	s.proc = nil
}

// Peek returns a snapshot of the output buffered so far and whether a
// process is currently tracked. While idle, the snapshot is empty.
func (s *Session) Peek() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil {
		return "", false
	}
	return s.proc.buf.String(), true
}

// Running reports whether a process is currently tracked.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil
}

// drain copies r into buf until EOF. Pipe closure on process exit ends the
// copy; that is not an error.
func drain(buf *ringBuffer, r io.Reader) error {
	_, err := io.Copy(buf, r)
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}
