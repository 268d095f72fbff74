// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package session

import "sync"

// ringBuffer is a byte buffer that keeps only the most recent max bytes.
// Writes never fail; old data is discarded from the front on overflow.
// Safe for concurrent use: both stream pumps and Peek touch it.
type ringBuffer struct {
	mu   sync.Mutex
	max  int
	data []byte
}

func newRingBuffer(max int) *ringBuffer {
	return &ringBuffer{max: max}
}

// Write appends p, trimming the oldest bytes to stay within max.
func (b *ringBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, p...)
	if len(b.data) > b.max {
		b.data = b.data[len(b.data)-b.max:]
	}
	return len(p), nil
}

// String returns a copy of the buffered bytes.
func (b *ringBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}
