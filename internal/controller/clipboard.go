package controller

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard is the cut/paste buffer.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the OS clipboard, or an in-process one when no
// clipboard utility is available.
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return systemClipboard{}
}

// MemoryClipboard keeps the buffer in memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// ReadAll returns the buffer.
func (c *MemoryClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteAll replaces the buffer.
func (c *MemoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}
