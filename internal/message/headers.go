package message

import (
	"strings"
)

type headerEntry struct {
	name  string
	value []byte
}

// Headers is an ordered header collection. Lookup by name is
// case-insensitive; the stored name spelling and the raw value bytes
// are preserved exactly as they arrived.
type Headers struct {
	entries []headerEntry
}

func NewHeaders() *Headers {
	return &Headers{}
}

// Get returns the raw value bytes of the first header with the given
// name, or false when the header is absent.
func (h *Headers) Get(name string) ([]byte, bool) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].name, name) {
			return h.entries[i].value, true
		}
	}
	return nil, false
}

// Value returns the header value as a string, or "" when absent.
func (h *Headers) Value(name string) string {
	v, ok := h.Get(name)
	if !ok {
		return ""
	}
	return string(v)
}

// Set replaces the value of an existing header, keeping its original
// name spelling, or appends a new entry.
func (h *Headers) Set(name, value string) {
	h.SetBytes(name, []byte(value))
}

func (h *Headers) SetBytes(name string, value []byte) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].name, name) {
			h.entries[i].value = value
			return
		}
	}
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

func (h *Headers) Remove(name string) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].name, name) {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

func (h *Headers) Len() int {
	return len(h.entries)
}

// Each visits every header in insertion order.
func (h *Headers) Each(fn func(name string, value []byte)) {
	for i := range h.entries {
		fn(h.entries[i].name, h.entries[i].value)
	}
}
