package session

import (
	"sync"

	"github.com/agentic-research/randgen/internal/scheme"
)

// HotSwap is a thread-safe holder for the applied TemplateList. Readers get
// the list that was current when they asked; Swap never mutates a list that
// was handed out.
type HotSwap struct {
	mu      sync.RWMutex
	current *scheme.TemplateList
}

func NewHotSwap(initial *scheme.TemplateList) *HotSwap {
	return &HotSwap{current: initial}
}

// Swap replaces the current list and returns the previous one.
func (h *HotSwap) Swap(next *scheme.TemplateList) *scheme.TemplateList {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.current
	h.current = next
	return prev
}

// Current returns the current list. Callers must treat it as read-only.
func (h *HotSwap) Current() *scheme.TemplateList {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}
