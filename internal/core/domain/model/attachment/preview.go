package attachment

import (
	"fmt"
	"sync"
)

// PreviewHandle identifies a locally rendered preview of an image.
type PreviewHandle string

// Previews mints and revokes preview handles. Revoke must tolerate handles that were already
// revoked or never minted.
type Previews interface {
	Mint(f File) PreviewHandle
	Revoke(h PreviewHandle)
}

// PreviewRegistry is an in-memory Previews that tracks which handles are still live.
type PreviewRegistry struct {
	mu   sync.Mutex
	seq  uint64
	live map[PreviewHandle]struct{}
}

// NewPreviewRegistry creates an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{live: make(map[PreviewHandle]struct{})}
}

func (r *PreviewRegistry) Mint(f File) PreviewHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	h := PreviewHandle(fmt.Sprintf("preview:%d:%s", r.seq, f.Name))
	r.live[h] = struct{}{}
	return h
}

func (r *PreviewRegistry) Revoke(h PreviewHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, h)
}

// IsLive reports whether h was minted and not yet revoked.
func (r *PreviewRegistry) IsLive(h PreviewHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.live[h]
	return ok
}

// Live returns the number of handles not yet revoked.
func (r *PreviewRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
