package cart

import (
	"sync"

	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/shipping"
)

// Store owns the live cart. Each method applies one Cart operation atomically, and every image
// that leaves the cart has its preview released through the attachment manager before the method
// returns. Create one Store at the application root and pass it to whoever needs it.
type Store struct {
	mu     sync.Mutex
	state  Cart
	images *attachment.Manager
}

// NewStore creates a store holding an empty cart.
func NewStore(images *attachment.Manager) *Store {
	return &Store{state: New(), images: images}
}

// State returns the current cart. The value is immutable and safe to keep as a snapshot.
func (s *Store) State() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) AddLine(in LineInput) kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var id kernel.UUID
	s.state, id = s.state.AddLine(in)
	return id
}

func (s *Store) RemoveLine(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var released []attachment.Image
	s.state, released = s.state.RemoveLine(id)
	s.images.Release(released...)
}

func (s *Store) SetLineMode(id kernel.UUID, mode DeliveryMode, pickupCity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetLineMode(id, mode, pickupCity)
}

func (s *Store) SetLineDeliveryDate(id kernel.UUID, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetLineDeliveryDate(id, date)
}

func (s *Store) SetLineAddress(id kernel.UUID, addr DeliveryAddress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetLineAddress(id, addr)
}

func (s *Store) SetLineShipping(id kernel.UUID, q shipping.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetLineShipping(id, q)
}

// SetLineImages replaces the images of a line and releases previous images that are not kept.
func (s *Store) SetLineImages(id kernel.UUID, images []attachment.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var previous []attachment.Image
	s.state, previous = s.state.SetLineImages(id, images)
	s.images.Release(dropped(previous, images)...)
}

// AttachImages runs picked through the attachment manager against the line's current images and
// appends what it accepts. Unknown lines reject nothing and accept nothing.
func (s *Store) AttachImages(id kernel.UUID, picked []attachment.File) attachment.AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.state.Line(id)
	if !ok {
		return attachment.AddResult{Accepted: []attachment.Image{}, Rejections: []string{}}
	}
	res := s.images.AddFiles(line.Images, picked)
	s.state, _ = s.state.SetLineImages(id, append(line.Images, res.Accepted...))
	return res
}

// RemoveImage drops one image from a line and releases its preview.
func (s *Store) RemoveImage(lineID, imageID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.state.Line(lineID)
	if !ok {
		return
	}
	s.state, _ = s.state.SetLineImages(lineID, s.images.RemoveOne(line.Images, imageID))
}

func (s *Store) SetBuyer(p BuyerPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetBuyer(p)
}

// Clear empties the cart and releases every image preview it held.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var released []attachment.Image
	s.state, released = s.state.Clear()
	s.images.ClearAll(released)
}

func dropped(previous, kept []attachment.Image) []attachment.Image {
	keep := make(map[attachment.PreviewHandle]struct{}, len(kept))
	for _, img := range kept {
		keep[img.Preview] = struct{}{}
	}
	var out []attachment.Image
	for _, img := range previous {
		if _, ok := keep[img.Preview]; !ok {
			out = append(out, img)
		}
	}
	return out
}
