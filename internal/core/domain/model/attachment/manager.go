package attachment

import (
	"errors"
	"fmt"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/pkg/errs"
)

const (
	// DefaultMaxCount is the number of images a single line may carry.
	DefaultMaxCount = 4
	// DefaultMaxSizeMB is the size limit for a single image.
	DefaultMaxSizeMB = 3

	bytesPerMB = 1024 * 1024
)

// ErrPreviewsAreRequired is returned by NewManager without a Previews implementation.
var ErrPreviewsAreRequired = errs.NewValueIsRequiredError("previews")

// AddResult is the outcome of AddFiles. Slot and size rejections may appear together.
type AddResult struct {
	Accepted   []Image
	Rejections []string
}

// Manager enforces count and size limits on line attachments and owns the preview lifecycle.
//
// Example:
//
//	manager, _ := attachment.NewManager(attachment.NewPreviewRegistry())
//	res := manager.AddFiles(line.Images, picked)
//	for _, msg := range res.Rejections {
//	    fmt.Println(msg)
//	}
type Manager struct {
	previews  Previews
	maxCount  int
	maxSizeMB int
}

// ManagerOption overrides a default limit.
type ManagerOption func(*Manager)

// WithMaxCount sets the per-line image limit.
func WithMaxCount(n int) ManagerOption {
	return func(m *Manager) { m.maxCount = n }
}

// WithMaxSizeMB sets the per-image size limit in megabytes.
func WithMaxSizeMB(n int) ManagerOption {
	return func(m *Manager) { m.maxSizeMB = n }
}

// NewManager creates a manager with DefaultMaxCount and DefaultMaxSizeMB unless overridden.
func NewManager(previews Previews, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		previews:  previews,
		maxCount:  DefaultMaxCount,
		maxSizeMB: DefaultMaxSizeMB,
	}
	for _, opt := range opts {
		opt(m)
	}

	var problems []error
	if previews == nil {
		problems = append(problems, ErrPreviewsAreRequired)
	}
	if m.maxCount <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("max images", m.maxCount, 1, "unbounded"))
	}
	if m.maxSizeMB <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("max image size", m.maxSizeMB, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return m, nil
}

// MaxCount returns the per-line image limit.
func (m *Manager) MaxCount() int {
	return m.maxCount
}

// MaxSizeMB returns the per-image size limit.
func (m *Manager) MaxSizeMB() int {
	return m.maxSizeMB
}

// AddFiles validates picked against the images a line already has. Candidates beyond the free
// slots are dropped before size checks; oversized files and files that are not images are
// rejected one by one without aborting the batch. A missing type is guessed from the file name. Accepted images get fresh ids and newly minted previews.
func (m *Manager) AddFiles(existing []Image, picked []File) AddResult {
	res := AddResult{Accepted: []Image{}, Rejections: []string{}}

	remaining := max(0, m.maxCount-len(existing))
	if len(picked) > remaining {
		res.Rejections = append(res.Rejections,
			fmt.Sprintf("only %d more image(s) can be added (limit %d)", remaining, m.maxCount))
		picked = picked[:remaining]
	}

	limit := int64(m.maxSizeMB) * bytesPerMB
	for _, f := range picked {
		if f.Size > limit {
			res.Rejections = append(res.Rejections,
				fmt.Sprintf("%s exceeds %d MB (%.1f MB)", f.Name, m.maxSizeMB, float64(f.Size)/bytesPerMB))
			continue
		}
		mime := f.Type
		if mime == "" {
			mime = MimeTypeByName(f.Name)
		}
		if mime == "" {
			mime = DefaultMimeType
		}
		if !IsImageType(mime) {
			res.Rejections = append(res.Rejections, fmt.Sprintf("%s is not an image (%s)", f.Name, mime))
			continue
		}
		res.Accepted = append(res.Accepted, Image{
			ID:           kernel.NewUUID(),
			OriginalName: f.Name,
			SizeBytes:    f.Size,
			MimeType:     mime,
			Preview:      m.previews.Mint(f),
			Payload:      f.Payload,
		})
	}
	return res
}

// RemoveOne revokes the preview of the image with id and returns the remaining images.
// Unknown ids leave the list unchanged.
func (m *Manager) RemoveOne(images []Image, id kernel.UUID) []Image {
	out := make([]Image, 0, len(images))
	for _, img := range images {
		if img.ID.IsEqual(id) {
			m.previews.Revoke(img.Preview)
			continue
		}
		out = append(out, img)
	}
	return out
}

// ClearAll revokes every preview and returns an empty list.
func (m *Manager) ClearAll(images []Image) []Image {
	m.Release(images...)
	return []Image{}
}

// Release revokes the previews of images that are leaving the cart.
func (m *Manager) Release(images ...Image) {
	for _, img := range images {
		m.previews.Revoke(img.Preview)
	}
}
