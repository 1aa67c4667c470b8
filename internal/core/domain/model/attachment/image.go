package attachment

import "bloom/internal/core/domain/model/kernel"

// Image is an accepted attachment owned by exactly one cart line.
type Image struct {
	ID           kernel.UUID
	OriginalName string
	SizeBytes    int64
	MimeType     string
	Preview      PreviewHandle
	Payload      Payload
}
