package upload

import (
	"fmt"
	"regexp"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/pkg/errs"
)

var objectKeyPattern = regexp.MustCompile(
	`^orders/([0-9a-f-]{36})/([0-9a-f-]{36})/([0-9a-f-]{36})\.([a-z0-9]{1,10})$`,
)

// ObjectKey is a parsed orders/{orderId}/{itemId}/{fileId}.{ext} storage key.
type ObjectKey struct {
	raw     string
	orderID kernel.UUID
	itemID  kernel.UUID
	fileID  kernel.UUID
	ext     string
}

// ParseObjectKey accepts only keys produced by checkout: three lower-case UUIDs and a lower-case
// alphanumeric extension.
func ParseObjectKey(s string) (ObjectKey, error) {
	m := objectKeyPattern.FindStringSubmatch(s)
	if m == nil {
		return ObjectKey{}, errs.NewValueIsInvalidErrorWithCause(
			"object key", fmt.Errorf("%q does not match orders/{orderId}/{itemId}/{fileId}.{ext}", s))
	}
	ids := make([]kernel.UUID, 0, 3)
	for _, part := range m[1:4] {
		id, err := kernel.UUIDFromString(part)
		if err != nil {
			return ObjectKey{}, errs.NewValueIsInvalidErrorWithCause("object key", err)
		}
		ids = append(ids, id)
	}
	return ObjectKey{raw: s, orderID: ids[0], itemID: ids[1], fileID: ids[2], ext: m[4]}, nil
}

func (k ObjectKey) String() string       { return k.raw }
func (k ObjectKey) OrderID() kernel.UUID { return k.orderID }
func (k ObjectKey) ItemID() kernel.UUID  { return k.itemID }
func (k ObjectKey) FileID() kernel.UUID  { return k.fileID }
func (k ObjectKey) Ext() string          { return k.ext }

// IsZero reports whether k was not produced by ParseObjectKey.
func (k ObjectKey) IsZero() bool {
	return k.raw == ""
}
