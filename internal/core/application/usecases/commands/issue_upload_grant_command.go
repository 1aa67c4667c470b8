package commands

import (
	"errors"
	"fmt"

	"bloom/internal/core/domain/model/upload"
	"bloom/internal/pkg/errs"
	"bloom/internal/pkg/guard"
)

var ErrIssueUploadGrantCommandIsNotConstructed = errors.New(
	"IssueUploadGrantCommand must be created via NewIssueUploadGrantCommand constructor",
)

// IssueUploadGrantCommand asks for a signed PUT URL for one checkout image.
//
// Example:
//
//	cmd, err := NewIssueUploadGrantCommand("orders/…/…/….jpg", "image/jpeg")
//	if err != nil {
//	    return err
//	}
//	grant, err := handler.Handle(ctx, cmd)
type IssueUploadGrantCommand struct { //nolint:recvcheck //using for validation
	key         upload.ObjectKey
	contentType string

	guard guard.ConstructorGuard
}

// NewIssueUploadGrantCommand parses key and checks that contentType is an image type.
func NewIssueUploadGrantCommand(key, contentType string) (IssueUploadGrantCommand, error) {
	cmd := IssueUploadGrantCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setKey(key),
		cmd.setContentType(contentType),
	); err != nil {
		return IssueUploadGrantCommand{}, err
	}
	return cmd, nil
}

func (c IssueUploadGrantCommand) Validate() error {
	return c.guard.Validate(ErrIssueUploadGrantCommandIsNotConstructed)
}

func (c IssueUploadGrantCommand) Key() upload.ObjectKey {
	return c.key
}

func (c IssueUploadGrantCommand) ContentType() string {
	return c.contentType
}

func (c *IssueUploadGrantCommand) setKey(key string) error {
	if key == "" {
		return upload.ErrObjectKeyIsRequired
	}
	parsed, err := upload.ParseObjectKey(key)
	if err != nil {
		return err
	}
	c.key = parsed
	return nil
}

func (c *IssueUploadGrantCommand) setContentType(ct string) error {
	if !upload.IsImageContentType(ct) {
		return errs.NewValueIsInvalidErrorWithCause("content type", fmt.Errorf("%q is not an image type", ct))
	}
	c.contentType = ct
	return nil
}
