// Package gcs issues V4 signed PUT URLs for checkout images in a Cloud Storage bucket.
package gcs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"bloom/internal/core/ports"
	"bloom/internal/pkg/errs"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iamcredentials/v1"
)

var _ ports.URLSigner = (*URLSigner)(nil)

// URLSigner signs with a service account private key when one is configured, and otherwise
// through the IAM Credentials SignBlob API as the signer email.
type URLSigner struct {
	bucket     string
	accessID   string
	privateKey []byte
	signBytes  func(ctx context.Context, b []byte) ([]byte, error)
	now        func() time.Time
}

// NewURLSigner validates the settings. privateKeyPEM may hold literal "\n" sequences, which is
// how multi-line keys usually arrive through environment variables.
func NewURLSigner(bucket, signerEmail, privateKeyPEM string) (*URLSigner, error) {
	bucket = strings.TrimSpace(bucket)
	signerEmail = strings.TrimSpace(signerEmail)

	var err error
	if bucket == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("GCS_BUCKET"))
	}
	if signerEmail == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("GCS_SIGNER_EMAIL"))
	}
	if err != nil {
		return nil, err
	}

	s := &URLSigner{bucket: bucket, accessID: signerEmail, now: time.Now}
	if key := strings.TrimSpace(privateKeyPEM); key != "" {
		s.privateKey = []byte(strings.ReplaceAll(key, `\n`, "\n"))
	} else {
		s.signBytes = s.signBlob
	}
	return s, nil
}

// SignPut returns a URL that accepts exactly one PUT of key with contentType until expires.
func (s *URLSigner) SignPut(ctx context.Context, key, contentType string, expires time.Time) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errs.NewValueIsRequiredError("object key")
	}
	if !expires.After(s.now()) {
		return "", errs.NewValueIsInvalidErrorWithCause("expires", fmt.Errorf("%s is in the past", expires))
	}

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		GoogleAccessID: s.accessID,
		ContentType:    contentType,
		Expires:        expires.UTC(),
	}
	if s.privateKey != nil {
		opts.PrivateKey = s.privateKey
	} else {
		opts.SignBytes = func(b []byte) ([]byte, error) { return s.signBytes(ctx, b) }
	}

	u, err := storage.SignedURL(s.bucket, key, opts)
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", key, err)
	}
	return u, nil
}

func (s *URLSigner) signBlob(ctx context.Context, payload []byte) ([]byte, error) {
	svc, err := iamcredentials.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("iamcredentials init: %w", err)
	}
	name := fmt.Sprintf("projects/-/serviceAccounts/%s", s.accessID)
	resp, err := svc.Projects.ServiceAccounts.SignBlob(name, &iamcredentials.SignBlobRequest{
		Payload: base64.StdEncoding.EncodeToString(payload),
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(resp.SignedBlob)
}
