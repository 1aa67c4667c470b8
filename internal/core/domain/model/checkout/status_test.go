package checkout_test

import (
	"testing"

	"bloom/internal/core/domain/model/checkout"
	"bloom/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_HappyPath(t *testing.T) {
	s := checkout.Idle
	var err error

	steps := []func() (checkout.State, error){
		func() (checkout.State, error) { return s.Prepare() },
		func() (checkout.State, error) { return s.UploadImages() },
		func() (checkout.State, error) { return s.UploadImages() },
		func() (checkout.State, error) { return s.CreateOrder() },
		func() (checkout.State, error) { return s.Redirect() },
		func() (checkout.State, error) { return s.Succeed() },
	}
	for _, step := range steps {
		s, err = step()
		require.NoError(t, err)
	}

	assert.Equal(t, checkout.Success, s)
	assert.True(t, s.IsTerminal())
}

func TestState_SkipsUploadsWithoutImages(t *testing.T) {
	s, err := checkout.Preparing.CreateOrder()

	require.NoError(t, err)
	assert.Equal(t, checkout.CreatingOrder, s)
}

func TestState_InvalidTransitions(t *testing.T) {
	tests := map[string]func() (checkout.State, error){
		"prepare while uploading": checkout.UploadingImages.Prepare,
		"redirect before order":   checkout.UploadingImages.Redirect,
		"succeed from creating":   checkout.CreatingOrder.Succeed,
		"fail from idle":          checkout.Idle.Fail,
		"fail twice":              checkout.Failed.Fail,
		"upload after success":    checkout.Success.UploadImages,
		"reset while in flight":   checkout.CreatingOrder.Reset,
	}

	for name, transition := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := transition()

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, checkout.Unknown, s)
		})
	}
}

func TestState_FailFromEveryActiveState(t *testing.T) {
	for _, s := range []checkout.State{
		checkout.Preparing, checkout.UploadingImages, checkout.CreatingOrder, checkout.Redirecting,
	} {
		t.Run(s.String(), func(t *testing.T) {
			assert.True(t, s.IsActive())
			failed, err := s.Fail()

			require.NoError(t, err)
			assert.Equal(t, checkout.Failed, failed)
		})
	}
}

func TestState_Reset(t *testing.T) {
	for _, s := range []checkout.State{checkout.Idle, checkout.Success, checkout.Failed} {
		idle, err := s.Reset()

		require.NoError(t, err)
		assert.Equal(t, checkout.Idle, idle)
	}
}

func TestState_ValidateAndString(t *testing.T) {
	require.NoError(t, checkout.Redirecting.Validate())
	require.ErrorIs(t, checkout.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, checkout.State(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "UploadingImages", checkout.UploadingImages.String())
	assert.Equal(t, "Unknown", checkout.State(42).String())
}

func TestStatus_String(t *testing.T) {
	uploading := checkout.Status{State: checkout.UploadingImages, Uploaded: 2, Total: 3}

	assert.Equal(t, "2/3", uploading.Progress())
	assert.Equal(t, "UploadingImages(2/3)", uploading.String())
	assert.Equal(t, "CreatingOrder", checkout.Status{State: checkout.CreatingOrder}.String())
}
