package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/registrysync/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("institution", "0f1b")
		assert.Equal(t, "institution with key 0f1b not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("person", "k1")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("registry.url", "", "cannot be empty")
		assert.Equal(t, "validation failed for field registry.url: cannot be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{401, pkgerrors.ErrUnauthorized},
		{403, pkgerrors.ErrUnauthorized},
		{404, pkgerrors.ErrNotFound},
		{409, pkgerrors.ErrAlreadyExists},
		{429, pkgerrors.ErrRateLimited},
		{503, pkgerrors.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		err := pkgerrors.NewAPIError("registry", tt.status, "boom")
		assert.True(t, errors.Is(err, tt.target), "status %d", tt.status)
		assert.Contains(t, err.Error(), "registry")
	}

	assert.False(t, errors.Is(pkgerrors.NewAPIError("registry", 400, "bad"), pkgerrors.ErrNotFound))
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing")
	err := pkgerrors.NewConfigError("registry", "url is required", base)
	assert.Equal(t, "configuration error in registry: url is required", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.True(t, pkgerrors.IsConfigError(err))
	assert.False(t, pkgerrors.IsConfigError(base))
}

func TestSyncError(t *testing.T) {
	err := pkgerrors.NewSyncError("herbarium", []string{"NY"}, errors.New("timeout"))
	assert.Contains(t, err.Error(), "herbarium")
	assert.Contains(t, err.Error(), "NY")

	err = pkgerrors.NewSyncError("aggregator", nil, errors.New("timeout"))
	assert.Equal(t, "sync error for source aggregator: timeout", err.Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("create", "institution", "", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))
	assert.NoError(t, pkgerrors.WrapAPI("registry", 500, nil))
	assert.NoError(t, pkgerrors.WrapValidation("f", nil))

	base := errors.New("disk full")
	err := pkgerrors.WrapIO("write", "/tmp/result.yaml", base)
	require.Error(t, err)
	assert.Equal(t, "IO error during write of /tmp/result.yaml: disk full", err.Error())
	assert.True(t, errors.Is(err, base))

	err = pkgerrors.WrapResource("update", "collection", "abc", base)
	assert.Equal(t, "failed to update collection abc: disk full", err.Error())

	err = pkgerrors.WrapAPI("github", 503, base)
	assert.True(t, pkgerrors.IsServiceUnavailable(err))
	assert.True(t, errors.Is(err, base))
}
