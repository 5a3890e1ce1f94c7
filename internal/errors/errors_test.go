package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("strategy", "must be one of delete, zero, mean or mode")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "strategy", details.Field)
}

func TestCleaningError(t *testing.T) {
	err := CleaningError(errors.New("stage missing: boom"))
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, "CLEANING_FAILED", err.ErrorCode)
	assert.Equal(t, "stage missing: boom", err.Details)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrPayloadTooLarge)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", resp.Error.ErrorCode)
}

func TestUnknownStrategyError(t *testing.T) {
	err := UnknownStrategyError("median")

	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Contains(t, err.Error(), `"median"`)
	assert.True(t, IsConfigurationError(err))
}

func TestInvalidThresholdError(t *testing.T) {
	err := InvalidThresholdError(-1.5)

	assert.ErrorIs(t, err, ErrInvalidThreshold)
	assert.Contains(t, err.Error(), "-1.5")
	assert.True(t, IsConfigurationError(err))
}

func TestUnsupportedFileError(t *testing.T) {
	err := UnsupportedFileError(".parquet")

	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.Contains(t, err.Error(), ".parquet")
	assert.False(t, IsConfigurationError(err))
}

func TestIsConfigurationError_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("stage missing: %w", UnknownStrategyError("median"))
	assert.True(t, IsConfigurationError(wrapped))

	assert.False(t, IsConfigurationError(errors.New("disk full")))
	assert.False(t, IsConfigurationError(ErrEmptyInput))
}
