package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := DatasetInvalid("missing column price")
	wrapped := Wrap(base, "decode failed")

	assert.Equal(t, CodeDatasetInvalid, GetCode(wrapped))
	assert.Equal(t, "decode failed: missing column price", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrapf(io.EOF, "reading %s", "diamonds.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.ErrorIs(t, wrapped, io.EOF)
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("loader: %w", DatasetUnavailable("file", io.ErrUnexpectedEOF))

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeDatasetUnavailable, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(io.EOF))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("chart"), http.StatusNotFound},
		{InvalidInput("bad field"), http.StatusBadRequest},
		{DatasetUnavailable("postgres", io.EOF), http.StatusServiceUnavailable},
		{RenderFailed("bar", io.EOF), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), GetCode(tt.err))
	}
}
