package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundCarriesEntityAndID(t *testing.T) {
	err := NewNotFound("product", "abc")

	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "product", err.Details["entity"])
	assert.Equal(t, "abc", err.Details["id"])
	assert.True(t, IsNotFound(err))
}

func TestEmptyCollectionIsNotFoundWithReason(t *testing.T) {
	err := NewEmptyCollection("products")

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "empty_collection", err.Details["reason"])
	assert.Equal(t, "no products found", err.Message)
}

func TestDuplicateCountsAsConflict(t *testing.T) {
	err := NewDuplicate("product", "name", "Sucre")

	assert.Equal(t, CodeDuplicate, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestConflictHelperMatchesBothCodes(t *testing.T) {
	assert.True(t, IsConflict(NewConflict("still referenced")))
	assert.True(t, IsConflict(NewDuplicate("category", "designation", "x")))
	assert.False(t, IsConflict(NewValidation("bad input")))
}

func TestWithDetailAccumulates(t *testing.T) {
	err := NewValidation("bad input").
		WithDetail("field", "name").
		WithDetail("value", "")

	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "", err.Details["value"])
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := NewNotFound("stock", "s1")
	wrapped := fmt.Errorf("load stock: %w", inner)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestGetHTTPStatusFallsBackTo500(t *testing.T) {
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(NewConflict("x")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}
