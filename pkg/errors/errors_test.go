package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	clone := Clone(ErrTeacherBusy, "Tod Baker is already scheduled in Block 1 on Day 1! Cannot double book.")
	assert.True(t, Is(clone, ErrTeacherBusy))
	assert.False(t, Is(clone, ErrLocationBusy))

	wrapped := fmt.Errorf("queue: %w", ErrGatewayNotConfigured)
	assert.True(t, Is(wrapped, ErrGatewayNotConfigured))

	nested := Wrap(ErrGatewayNotConfigured, ErrGatewayUnavailable.Code, ErrGatewayUnavailable.Status, "load failed")
	assert.True(t, Is(nested, ErrGatewayUnavailable))
	assert.True(t, Is(nested, ErrGatewayNotConfigured))

	assert.False(t, Is(errors.New("plain"), ErrInternal))
	assert.False(t, Is(nil, ErrInternal))
}

func TestFromErrorNormalises(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)

	assert.Same(t, ErrNotFound, FromError(ErrNotFound))
	assert.Nil(t, FromError(nil))
}

func TestCloneLeavesSourceUntouched(t *testing.T) {
	clone := Clone(ErrLocationBusy, "Theatre is already booked in Block 1 on Day 1!")
	assert.Equal(t, "location already booked", ErrLocationBusy.Message)
	assert.Equal(t, http.StatusConflict, clone.Status)
	assert.Equal(t, ErrLocationBusy, Clone(ErrLocationBusy, ""))
}
