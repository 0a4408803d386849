package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(New(KindNotFound, "event not found")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindUnavailable, "store unavailable", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.Equal(t, "store unavailable", ClientMessage(err))
}

func TestKindSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", New(KindInsufficientSeats, "only 2 seats left"))

	assert.Equal(t, KindInsufficientSeats, KindOf(err))
	assert.True(t, Is(err, KindInsufficientSeats))
	assert.Equal(t, "only 2 seats left", ClientMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInsufficientSeats, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
		{KindConflict, http.StatusConflict},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindIntegrity, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(New(tc.kind, "x")), tc.kind.String())
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("untyped")))
}
