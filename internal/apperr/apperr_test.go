package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"upstream", Upstream("upload failed", errors.New("s3 down")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("missing")), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := Internal("failed to place order", errors.New("pq: deadlock detected"))

	assert.Equal(t, "failed to place order", PublicMessage(err))
	assert.Contains(t, err.Error(), "deadlock")
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("pq: syntax error")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := Upstream("image upload failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUpstream, KindOf(err))
}
