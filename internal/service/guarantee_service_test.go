// FILE: internal/service/guarantee_service_test.go
package service

import (
	"errors"
	"testing"

	"offerstack-be/pkg/admin/guarantee"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapGuaranteeErrorEmailMismatch(t *testing.T) {
	// A wrong email on a public lookup answers exactly like a missing
	// guarantee, so probing emails against known instance ids reveals nothing.
	err := mapGuaranteeError(guarantee.ErrEmailMismatch)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
	assert.Equal(t, guarantee.ErrInstanceNotFound.Error(), fiberErr.Message)
}

func TestMapGuaranteeErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"instance not found", guarantee.ErrInstanceNotFound, fiber.StatusNotFound},
		{"milestone resolved", guarantee.ErrMilestoneAlreadyResolved, fiber.StatusConflict},
		{"instance not active", guarantee.ErrInstanceNotActive, fiber.StatusUnprocessableEntity},
		{"invalid template", guarantee.ErrInvalidTemplate, fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fiberErr *fiber.Error
			require.ErrorAs(t, mapGuaranteeError(tc.err), &fiberErr)
			assert.Equal(t, tc.code, fiberErr.Code)
		})
	}
}

func TestMapGuaranteeErrorPassesThroughUnknown(t *testing.T) {
	unknown := errors.New("connection reset")
	assert.Equal(t, unknown, mapGuaranteeError(unknown))
}
