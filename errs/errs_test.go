package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsMatchWithErrorsIs(t *testing.T) {
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)
	assert.ErrorIs(t, NotFound("gone"), ErrNotFound)
	assert.ErrorIs(t, InvalidArgument("bad"), ErrInvalidArgument)
	assert.ErrorIs(t, Conflict("dupe"), ErrConflict)
	assert.ErrorIs(t, Internal(errors.New("boom")), ErrInternal)
}

func TestMessageSurfacesClientText(t *testing.T) {
	assert.Equal(t, "You have already reviewed this activity.", Message(Conflict("You have already reviewed this activity.")))
	assert.Equal(t, "no such guide", Message(NotFound("no such guide")))
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Internal(errors.New("mongo: connection refused"))
	assert.Equal(t, "Internal Server Error", Message(err))
	// The cause stays reachable for logging.
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageFallsBackForPlainErrors(t *testing.T) {
	assert.Equal(t, "Internal Server Error", Message(errors.New("raw")))
}
