package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type record struct{ owner uuid.UUID }

func (r record) OwnerID() uuid.UUID { return r.owner }

func TestAuthorize(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, Authorize(record{owner}, owner))
	assert.ErrorIs(t, Authorize(record{owner}, uuid.New()), ErrForbidden)
	assert.ErrorIs(t, Authorize(nil, owner), ErrForbidden)
	assert.ErrorIs(t, Authorize(record{uuid.Nil}, uuid.Nil), ErrForbidden)
}
