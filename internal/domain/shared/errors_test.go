package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesKindAndCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError("storage", "Save", ErrStorage, "cannot write roster", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStorage(fmt.Errorf("register: %w", err)))
	assert.False(t, IsValidation(err))
	assert.Equal(t, "storage.Save: cannot write roster: permission denied", err.Error())
}

func TestPredefinedErrors(t *testing.T) {
	assert.True(t, IsAlreadyExists(ErrStudentAlreadyExists))
	assert.True(t, IsValidation(ErrInvalidAdmissionYear))
	assert.True(t, IsValidation(ErrEmptySearchTerm))
	assert.ErrorIs(t, ErrRosterCorrupt, ErrCorruptData)
	assert.Equal(t, "search.Validate: search term is empty", ErrEmptySearchTerm.Error())
}
