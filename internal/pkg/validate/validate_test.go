package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ferrastock/internal/pkg/validate"
)

func TestEmail(t *testing.T) {
	assert.True(t, validate.Email("compras@fornecedor.com.br"))
	assert.False(t, validate.Email("compras"))
	assert.False(t, validate.Email("Compras <compras@fornecedor.com>"))
	assert.False(t, validate.Email("compras@localhost"))
	assert.False(t, validate.Email(""))
}

func TestUUID(t *testing.T) {
	assert.True(t, validate.UUID("3c95b8c8-3f0e-4a4e-9d8f-0d2b1c3a4e5f"))
	assert.False(t, validate.UUID("42"))
}

func TestMaxLen_CountsRunes(t *testing.T) {
	assert.True(t, validate.MaxLen("ção", 3))
	assert.False(t, validate.MaxLen("ação", 3))
}
