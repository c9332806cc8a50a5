package access

import (
	"testing"

	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFromMap(t *testing.T) {
	s, ok := FromMap(map[string]interface{}{"user_id": "u1", "email": "Admin@AxisoGreen.in", "role": "admin"})
	assert.True(t, ok)
	assert.Equal(t, "admin@axisogreen.in", s.Email)

	_, ok = FromMap(nil)
	assert.False(t, ok)
	_, ok = FromMap(map[string]interface{}{"email": "a@b.c"})
	assert.False(t, ok)
}

func TestRequire(t *testing.T) {
	admin := Session{UserID: "1", Email: constants.SuperAdminEmail, Role: "admin"}
	ops := Session{UserID: "2", Email: constants.OperationsEmail, Role: "admin"}

	assert.NoError(t, admin.Require(constants.DeletePayment))
	assert.ErrorIs(t, ops.Require(constants.DeletePayment), domain.ErrUnauthorized)
	assert.ErrorIs(t, ops.Require(constants.AddPayment), domain.ErrUnauthorized)

	caps := ops.Capabilities()
	assert.True(t, caps[constants.ViewReceipts])
	assert.False(t, caps[constants.ViewRevenue])
}
