package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	tests := []struct {
		raw      string
		fallback Role
		want     Role
	}{
		{"ADMIN", RoleGuest, RoleAdmin},
		{"USER", RoleGuest, RoleUser},
		{"UNVERIFIED_USER", RoleGuest, RoleUnverifiedUser},
		{"GUEST", RoleAdmin, RoleGuest},
		{"bogus", RoleGuest, RoleGuest},
		{"", RoleGuest, RoleGuest},
		{"admin", RoleGuest, RoleGuest},
		{" ADMIN", RoleUser, RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleFromString(tt.raw, tt.fallback))
		})
	}
}

func TestNewIdentity(t *testing.T) {
	id, err := NewIdentity(1, "Jo", "jo@x.com", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 1, Name: "Jo", Email: "jo@x.com", Role: RoleAdmin}, id)

	_, err = NewIdentity(0, "Jo", "jo@x.com", RoleUser)
	require.ErrorIs(t, err, ErrInvalidIdentity)

	id, err = NewIdentity(3, "Jo", "jo@x.com", Role("ROOT"))
	require.NoError(t, err)
	assert.Equal(t, RoleGuest, id.Role)
}

func TestSessionState_Phase(t *testing.T) {
	initial := InitialSessionState()
	assert.Equal(t, PhaseVerifying, initial.Phase())
	assert.False(t, initial.Authenticated)
	assert.Nil(t, initial.Identity)

	assert.Equal(t, PhaseUnverified, SessionState{}.Phase())

	id := Identity{ID: 1, Role: RoleUser}
	authed := SessionState{Settled: true}.WithIdentity(&id)
	assert.Equal(t, PhaseAuthenticated, authed.Phase())
	assert.Equal(t, RoleUser, authed.EffectiveRole())

	anon := authed.WithIdentity(nil)
	assert.Equal(t, PhaseUnauthenticated, anon.Phase())
	assert.False(t, anon.Authenticated)
	assert.Equal(t, RoleGuest, anon.EffectiveRole())
}

func TestSessionState_WithIdentityCopies(t *testing.T) {
	id := Identity{ID: 7, Name: "Before", Role: RoleUser}
	st := SessionState{}.WithIdentity(&id)
	id.Name = "After"

	require.NotNil(t, st.Identity)
	assert.Equal(t, "Before", st.Identity.Name)
	assert.True(t, st.Authenticated)
}

func TestIdentity_IsVerified(t *testing.T) {
	assert.True(t, Identity{Role: RoleUser}.IsVerified())
	assert.True(t, Identity{Role: RoleAdmin}.IsVerified())
	assert.False(t, Identity{Role: RoleUnverifiedUser}.IsVerified())
	assert.False(t, Identity{Role: RoleGuest}.IsVerified())
}

func TestSessionState_Clone(t *testing.T) {
	id := Identity{ID: 3, Name: "Jolene", Email: "jo@example.com", Role: RoleUser}
	st := InitialSessionState().WithIdentity(&id)

	cp := st.Clone()
	require.NotNil(t, cp.Identity)
	cp.Identity.Role = RoleAdmin

	assert.Equal(t, RoleUser, st.Identity.Role)
	assert.True(t, cp.Authenticated)
	assert.Nil(t, InitialSessionState().Clone().Identity)
}
