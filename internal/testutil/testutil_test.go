package testutil

import (
	"testing"
	"time"

	"github.com/oasisnourish/storefront/internal/domain/account"
)

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "y"} {
		t.Setenv("TESTUTIL_FLAG", v)
		if !envBool("TESTUTIL_FLAG") {
			t.Errorf("envBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no", "nope"} {
		t.Setenv("TESTUTIL_FLAG", v)
		if envBool("TESTUTIL_FLAG") {
			t.Errorf("envBool(%q) = true, want false", v)
		}
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TESTUTIL_VALUE", "")
	if got := getEnvOrDefault("TESTUTIL_VALUE", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}
	t.Setenv("TESTUTIL_VALUE", "set")
	if got := getEnvOrDefault("TESTUTIL_VALUE", "fallback"); got != "set" {
		t.Errorf("expected set, got %s", got)
	}
}

func TestFixedTimeFunc(t *testing.T) {
	now := FixedTimeFunc(TestTime())
	if !now().Equal(now().Add(0)) || !now().Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected fixed time %v", now())
	}
}

func TestIdentityBuilder(t *testing.T) {
	id := NewIdentity().WithID(9).WithName("Jolene").Unverified().Build()
	if id.ID != 9 || id.Name != "Jolene" || id.Role != account.RoleUnverifiedUser {
		t.Errorf("unexpected identity %+v", id)
	}

	st := NewIdentity().Admin().Session()
	if !st.Authenticated || st.Identity.Role != account.RoleAdmin || st.Loading {
		t.Errorf("unexpected session %+v", st)
	}

	if GuestSession().Authenticated {
		t.Error("guest session must not be authenticated")
	}
}
