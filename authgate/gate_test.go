package authgate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"food-marketplace-api/authgate"
)

func vendorOnly() []authgate.Role {
	return []authgate.Role{authgate.RoleVendor}
}

func TestLoadingSuspendsDecision(t *testing.T) {
	d := authgate.Decide(nil, true, "/vendor/dashboard", vendorOnly())
	assert.Equal(t, authgate.DecisionWait, d.Kind)
	assert.Empty(t, d.RedirectTo)
}

func TestNoIdentityRedirectsToSignIn(t *testing.T) {
	// regardless of the role restriction
	for _, roles := range [][]authgate.Role{nil, vendorOnly(), {authgate.RoleAdmin, authgate.RoleSupplier}} {
		d := authgate.Decide(nil, false, "/vendor/orders", roles)
		assert.Equal(t, authgate.DecisionSignIn, d.Kind)
		assert.Equal(t, authgate.SignInPath, d.RedirectTo)
		assert.Equal(t, "/vendor/orders", d.ReturnTo)
	}
}

func TestWrongRoleIsUnauthorized(t *testing.T) {
	customer := &authgate.Identity{Subject: "1", Role: authgate.RoleCustomer}
	d := authgate.Decide(customer, false, "/vendor/orders", vendorOnly())
	assert.Equal(t, authgate.DecisionUnauthorized, d.Kind)
	assert.Equal(t, authgate.UnauthorizedPath, d.RedirectTo)
}

func TestMatchingRoleAllows(t *testing.T) {
	vendor := &authgate.Identity{Subject: "2", Role: authgate.RoleVendor}
	d := authgate.Decide(vendor, false, "/vendor/orders", vendorOnly())
	assert.Equal(t, authgate.DecisionAllow, d.Kind)

	d = authgate.Decide(vendor, false, "/vendor/orders", []authgate.Role{authgate.RoleAdmin, authgate.RoleVendor})
	assert.Equal(t, authgate.DecisionAllow, d.Kind)
}

func TestNoRestrictionAllowsAnyIdentity(t *testing.T) {
	ident := &authgate.Identity{Subject: "3", Role: authgate.RoleSupplier}
	d := authgate.Decide(ident, false, "/profile", nil)
	assert.Equal(t, authgate.DecisionAllow, d.Kind)
}

func TestUnknownRoleCountsAsCustomer(t *testing.T) {
	ident := &authgate.Identity{Subject: "4", Role: "superuser"}

	// fails any restriction that does not include customer
	d := authgate.Decide(ident, false, "/vendor/orders", vendorOnly())
	assert.Equal(t, authgate.DecisionUnauthorized, d.Kind)

	// passes one that does
	d = authgate.Decide(ident, false, "/orders", []authgate.Role{authgate.RoleCustomer})
	assert.Equal(t, authgate.DecisionAllow, d.Kind)
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, authgate.RoleVendor, authgate.NormalizeRole("vendor"))
	assert.Equal(t, authgate.RoleCustomer, authgate.NormalizeRole(""))
	assert.Equal(t, authgate.RoleCustomer, authgate.NormalizeRole("superuser"))
}

func TestHomePathPerRole(t *testing.T) {
	assert.Equal(t, "/vendor/dashboard", authgate.HomePath(authgate.RoleVendor))
	assert.Equal(t, "/supplier/dashboard", authgate.HomePath(authgate.RoleSupplier))
	assert.Equal(t, "/admin/dashboard", authgate.HomePath(authgate.RoleAdmin))
	assert.Equal(t, "/", authgate.HomePath(authgate.RoleCustomer))
	assert.Equal(t, "/", authgate.HomePath(authgate.Role("nope")))
}
