// Package authgate decides route access for the marketplace's role-gated
// surfaces. The decision is a pure function of the identity, the loading
// flag of the identity resolution, the requested path, and the allowed-role
// restriction; navigation is left to the caller.
package authgate

// Role defines allowed roles in the system
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is a member of the closed role set
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleSupplier, RoleAdmin:
		return true
	}
	return false
}

// NormalizeRole maps a missing or unknown role to customer
func NormalizeRole(raw string) Role {
	r := Role(raw)
	if !r.Valid() {
		return RoleCustomer
	}
	return r
}

// Identity is the authenticated subject as resolved by the auth collaborator
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    Role
}

// DecisionKind enumerates the possible gate outcomes
type DecisionKind int

const (
	// DecisionWait suspends the decision while identity resolution is pending
	DecisionWait DecisionKind = iota
	// DecisionAllow renders the requested content
	DecisionAllow
	// DecisionSignIn redirects to the sign-in entry, carrying the return path
	DecisionSignIn
	// DecisionUnauthorized redirects to the unauthorized destination
	DecisionUnauthorized
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionSignIn:
		return "sign_in"
	case DecisionUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Fixed redirect destinations
const (
	SignInPath       = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decision is the gate's verdict for one requested path
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
	// ReturnTo carries the originally requested path for post-login return
	ReturnTo string
}

// Decide resolves access for a requested path.
//
// While the identity resolution is still loading the decision is suspended,
// never defaulted. Without an identity the caller is sent to sign-in with
// the requested path preserved. With an identity, an empty allowedRoles
// means no restriction; otherwise the identity's role must be a member. An
// unknown or missing role counts as customer, so it only passes checks that
// explicitly allow customers.
func Decide(ident *Identity, loading bool, requestedPath string, allowedRoles []Role) Decision {
	if loading {
		return Decision{Kind: DecisionWait}
	}
	if ident == nil {
		return Decision{
			Kind:       DecisionSignIn,
			RedirectTo: SignInPath,
			ReturnTo:   requestedPath,
		}
	}
	if len(allowedRoles) == 0 {
		return Decision{Kind: DecisionAllow}
	}
	role := ident.Role
	if !role.Valid() {
		role = RoleCustomer
	}
	for _, allowed := range allowedRoles {
		if role == allowed {
			return Decision{Kind: DecisionAllow}
		}
	}
	return Decision{Kind: DecisionUnauthorized, RedirectTo: UnauthorizedPath}
}

// HomePath returns the landing destination for a role after sign-in.
// Exhaustive over the closed role set; anything else lands on the customer
// storefront.
func HomePath(r Role) string {
	switch r {
	case RoleVendor:
		return "/vendor/dashboard"
	case RoleSupplier:
		return "/supplier/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleCustomer:
		return "/"
	default:
		return "/"
	}
}
