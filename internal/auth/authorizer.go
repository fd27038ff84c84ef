package auth

import (
	"log/slog"
	"net/http"
)

type Reason string

const (
	ReasonGranted           Reason = "GRANTED"
	ReasonAdminBypass       Reason = "ADMIN_BYPASS"
	ReasonUnauthenticated   Reason = "UNAUTHENTICATED"
	ReasonMissingPermission Reason = "MISSING_PERMISSION"
)

// Decision is the outcome of an authorization check. Denial is a normal
// result reported to the caller, never a fatal condition.
type Decision struct {
	Allowed    bool
	Capability Capability
	Reason     Reason
	Rule       string
}

type Authorizer struct {
	logger *slog.Logger
}

func NewAuthorizer(logger *slog.Logger) *Authorizer {
	return &Authorizer{logger: logger}
}

// Authorize decides whether the principal may exercise the capability.
// Admins pass every check unconditionally; everyone else needs the
// matching stored permission flag.
func (a *Authorizer) Authorize(p *Principal, capability Capability) Decision {
	if p == nil {
		return Decision{Allowed: false, Capability: capability, Reason: ReasonUnauthenticated}
	}

	if p.IsAdmin() {
		return Decision{Allowed: true, Capability: capability, Reason: ReasonAdminBypass, Rule: RuleAdminBypass}
	}

	if capability == CapabilityAdmin {
		return Decision{Allowed: false, Capability: capability, Reason: ReasonMissingPermission, Rule: RuleCapabilityGrant}
	}

	if p.Permissions.Has(capability) {
		return Decision{Allowed: true, Capability: capability, Reason: ReasonGranted, Rule: RuleCapabilityGrant}
	}

	return Decision{Allowed: false, Capability: capability, Reason: ReasonMissingPermission, Rule: RuleCapabilityGrant}
}

// RequireCapability builds a middleware that rejects requests whose
// principal lacks the capability.
func (a *Authorizer) RequireCapability(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			decision := a.Authorize(principal, capability)
			if !decision.Allowed {
				a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", principal.ID,
					"capability", capability,
					"reason", decision.Reason)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates user-management endpoints on the admin role.
func (a *Authorizer) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.IsAdmin() {
				a.logger.WarnContext(r.Context(), "access denied: admin role required", "user_id", principal.ID)
				http.Error(w, "Forbidden: admin role required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
