package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a valid access token and stores the
// caller's auth.Principal in the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		principal, err := jwt.PrincipalFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	}
	return http.HandlerFunc(hfn)
}

// RequireCapability rejects callers whose role lacks capability.
func RequireCapability(guard auth.Guard, capability auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if err := guard.Require(principal, capability); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
