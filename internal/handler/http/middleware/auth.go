package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirly/attendance-backend-go/internal/domain/auth"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromContext extracts the caller's identity from verified JWT claims.
func IdentityFromContext(ctx context.Context) (user.Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Identity{}, auth.ErrInvalidToken
	}

	role, _ := claims["role"].(string)

	return user.Identity{
		UserID: userID,
		Role:   user.Role(role),
	}, nil
}
