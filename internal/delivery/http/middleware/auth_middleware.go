package middleware

import (
	"context"
	"net/http"
	"strings"

	"provider-directory/pkg/jwt"
	"provider-directory/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SubjectKey contextKey = "subject"
	TokenIDKey contextKey = "token_id"
)

// RevokedTokenKey is the redis key marking a token ID as revoked.
func RevokedTokenKey(tokenID string) string {
	return "revoked_token:" + tokenID
}

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	required    bool
	log         *logrus.Logger
}

// NewAuthMiddleware builds the bearer check. When required is false a
// request without an Authorization header passes anonymously, but a header
// that is present must still carry a valid token. redisClient may be nil,
// in which case revocation is not checked.
func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client, required bool, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
		required:    required,
		log:         log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if m.required {
				response.Unauthorized(w, "Se requiere el encabezado Authorization")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Formato de Authorization inválido")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Token inválido o expirado")
			return
		}

		if m.redisClient != nil {
			exists, err := m.redisClient.Exists(r.Context(), RevokedTokenKey(claims.TokenID)).Result()
			if err != nil {
				m.log.Warnf("Failed to check token revocation: %+v", err)
				response.InternalServerError(w, "")
				return
			}
			if exists > 0 {
				response.Unauthorized(w, "El token ha sido revocado")
				return
			}
		}

		ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectFromContext extracts the token subject from context
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
