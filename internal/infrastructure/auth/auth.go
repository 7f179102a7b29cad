package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/config"
	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

// ContextKeySubject holds the authenticated subject on the gin context.
const ContextKeySubject = "auth_subject"

// Validator checks bearer JWTs against the issuer's JWKS.
type Validator struct {
	enabled  bool
	issuer   string
	audience string
	keyfunc  jwt.Keyfunc
	log      zerolog.Logger
}

// NewValidator fetches the JWKS when auth is enabled. Disabled auth yields a pass-through validator.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	v := &Validator{
		enabled:  cfg.AuthEnabled,
		issuer:   cfg.AuthIssuer,
		audience: cfg.AuthAudience,
		log:      log.With().Str("component", "auth").Logger(),
	}
	if !cfg.AuthEnabled {
		return v, nil
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			v.log.Error().Err(err).Msg("jwks refresh error")
		},
	})
	if err != nil {
		return nil, err
	}
	v.keyfunc = jwks.Keyfunc
	return v, nil
}

// Middleware enforces JWT auth when enabled.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			platformerrors.WriteUnauthorized(c, "missing bearer token")
			return
		}

		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		}
		if v.audience != "" {
			opts = append(opts, jwt.WithAudience(v.audience))
		}
		if v.issuer != "" {
			opts = append(opts, jwt.WithIssuer(v.issuer))
		}

		token, err := jwt.Parse(tokenString, v.keyfunc, opts...)
		if err != nil || !token.Valid {
			v.log.Debug().Err(err).Str("path", c.FullPath()).Msg("rejected bearer token")
			platformerrors.WriteUnauthorized(c, "invalid token")
			return
		}

		if subject, err := token.Claims.GetSubject(); err == nil {
			c.Set(ContextKeySubject, subject)
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
