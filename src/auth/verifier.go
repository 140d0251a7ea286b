// Package auth verifies bearer tokens issued by the managed identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"finpal-server/src/apperr"
	"finpal-server/src/logger"
	"finpal-server/src/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
)

type Config struct {
	JWKSURL    string
	Issuer     string
	Audience   string
	HMACSecret string
	CacheTTL   time.Duration

	// MinRefreshInterval throttles JWKS refetches triggered by unknown kids.
	MinRefreshInterval time.Duration
	HTTPClient         *http.Client
}

type Verifier struct {
	cfg    Config
	keys   *keyCache
	parser *jwt.Parser

	refreshMu   sync.Mutex
	lastRefresh time.Time
}

// tokenClaims covers both ID tokens (aud) and access tokens (client_id).
type tokenClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"cognito:username"`
	ClientID string `json:"client_id"`
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.JWKSURL == "" && cfg.HMACSecret == "" {
		return nil, errors.New("auth: no key source configured")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	keys, err := newKeyCache(cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: key cache: %w", err)
	}

	var methods []string
	if cfg.JWKSURL != "" {
		methods = append(methods, "RS256", "RS384", "RS512", "ES256", "ES384", "ES512")
	}
	if cfg.HMACSecret != "" {
		methods = append(methods, "HS256", "HS384", "HS512")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		cfg:    cfg,
		keys:   keys,
		parser: jwt.NewParser(opts...),
	}, nil
}

// VerifyHeader validates an Authorization header value of the form
// "Bearer <token>" and returns the caller's claims.
func (v *Verifier) VerifyHeader(ctx context.Context, header string) (*models.Claims, error) {
	token := bearerToken(header)
	if token == "" {
		return nil, apperr.Authentication(msgNoToken, nil)
	}
	return v.Verify(ctx, token)
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims := &tokenClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyFunc(ctx))
	if err != nil || !token.Valid {
		logger.Get().Warn("token verification failed", zap.Error(err))
		return nil, apperr.Authentication(msgInvalidToken, err)
	}

	if v.cfg.Audience != "" && !slices.Contains(claims.Audience, v.cfg.Audience) && claims.ClientID != v.cfg.Audience {
		logger.Get().Warn("token audience mismatch",
			zap.Strings("aud", claims.Audience),
			zap.String("client_id", claims.ClientID))
		return nil, apperr.Authentication(msgInvalidToken, errors.New("audience mismatch"))
	}
	if claims.Subject == "" {
		return nil, apperr.Authentication(msgInvalidToken, errors.New("missing sub"))
	}

	name := claims.Name
	if name == "" {
		name = claims.Username
	}
	return &models.Claims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    name,
	}, nil
}

func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); ok {
			return []byte(v.cfg.HMACSecret), nil
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid in token header")
		}
		return v.lookupKey(ctx, kid)
	}
}

func (v *Verifier) lookupKey(ctx context.Context, kid string) (interface{}, error) {
	if key, ok := v.keys.get(kid); ok {
		return key, nil
	}

	v.refreshMu.Lock()
	defer v.refreshMu.Unlock()

	// Another request may have refreshed while we waited.
	if key, ok := v.keys.get(kid); ok {
		return key, nil
	}
	if !v.lastRefresh.IsZero() && time.Since(v.lastRefresh) < v.cfg.MinRefreshInterval {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}

	jwks, err := fetchJWKS(ctx, v.cfg.HTTPClient, v.cfg.JWKSURL)
	if err != nil {
		return nil, err
	}
	v.lastRefresh = time.Now()

	keys := make(map[string]interface{}, len(jwks))
	for _, k := range jwks {
		if k.Kid == "" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			logger.Get().Warn("skipping unusable jwk", zap.String("kid", k.Kid), zap.Error(err))
			continue
		}
		keys[k.Kid] = pub
	}
	v.keys.setAll(keys)

	key, ok := keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}
	return key, nil
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
