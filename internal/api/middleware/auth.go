package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/Eras256/FlowFi/internal/api/shared/errors"
	"github.com/Eras256/FlowFi/internal/logger"
)

type contextKey string

const OPERATOR_KEY contextKey = "operator"

const (
	CREDENTIAL_JWT    = "jwt"
	CREDENTIAL_APIKEY = "apikey"
)

// AuthConfig guards the write routes (funding records, uploads).
type AuthConfig struct {
	JWTPublicKey string // PEM, PKIX or PKCS1
	APIKeys      []string
}

// Enabled reports whether any credential is configured
func (c AuthConfig) Enabled() bool {
	return c.JWTPublicKey != "" || len(c.apiKeySet()) > 0
}

func (c AuthConfig) apiKeySet() map[string]struct{} {
	keys := make(map[string]struct{}, len(c.APIKeys))
	for _, key := range c.APIKeys {
		if key != "" {
			keys[key] = struct{}{}
		}
	}
	return keys
}

// Operator is the caller admitted by the auth middleware.
type Operator struct {
	Credential string
	Subject    string
}

// verifier checks Authorization headers against a fixed configuration.
// The RSA key is parsed once; a broken key only disables the bearer scheme.
type verifier struct {
	key     *rsa.PublicKey
	keyErr  error
	apiKeys map[string]struct{}
	parser  *jwt.Parser
}

func newVerifier(cfg AuthConfig) *verifier {
	v := &verifier{
		apiKeys: cfg.apiKeySet(),
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"})),
	}
	switch {
	case cfg.JWTPublicKey == "":
		v.keyErr = errors.New("JWT public key not configured")
	default:
		v.key, v.keyErr = parseRSAPublicKey(cfg.JWTPublicKey)
		if v.keyErr != nil {
			logger.Warn("Unusable JWT public key, bearer tokens will be rejected", zap.Error(v.keyErr))
		}
	}
	return v
}

func (v *verifier) verify(header string) (Operator, error) {
	if header == "" {
		return Operator{}, errors.New("missing Authorization header")
	}
	scheme, credential, ok := strings.Cut(header, " ")
	if !ok || credential == "" {
		return Operator{}, errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		subject, err := v.verifyToken(credential)
		if err != nil {
			return Operator{}, err
		}
		return Operator{Credential: CREDENTIAL_JWT, Subject: subject}, nil
	case "apikey":
		if len(v.apiKeys) == 0 {
			return Operator{}, errors.New("no API keys configured")
		}
		if _, ok := v.apiKeys[credential]; !ok {
			return Operator{}, errors.New("invalid API key")
		}
		return Operator{Credential: CREDENTIAL_APIKEY}, nil
	default:
		return Operator{}, fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// verifyToken returns the subject of a valid RSA-signed token.
// Expiry and not-before are enforced by the parser.
func (v *verifier) verifyToken(raw string) (string, error) {
	if v.keyErr != nil {
		return "", v.keyErr
	}
	claims := &jwt.RegisteredClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}); err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return claims.Subject, nil
}

func parseRSAPublicKey(raw string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return nil, errors.New("JWT public key is not PEM encoded")
	}
	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		key, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("JWT public key is not an RSA key")
		}
		return key, nil
	}
	return x509.ParsePKCS1PublicKey(block.Bytes)
}

// Auth admits requests carrying either a Bearer JWT or an ApiKey credential.
// Without configured credentials every request passes.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	if !cfg.Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	v := newVerifier(cfg)

	return func(c *gin.Context) {
		operator, err := v.verify(c.GetHeader("Authorization"))
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Authentication failed", err.Error()))
			return
		}

		c.Set(OPERATOR_KEY, operator)
		c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(),
			zap.String("credential", operator.Credential),
			zap.String("operator", operator.Subject),
		))
		logger.DebugCtx(c.Request.Context(), "Operator authenticated", zap.String("path", c.Request.URL.Path))

		c.Next()
	}
}

// OperatorFrom returns the operator admitted for this request, if any.
func OperatorFrom(c *gin.Context) (Operator, bool) {
	v, ok := c.Get(OPERATOR_KEY)
	if !ok {
		return Operator{}, false
	}
	op, ok := v.(Operator)
	return op, ok
}
