package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "finhealth/internal/errors"
)

const (
	shareIssuer = "finhealth-api"
	shareScope  = "analysis:read"

	sharedAnalysisIDKey = "sharedAnalysisID"
)

// ShareClaims are the claims of a read-only share link for one analysis.
type ShareClaims struct {
	AnalysisID string `json:"analysis_id"`
	Scope      string `json:"scope"`
	jwt.RegisteredClaims
}

// ShareTokens issues and verifies share-link JWTs.
type ShareTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewShareTokens creates a ShareTokens signing with secret (HS256).
func NewShareTokens(secret string, ttl time.Duration) *ShareTokens {
	return &ShareTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns how long issued links stay valid.
func (s *ShareTokens) TTL() time.Duration { return s.ttl }

// Issue signs a share token for analysisID.
func (s *ShareTokens) Issue(analysisID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &ShareClaims{
		AnalysisID: analysisID,
		Scope:      shareScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    shareIssuer,
			Subject:   analysisID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses tokenString and returns its claims when the signature,
// expiry, issuer and scope all check out.
func (s *ShareTokens) Verify(tokenString string) (*ShareClaims, error) {
	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(shareIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid share token")
	}
	if claims.Scope != shareScope || claims.AnalysisID == "" {
		return nil, errors.New("token is not a share token")
	}
	return claims, nil
}

// ShareTokenMiddleware verifies the share token in the :token path
// parameter (or a Bearer header) and stores the analysis ID in the context.
func ShareTokenMiddleware(tokens *ShareTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("token")
		if raw == "" {
			raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidShareToken, err))
			c.Abort()
			return
		}

		c.Set(sharedAnalysisIDKey, claims.AnalysisID)
		c.Next()
	}
}

// SharedAnalysisID returns the analysis ID stored by ShareTokenMiddleware.
func SharedAnalysisID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sharedAnalysisIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
