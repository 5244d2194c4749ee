package helpers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
		Roles     []string `json:"roles,omitempty"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

var (
	jwksMu  sync.Mutex
	jwks    *keyfunc.JWKS
	jwksURL string
)

func supabaseJWKS(supabaseURL string) (*keyfunc.JWKS, error) {
	jwksMu.Lock()
	defer jwksMu.Unlock()

	url := strings.TrimRight(supabaseURL, "/") + "/auth/v1/.well-known/jwks.json"
	if jwks != nil && jwksURL == url {
		return jwks, nil
	}

	set, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS: %w", err)
	}
	if jwks != nil {
		jwks.EndBackground()
	}
	jwks, jwksURL = set, url
	return jwks, nil
}

// ValidateToken verifies a Supabase access token against the project's JWKS.
func ValidateToken(supabaseURL, tokenStr string) (*CustomClaims, error) {
	if supabaseURL == "" {
		return nil, errors.New("supabase URL not set")
	}
	set, err := supabaseJWKS(supabaseURL)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, set.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	numberRe  = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[@$!%*?&#]`)
)

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		numberRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// StringTrim trims and collapses internal runs of whitespace.
func StringTrim(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RemoveDuplicates keeps the first occurrence of each value, compared case
// insensitively, and drops blanks.
func RemoveDuplicates(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = StringTrim(v)
		key := strings.ToLower(v)
		if v == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
