package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const downloadAudience = "court-admin/exports"

// ErrInvalidDownload is returned for tokens that do not grant a download.
var ErrInvalidDownload = errors.New("invalid download token")

// ErrDownloadExpired is returned once a download link has run out.
var ErrDownloadExpired = errors.New("download link expired")

// Download is what a signed export link grants: one stored file in one
// format until ExpiresAt.
type Download struct {
	ExportID  string
	File      string
	Format    string
	ExpiresAt time.Time
}

type downloadClaims struct {
	Format string `json:"fmt"`
	jwt.RegisteredClaims
}

// SignedURLSigner issues and checks export download tokens. Tokens are HS256
// JWTs scoped to the export audience, so an API bearer token never doubles
// as a download link.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token for the stored export file.
func (s *SignedURLSigner) Sign(exportID, file, format string) (string, time.Time, error) {
	if exportID == "" || file == "" || format == "" {
		return "", time.Time{}, fmt.Errorf("export id, file and format required")
	}
	now := s.now()
	expiresAt := now.Add(s.ttl).Truncate(time.Second)
	claims := downloadClaims{
		Format: format,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        exportID,
			Subject:   file,
			Audience:  jwt.ClaimStrings{downloadAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign download token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify checks the token signature and audience. Expiry is enforced unless
// allowExpired is set.
func (s *SignedURLSigner) Verify(token string, allowExpired bool) (Download, error) {
	claims := &downloadClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		return Download{}, fmt.Errorf("%w: %v", ErrInvalidDownload, err)
	}
	if !hasAudience(claims.Audience, downloadAudience) || claims.ID == "" || claims.Subject == "" || claims.ExpiresAt == nil {
		return Download{}, ErrInvalidDownload
	}

	d := Download{
		ExportID:  claims.ID,
		File:      claims.Subject,
		Format:    claims.Format,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if !allowExpired && !s.now().Before(d.ExpiresAt) {
		return d, ErrDownloadExpired
	}
	return d, nil
}

func hasAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
