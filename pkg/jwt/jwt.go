package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAttendant Role = "attendant"
)

// Claims extends jwt.RegisteredClaims with the principal's role. BranchID is
// only set for attendants.
type Claims struct {
	jwt.RegisteredClaims
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	BranchID string `json:"branch_id,omitempty"`
}

// SubjectID parses the subject as the principal's id.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// RemainingTTL is how long the token stays valid from now.
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

type Manager struct {
	signingKey     []byte
	issuer         string
	accessTokenTTL time.Duration
}

func NewManager(signingKey string, issuer string, accessTTL time.Duration) *Manager {
	return &Manager{
		signingKey:     []byte(signingKey),
		issuer:         issuer,
		accessTokenTTL: accessTTL,
	}
}

func (m *Manager) AccessTokenTTL() time.Duration { return m.accessTokenTTL }

// GenerateAdminToken creates a signed access token for an admin.
func (m *Manager) GenerateAdminToken(adminID uuid.UUID, email string) (string, *Claims, error) {
	return m.generate(adminID, RoleAdmin, email, "")
}

// GenerateAttendantToken creates a signed access token for an attendant,
// carrying the attendant's branch.
func (m *Manager) GenerateAttendantToken(attendantID uuid.UUID, email string, branchID uuid.UUID) (string, *Claims, error) {
	return m.generate(attendantID, RoleAttendant, email, branchID.String())
}

func (m *Manager) generate(subject uuid.UUID, role Role, email, branchID string) (string, *Claims, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenTTL)),
			ID:        uuid.New().String(),
		},
		Role:     role,
		Email:    email,
		BranchID: branchID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", nil, err
	}
	return signed, &claims, nil
}

// Validate parses and validates a token string, returning claims.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.signingKey, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	switch claims.Role {
	case RoleAdmin, RoleAttendant:
	default:
		return nil, errors.New("unknown role")
	}
	return claims, nil
}
