package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
)

// Profile links carried in the access token next to the role.
type ProfileClaims struct {
	StaffID  *string
	MentorID *string
}

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role, profile ProfileClaims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt int64)
	IsTokenRevoked(tokenID string) bool
	PruneRevoked() int
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role, profile ProfileClaims) (token string, expiresAt int64, err error) {
	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":   userID,
		"email":     email,
		"role":      string(role),
		"staff_id":  valueOrNil(profile.StaffID),
		"mentor_id": valueOrNil(profile.MentorID),
		"type":      "access",
		"jti":       uuid.NewString(),
		"iat":       issuedAt.Unix(),
		"exp":       expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blocks the token with the given jti until it would have
// expired anyway. Revocation follows the token wherever it is presented.
func (j *JWTService) RevokeToken(tokenID string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[tokenID] = expiresAt
}

// PruneRevoked forgets revoked token IDs that have expired, since those can never
// verify again. It returns the number of entries removed.
func (j *JWTService) PruneRevoked() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	pruned := 0
	for id, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, id)
			pruned++
		}
	}
	return pruned
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	if tokenID == "" {
		// Tokens without a jti were not issued by this service
		return true
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
