package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "HostelCare"

var ErrInvalidToken = errors.New("invalid or expired token")

type CustomClaims struct {
	UserID uint `json:"_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the access/refresh token pair. The two
// token kinds use different secrets so one can never stand in for the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (tm *TokenManager) SignAccess(userID uint) (string, error) {
	return tm.sign(userID, tm.accessSecret, tm.accessTTL)
}

func (tm *TokenManager) SignRefresh(userID uint) (string, error) {
	return tm.sign(userID, tm.refreshSecret, tm.refreshTTL)
}

func (tm *TokenManager) ParseAccess(tokenString string) (*CustomClaims, error) {
	return tm.parse(tokenString, tm.accessSecret)
}

func (tm *TokenManager) ParseRefresh(tokenString string) (*CustomClaims, error) {
	return tm.parse(tokenString, tm.refreshSecret)
}

func (tm *TokenManager) sign(userID uint, secret []byte, ttl time.Duration) (string, error) {
	now := tm.now()
	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			// ID unik supaya dua token yang dibuat di detik yang sama tetap berbeda
			ID:     uuid.NewString(),
			Issuer: tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (tm *TokenManager) parse(tokenString string, secret []byte) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword returns the bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the bcrypt digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
