package utils

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// jwtSecret lấy JWT secret từ env, phải trùng với JWT_SECRET của server đang test.
func jwtSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "test-secret"
}

// tokenClaims phải khớp cấu trúc claims server dùng khi parse token.
type tokenClaims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// MintToken tạo JWT hợp lệ cho một userId, dùng thay cho flow đăng nhập trong test.
func MintToken(userID string) (string, error) {
	claims := tokenClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(1 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// NewObjectIDHex sinh một ObjectID hex 24 ký tự ngẫu nhiên cho test data.
func NewObjectIDHex() string {
	b := make([]byte, 12)
	rand.Read(b)
	return hex.EncodeToString(b)
}
