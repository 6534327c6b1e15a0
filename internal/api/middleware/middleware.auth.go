package middleware

import (
	"fmt"
	"strings"
	"time"

	"creator_studio/internal/common"
	"creator_studio/internal/global"
	"creator_studio/internal/logger"
	"creator_studio/internal/utility"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenClaims chứa data được mã hóa trong JWT token.
type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// GenerateToken tạo JWT token cho một user, dùng khi cấp token và trong các kịch bản seed dữ liệu.
func GenerateToken(userID string, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.MongoDB_ServerConfig.JwtSecret))
}

// ActorFromContext lấy ID của user đã xác thực từ context (do AuthMiddleware set).
func ActorFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" || !primitive.IsValidObjectID(userID) {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return utility.String2ObjectID(userID), nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// Parse Bearer token, validate chữ ký và hạn token, lưu user_id vào context
// để các workflow handler xác định actor. Phân quyền nghiệp vụ (owner, approver, admin)
// nằm trong service layer theo team membership, không nằm ở middleware.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims := &TokenClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("phương thức ký không được hỗ trợ: %v", t.Header["alg"])
			}
			return []byte(global.MongoDB_ServerConfig.JwtSecret), nil
		})
		if err != nil {
			ve, ok := err.(*jwt.ValidationError)
			if ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
				HandleErrorResponse(c, common.ErrTokenExpired)
				return nil
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token parse failed")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if !token.Valid || claims.UserID == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}
