package helper

import (
	"campus_queue/constants"
	"campus_queue/database"
	"campus_queue/model"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

// Giờ địa phương Manila (UTC+8) — mọi mốc "trong ngày" đều tính theo múi giờ này
var ManilaTZ = time.FixedZone("PST", 8*3600)

// NormalizeCampus đưa tên campus về dạng slug để so khớp nhất quán
// ("Main Campus" -> "main-campus"). Chuỗi rỗng giữ nguyên (= toàn bộ campus).
func NormalizeCampus(campus string) string {
	if campus == "" {
		return ""
	}
	return slug.Make(campus)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByUsername(u string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Username: u}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

// GetInfoUserFromToken đọc claim từ JWT đã được middleware parse sẵn
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, bool, bool) {
	var tokenClaim model.TokenClaim

	userToken, ok := c.Locals("user").(*jwt.Token)
	if !ok || userToken == nil {
		return tokenClaim, false, false
	}
	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaim, false, false
	}

	if username, ok := claims["username"].(string); ok {
		tokenClaim.Username = username
	}
	if userId, ok := claims["userId"].(float64); ok {
		tokenClaim.UserId = uint(userId)
	}

	var user model.User
	if err := database.DB.First(&user, tokenClaim.UserId).Error; err != nil {
		return tokenClaim, false, false
	}
	tokenClaim.WindowNum = user.WindowNum

	isAdmin := user.Role == constants.ROLE_ADMIN
	isCashier := user.Role == constants.ROLE_CASHIER
	return tokenClaim, isAdmin, isCashier
}
