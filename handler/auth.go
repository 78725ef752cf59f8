package handler

import (
	"errors"
	"time"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setAuthCookies(c *fiber.Ctx, tokens model.TokenData) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		Expires:  time.Now().Add(time.Minute * 60),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    tokens.RefreshToken,
		Expires:  time.Now().Add(time.Hour * 24 * 7),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func Register(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.RegisterInput)

	existing, err := helper.GetUserByEmail(db, input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_ALREADY_EXISTS,
			errors.New("duplicate email"), "email")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	user := model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Phone:    input.Phone,
		Role:     "customer",
	}
	if err := db.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Đăng ký thành công", fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func Login(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.LoginInput)

	user, err := helper.GetUserByEmail(db, input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil || !helper.CheckPasswordHash(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("invalid credentials"))
	}

	claim := model.TokenClaim{
		UserId:  user.ID,
		Email:   user.Email,
		IsAdmin: user.Role == "admin",
	}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tokens := model.TokenData{AccessToken: accessToken, RefreshToken: refreshToken}
	setAuthCookies(c, tokens)

	return utils.SuccessResponse(c, fiber.StatusOK, "Đăng nhập thành công", fiber.Map{
		"tokens": tokens,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: time.Now().Add(-time.Hour), HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: time.Now().Add(-time.Hour), HTTPOnly: true})
	return utils.SuccessResponse(c, fiber.StatusOK, "Đã đăng xuất", nil)
}

// Me trả thông tin user hiện tại từ token
func Me(c *fiber.Ctx) error {
	db := database.DB

	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("no token"))
	}

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Thông tin tài khoản", user)
}
