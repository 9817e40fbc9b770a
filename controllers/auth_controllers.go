package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"vrent/config"
	"vrent/models"
	"vrent/services"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     int    `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleAuthInput struct {
	Credential string `json:"credential" binding:"required"`
}

type UserResponse struct {
	UserID    uint      `json:"id"`
	UserName  string    `json:"name"`
	UserEmail string    `json:"email"`
	UserRole  int       `json:"role"`
	Status    int       `json:"status"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func convertToUserResponse(user models.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		Status:    user.Status,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetUserIDFromToken resolves the user id and role carried by a bearer token.
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	return services.ParseToken(tokenString)
}

// RegisterUser godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	// Self-registration covers renters and vehicle owners only.
	if input.Role != 0 && input.Role != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid role"})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Email is already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create user", "error": err.Error()})
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 60*24*3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Registration successful", "data": gin.H{
		"user_info":   convertToUserResponse(user),
		"accessToken": accessToken,
	}})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid email or password"})
		return
	}

	if user.Status == 1 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "Account is banned"})
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 60*24*3)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Login successful", "data": gin.H{
		"user_info":   convertToUserResponse(user),
		"accessToken": accessToken,
	}})
}

func Logout(c *gin.Context) {
	for _, cookie := range c.Request.Cookies() {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}
	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Logout successful"})
}

// AuthGoogle signs a user in with a Google ID token, creating the account on
// first sight.
func AuthGoogle(c *gin.Context) {
	var input GoogleAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), input.Credential, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid Google credential"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Google credential has no email"})
		return
	}

	var user models.User
	err = config.DB.Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{Name: name, Email: email, Avatar: picture}
		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create user", "error": err.Error()})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 60*24*3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Login successful", "data": gin.H{
		"user_info":   convertToUserResponse(user),
		"accessToken": accessToken,
	}})
}
