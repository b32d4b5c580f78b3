package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"elec-payroll/internal/shared/apperror"
	"elec-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New(apperror.CodeInvalidToken, "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New(apperror.CodeTokenExpired, "Token has expired", http.StatusUnauthorized)
)

// Claims carried by access tokens. employee_id is the RBAC subject.
type Claims struct {
	UserID     string `json:"user_id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware validates an HS256 bearer token (or access_token cookie)
// signed with secret and copies its claims into the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenNotFound)
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrInvalidToken)
			return
		}

		switch {
		case claims.UserID == "":
			response.Error(c, http.StatusUnauthorized, apperror.CodeInvalidToken, "User ID not found in token", nil)
			c.Abort()
			return
		case claims.CompanyID == "":
			response.Error(c, http.StatusUnauthorized, apperror.CodeInvalidToken, "Company ID not found in token", nil)
			c.Abort()
			return
		case claims.EmployeeID == "":
			response.Error(c, http.StatusUnauthorized, apperror.CodeInvalidToken, "Employee ID not found in token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("employee_id", claims.EmployeeID)
		c.Set("company_id", claims.CompanyID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
