package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Session key under which the authenticated email is stored.
const userkey = "Email"

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken signs a bearer token carrying the user's email, for API
// clients that cannot hold a session cookie.
func GenerateToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"Email": email,
	})
	return token.SignedString(jwtSecret())
}

// JWT_decoder extracts the authenticated email from the request: the bearer
// token when present, the session cookie otherwise.
func JWT_decoder(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		raw := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			return "", errors.New("invalid token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return "", errors.New("invalid token claims")
		}
		email, ok := claims["Email"].(string)
		if !ok || email == "" {
			return "", errors.New("token missing email")
		}
		return email, nil
	}

	session := sessions.Default(c)
	email, ok := session.Get(userkey).(string)
	if !ok || email == "" {
		return "", errors.New("no session")
	}
	return email, nil
}

// SetSessionEmail records the authenticated email on the session.
func SetSessionEmail(c *gin.Context, email string) error {
	session := sessions.Default(c)
	session.Set(userkey, email)
	return session.Save()
}

// ClearSession removes the authenticated email from the session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(userkey)
	return session.Save()
}

// SessionID identifies the caller for session-scoped state such as dialogs.
// Authenticated callers are keyed by email so the single-active-dialog rule
// follows the account across tabs.
func SessionID(c *gin.Context) string {
	if email, err := JWT_decoder(c); err == nil {
		return email
	}
	return c.ClientIP()
}

// AuthRequired aborts the request unless it carries a valid session or
// bearer token.
func AuthRequired(c *gin.Context) {
	if _, err := JWT_decoder(c); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}
