package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Amudhavanm/arul-jayam-farm-mart/database"
	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
)

const authUserKey = "authUser"

// Auth guards routes with HS256 bearer tokens. Logged-out tokens sit in a
// blacklist collection until they expire.
type Auth struct {
	secret    []byte
	blacklist *mongo.Collection
}

func NewAuth(secret string, db *mongo.Database) *Auth {
	return &Auth{
		secret:    []byte(secret),
		blacklist: db.Collection(database.BlacklistCollection),
	}
}

// RequireUser validates the bearer token and stores the authenticated
// identity in the gin context.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err := a.blacklist.FindOne(ctx, bson.M{"token": tokenString}).Err()
		if err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		role, _ := claims["role"].(string)
		userID, _ := claims["userId"].(string)
		username, _ := claims["username"].(string)
		email, _ := claims["email"].(string)
		c.Set(authUserKey, models.AuthUser{
			ID:       userID,
			Username: username,
			Email:    email,
			IsAdmin:  role == "admin",
		})
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}

// Revoke blacklists the token until the given expiry.
func (a *Auth) Revoke(ctx context.Context, tokenString string, exp int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := a.blacklist.InsertOne(ctx, bson.M{"token": tokenString, "exp": exp})
	return err
}

// CurrentUser returns the identity set by RequireUser.
func CurrentUser(c *gin.Context) (models.AuthUser, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return models.AuthUser{}, false
	}
	user, ok := v.(models.AuthUser)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
