package handlers

import (
	"net/http"
	"testing"

	"phc-ops-api-server/config"
	"phc-ops-api-server/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) *gin.Engine {
	h := &PHCAuthHandler{DB: db, Cfg: config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: "12h"},
	}}
	r := gin.New()
	r.POST("/phc/sign-up", h.SignUp)
	r.POST("/phc/sign-in", h.SignIn)
	return r
}

func signUpPayload() gin.H {
	return gin.H{
		"phc_name":  "Ikeja PHC",
		"password":  "s3cret",
		"capacity":  40,
		"latitude":  6.6018,
		"longitude": 3.3515,
	}
}

func TestSignUp(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := performRequest(t, router, http.MethodPost, "/phc/sign-up", signUpPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "Ikeja PHC", body["phc_name"])
	assert.NotZero(t, body["id"])

	// Same name again is rejected.
	w = performRequest(t, router, http.MethodPost, "/phc/sign-up", signUpPayload())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestSignUpValidation(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	payload := signUpPayload()
	payload["capacity"] = 0
	w := performRequest(t, router, http.MethodPost, "/phc/sign-up", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = signUpPayload()
	payload["latitude"] = 123.0
	w = performRequest(t, router, http.MethodPost, "/phc/sign-up", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignIn(t *testing.T) {
	auth.SetSecret("test-secret")
	db := setupTestDB(t)
	router := authRouter(db)

	w := performRequest(t, router, http.MethodPost, "/phc/sign-up", signUpPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/phc/sign-in",
		gin.H{"phc_name": "Ikeja PHC", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, "phc", body["role"])

	tokenString, ok := body["access_token"].(string)
	require.True(t, ok)

	claims := &auth.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return auth.JwtSecret, nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "Ikeja PHC", claims.PHCName)
	assert.Equal(t, "phc", claims.Role)
}

func TestSignInWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := performRequest(t, router, http.MethodPost, "/phc/sign-up", signUpPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/phc/sign-in",
		gin.H{"phc_name": "Ikeja PHC", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password")
}

func TestSignInUnknownPHC(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := performRequest(t, router, http.MethodPost, "/phc/sign-in",
		gin.H{"phc_name": "Ghost PHC", "password": "whatever"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
