package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ecodispose_backend/internal/models"
	"ecodispose_backend/internal/repositories"
	"ecodispose_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"firstName": "Alice",
		"lastName":  "Miller",
		"email":     "alice@example.com",
		"password":  "super_password123",
	}

	regRes, regBodyStr := ts.SendRequest(t, http.MethodPost, "/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)
	assert.Contains(t, regBodyStr, "registered successfully")
	assert.Contains(t, regBodyStr, "alice@example.com")

	loginBody := map[string]interface{}{
		"email":    "alice@example.com",
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, http.MethodPost, "/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBodyStr)
	assert.Contains(t, logBodyStr, "logged in as Alice")

	var loginResponse struct {
		SessionToken string `json:"sessionToken"`
		User         struct {
			Email   string `json:"email"`
			IsAdmin bool   `json:"isAdmin"`
		} `json:"user"`
	}
	err := json.Unmarshal([]byte(logBodyStr), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.SessionToken)
	assert.Equal(t, "alice@example.com", loginResponse.User.Email)
	assert.False(t, loginResponse.User.IsAdmin)

	// The login must also arrive as an HttpOnly cookie.
	var sessionCookie *http.Cookie
	for _, cookie := range logRes.Cookies() {
		if cookie.Name == "session_token" {
			sessionCookie = cookie
		}
	}
	if assert.NotNil(t, sessionCookie, "login must set the session cookie") {
		assert.True(t, sessionCookie.HttpOnly)
		assert.Equal(t, loginResponse.SessionToken, sessionCookie.Value)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		FirstName:    "First",
		LastName:     "User",
		Email:        "duplicate@example.com",
		PasswordHash: "pass123",
	})
	assert.NoError(t, err)

	var addressesBefore int64
	tx.Model(&models.Address{}).Count(&addressesBefore)

	duplicateBody := map[string]interface{}{
		"firstName": "Second",
		"lastName":  "User",
		"email":     "duplicate@example.com",
		"password":  "another_password",
	}
	regRes, regBodyStr := ts.SendRequest(t, http.MethodPost, "/auth/register", "", duplicateBody)

	assert.Equal(t, http.StatusConflict, regRes.StatusCode, regBodyStr)

	// The failed registration leaves exactly one user row behind and no
	// orphan address from the rolled-back attempt.
	var userCount int64
	tx.Model(&models.User{}).Where("email = ?", "duplicate@example.com").Count(&userCount)
	assert.Equal(t, int64(1), userCount)

	var addressesAfter int64
	tx.Model(&models.Address{}).Count(&addressesAfter)
	assert.Equal(t, addressesBefore, addressesAfter)

	// A write that reaches the unique index itself rolls the paired
	// address insert back with it.
	dup := &models.User{
		FirstName:    "Third",
		LastName:     "User",
		Email:        "duplicate@example.com",
		PasswordHash: "hash",
	}
	err = repositories.NewUserRepository().CreateWithAddress(tx, dup, &models.Address{})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	tx.Model(&models.Address{}).Count(&addressesAfter)
	assert.Equal(t, addressesBefore, addressesAfter)
	tx.Model(&models.User{}).Where("email = ?", "duplicate@example.com").Count(&userCount)
	assert.Equal(t, int64(1), userCount)
}

func TestRegister_ReservedEmailDomain(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"firstName": "Eve",
		"lastName":  "Intruder",
		"email":     "eve@eco-dispose.com",
		"password":  "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/auth/register", "", body)

	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "cannot register with an eco-dispose email")
}

func TestRegister_MissingFields(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"firstName": "NoEmail",
		"password":  "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	loginBody := map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "whatever123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/auth/login", "", loginBody)

	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "user not found")
}

func TestLogin_BadPassword(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		FirstName:    "Bob",
		LastName:     "Walker",
		Email:        "bob@example.com",
		PasswordHash: "correct-password",
	})
	assert.NoError(t, err)

	loginBody := map[string]interface{}{
		"email":    "bob@example.com",
		"password": "WRONG-password",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "wrong credentials")
}

func TestLogout_InvalidatesSession(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("logout_%d@example.com", time.Now().UnixNano())
	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Carol", email, "password123", false)

	outRes, outBodyStr := ts.SendRequest(t, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, outRes.StatusCode, outBodyStr)
	assert.Contains(t, outBodyStr, "logged out successfully")

	// The token is dead afterwards.
	profRes, profBodyStr := ts.SendRequest(t, http.MethodGet, "/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, profRes.StatusCode, profBodyStr)
}

func TestProtectedRoute_NoSession(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/auth/profile", "made-up-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}
