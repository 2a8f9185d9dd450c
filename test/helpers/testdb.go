package helpers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"ecodispose_backend/internal/auth"
	"ecodispose_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly. PasswordHash may carry the raw
// password; it gets hashed here. The address row is created alongside.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" {
		hash, err := auth.HashPassword(user.PasswordHash)
		if err != nil {
			t.Fatalf("failed to hash test password: %v", err)
		}
		user.PasswordHash = hash
	}

	if user.AddressID == "" {
		address := &models.Address{}
		if err := db.Create(address).Error; err != nil {
			t.Logf("failed to create address for %s: %v", user.Email, err)
			return err
		}
		user.AddressID = address.ID
	}

	if err := db.Create(user).Error; err != nil {
		t.Logf("failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// CreateAndLoginUser inserts a user and logs in through the API,
// returning the session token from the login response.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, firstName, email, password string, isAdmin bool) (string, *models.User) {
	user := &models.User{
		FirstName:    firstName,
		LastName:     "Tester",
		Email:        email,
		PasswordHash: password,
		IsAdmin:      isAdmin,
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "creating a test user must not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+bodyStr)

	var loginResponse struct {
		SessionToken string `json:"sessionToken"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.SessionToken)

	return loginResponse.SessionToken, user
}

// CreateTestDevice inserts a device row directly, bypassing the API.
func CreateTestDevice(t *testing.T, tx *gorm.DB, userID, name string) models.Device {
	device := models.Device{
		Name:            name,
		Type:            "smartphone",
		Condition:       models.ConditionGood,
		Status:          models.StatusWaiting,
		Defects:         "scratched screen",
		UserDescription: "Used daily for two years.",
		ImageURL:        "/files/deadbeefdeadbeefdeadbeefdeadbeef.png",
		UploadDate:      time.Now(),
		UserID:          &userID,
	}
	if err := tx.Create(&device).Error; err != nil {
		t.Fatalf("failed to create test device: %v", err)
	}
	return device
}

// DeviceJSON marshals the "device" form field for multipart submissions.
func DeviceJSON(t *testing.T, name string) string {
	payload, err := json.Marshal(map[string]string{
		"name":            name,
		"type":            "smartphone",
		"defects":         "cracked back cover",
		"userDescription": "Works fine, battery holds a day.",
	})
	if err != nil {
		t.Fatalf("failed to marshal device payload: %v", err)
	}
	return string(payload)
}
