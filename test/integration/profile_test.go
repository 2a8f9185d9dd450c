package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ecodispose_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func TestProfile_IncludesAddressAndDevices(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginUser(t, ts, tx, "Dana", uniqueEmail("dana"), "password123", false)
	device := helpers.CreateTestDevice(t, tx, user.ID, "Old Laptop")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var response struct {
		User struct {
			Email   string `json:"email"`
			Address struct {
				ID string `json:"id"`
			} `json:"address"`
			Devices []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"devices"`
		} `json:"user"`
	}
	err := json.Unmarshal([]byte(bodyStr), &response)
	assert.NoError(t, err)
	assert.Equal(t, user.Email, response.User.Email)
	assert.NotEmpty(t, response.User.Address.ID)
	if assert.Len(t, response.User.Devices, 1) {
		assert.Equal(t, device.ID, response.User.Devices[0].ID)
		assert.Equal(t, "Old Laptop", response.User.Devices[0].Name)
	}

	// The password hash never leaves the server.
	assert.NotContains(t, bodyStr, "password")
}

func TestEditProfile_PartialUpdate(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Erik", uniqueEmail("erik"), "password123", false)

	editBody := map[string]interface{}{
		"firstName":   "Erik-Updated",
		"phoneNumber": "+4915112345678",
		"address": map[string]interface{}{
			"city":    "Berlin",
			"zipCode": "10115",
		},
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/auth/edit", token, editBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "user details updated successfully")

	var response struct {
		User struct {
			FirstName   string `json:"firstName"`
			LastName    string `json:"lastName"`
			PhoneNumber string `json:"phoneNumber"`
			Address     struct {
				City    string `json:"city"`
				ZipCode string `json:"zipCode"`
				Street  string `json:"street"`
			} `json:"address"`
		} `json:"user"`
	}
	err := json.Unmarshal([]byte(bodyStr), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Erik-Updated", response.User.FirstName)
	// Untouched fields keep their values.
	assert.Equal(t, "Tester", response.User.LastName)
	assert.Equal(t, "+4915112345678", response.User.PhoneNumber)
	assert.Equal(t, "Berlin", response.User.Address.City)
	assert.Equal(t, "10115", response.User.Address.ZipCode)
	assert.Equal(t, "", response.User.Address.Street)
}

func TestEditProfile_WithImage(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Frida", uniqueEmail("frida"), "password123", false)

	fields := map[string]string{
		"user": `{"firstName":"Frida-Edited"}`,
	}
	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/auth/edit", token,
		fields, "profileImage", "portrait.png", []byte("fake png bytes"))
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var response struct {
		User struct {
			FirstName       string `json:"firstName"`
			ProfileImageURL string `json:"profileImageUrl"`
		} `json:"user"`
	}
	err := json.Unmarshal([]byte(bodyStr), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Frida-Edited", response.User.FirstName)
	assert.Contains(t, response.User.ProfileImageURL, "/files/")
	assert.Contains(t, response.User.ProfileImageURL, ".png")

	// The stored image is served back.
	fileRes, _ := ts.SendRequest(t, http.MethodGet, response.User.ProfileImageURL, "", nil)
	assert.Equal(t, http.StatusOK, fileRes.StatusCode)
}

func TestEditProfile_RejectsBadImageExtension(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Gina", uniqueEmail("gina"), "password123", false)

	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/auth/edit", token,
		nil, "profileImage", "payload.exe", []byte("not an image"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestEditProfile_EmptyMultipart(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Hans", uniqueEmail("hans"), "password123", false)

	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/auth/edit", token,
		map[string]string{"unrelated": "x"}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "no data provided")
}
