package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ecodispose_backend/database"
	"ecodispose_backend/internal/app"
	"ecodispose_backend/internal/config"
	"ecodispose_backend/internal/logger"
	"ecodispose_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer wraps the real router behind an httptest server plus a DB
// handle for direct fixture inserts.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB

	mu sync.Mutex
	tx *gorm.DB
}

// NewTestServer connects to the test database (DATABASE_URL), migrates
// it, and serves the fully wired router. While a test transaction is
// active, every incoming request runs against it instead of the pool,
// so each test rolls back to a clean database. Tests therefore must not
// run in parallel against the same server.
func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)

	ts := &TestServer{DB: db}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		tx := ts.tx
		ts.mu.Unlock()
		if tx != nil {
			r = r.WithContext(context.WithValue(r.Context(), contextkeys.DBContextKey, tx))
		}
		router.ServeHTTP(w, r)
	}))

	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// BeginTransaction starts a transaction and routes all subsequent HTTP
// requests through it until RollbackTransaction.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin test transaction: %v", tx.Error)
	}

	ts.mu.Lock()
	ts.tx = tx
	ts.mu.Unlock()

	return tx
}

// RollbackTransaction discards everything the test wrote.
func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	ts.mu.Lock()
	ts.tx = nil
	ts.mu.Unlock()

	if err := tx.Rollback().Error; err != nil {
		t.Logf("rollback failed: %v", err)
	}
}

// SendRequest performs a JSON request. A non-empty token is sent as a
// Bearer header.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return res, string(resBody)
}

// SendMultipart performs a multipart/form-data request with string
// fields plus an optional file part.
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField, fileName string, fileContent []byte) (*http.Response, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to finalize multipart body: %v", err)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return res, string(resBody)
}
