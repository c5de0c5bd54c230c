package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"project/backend/config"
	"project/backend/models"
	"project/backend/routes"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := utils.MigrateDB(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{JWTSecret: "testsecret"}
	app := fiber.New()
	routes.SetupRoutes(app, db, nil, zap.NewNop().Sugar(), cfg)

	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) createUser(t *testing.T, username, role string) (models.User, string) {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, e.cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func decodeInto(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
