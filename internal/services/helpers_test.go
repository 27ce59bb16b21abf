package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tasklane/tasklane/internal/models"
	"github.com/tasklane/tasklane/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "digest", Name: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func memberCount(t *testing.T, db *gorm.DB, boardID uint) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.BoardMember{}).Where("board_id = ?", boardID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	return count
}

func assertAppError(t *testing.T, err error, wantStatus int) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != wantStatus {
		t.Errorf("expected HTTP status %d, got %d (%s)", wantStatus, appErr.HTTPStatus, appErr.Message)
	}
}
