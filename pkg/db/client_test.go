package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	conn := dbtest.Open(t)
	client := Wrap(conn)

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.User{Email: "committed@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{Email: "rolled@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	conn := dbtest.Open(t)
	client := Wrap(conn)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			tx.Create(&models.User{Email: "panic@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"})
			panic("boom")
		})
	}()

	var count int64
	conn.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected rollback after panic, got %d rows", count)
	}
}

func TestUniqueEmailIsDetected(t *testing.T) {
	conn := dbtest.Open(t)
	user := models.User{Email: "dup@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := conn.Create(&models.User{Email: "dup@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}).Error
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if err := conn.Create(&models.User{Email: "Dup@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}).Error; err != nil {
		t.Fatalf("emails differing in case are distinct: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"pgx", &pgconn.PgError{Code: "23505"}, true},
		{"pgx other", &pgconn.PgError{Code: "23503"}, false},
		{"message", errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key"`), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestModelsGenerateIDs(t *testing.T) {
	conn := dbtest.Open(t)
	user := models.User{Email: "id@shop.com", PasswordHash: "h", FirstName: "a", LastName: "b"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{DSN: "x", Driver: "mysql"}, nil); err == nil {
		t.Fatal("expected unsupported driver error")
	}
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected missing dsn error")
	}
}

func TestNewOpensSQLiteAndPings(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := New(context.Background(), config.DBConfig{DSN: dsn, Driver: config.DriverSQLite}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}
