package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/model"
)

func newAuthFixture() (*AuthService, *fakeTeacherStore) {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	store := newFakeTeacherStore()
	return NewAuthService(cfg, store), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	teacher, err := svc.Register(ctx, &model.RegisterTeacherRequest{
		Email:    "Grace@Example.com",
		FullName: "Grace Hopper",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if teacher.Email != "grace@example.com" {
		t.Errorf("email = %q, want lower-cased", teacher.Email)
	}
	if teacher.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}

	resp, err := svc.Login(ctx, "grace@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("login returned empty token")
	}
	if resp.Teacher.ID != teacher.ID {
		t.Errorf("login teacher id = %d, want %d", resp.Teacher.ID, teacher.ID)
	}

	if _, err := svc.Login(ctx, "grace@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	req := &model.RegisterTeacherRequest{
		Email:    "grace@example.com",
		FullName: "Grace Hopper",
		Password: "secret123",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register: err = %v, want ErrEmailTaken", err)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc, _ := newAuthFixture()

	token, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TeacherID != 42 {
		t.Errorf("teacher id = %d, want 42", claims.TeacherID)
	}

	if _, err := svc.ValidateToken(token + "tampered"); err == nil {
		t.Error("tampered token validated")
	}
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}
}
