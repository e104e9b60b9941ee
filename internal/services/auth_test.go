package services

import (
	"net/http"
	"testing"

	"github.com/prismhq/prism/internal/config"
	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(db, &config.JWTConfig{ExpireHour: 1, RefreshExpireHour: 2})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Username:  "jane",
		Password:  "a-strong-password",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Password == "a-strong-password" {
		t.Fatal("stored password must be hashed")
	}
	if !user.IsActive {
		t.Error("new account should be active")
	}

	pair, logged, err := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "a-strong-password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %d, expected %d", logged.ID, user.ID)
	}

	claims, err := utils.ParseToken(pair.Access)
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.TokenType != utils.TokenTypeAccess {
		t.Errorf("access TokenType = %q", claims.TokenType)
	}

	claims, err = utils.ParseToken(pair.Refresh)
	if err != nil {
		t.Fatalf("refresh token does not parse: %v", err)
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		t.Errorf("refresh TokenType = %q", claims.TokenType)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Username:  "jane",
		Password:  "a-strong-password",
		FirstName: "Jane",
		LastName:  "Doe",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "wrong"})
	if appErrorStatus(err) != http.StatusUnauthorized {
		t.Errorf("wrong password: expected unauthorized, got %v", err)
	}

	_, _, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if appErrorStatus(err) != http.StatusUnauthorized {
		t.Errorf("unknown email: expected unauthorized, got %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{ExpireHour: 1, RefreshExpireHour: 2})

	user, err := svc.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Username:  "jane",
		Password:  "a-strong-password",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)

	_, _, err = svc.Login(&LoginRequest{Email: "jane@example.com", Password: "a-strong-password"})
	if appErrorStatus(err) != http.StatusUnauthorized {
		t.Errorf("disabled account: expected unauthorized, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newAuthService(t)

	req := &RegisterRequest{
		Email:     "jane@example.com",
		Username:  "jane",
		Password:  "a-strong-password",
		FirstName: "Jane",
		LastName:  "Doe",
	}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	if _, err := svc.Register(req); appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("duplicate registration: expected validation failure, got %v", err)
	}
}

func TestRegister_NoWorkspaceSideEffects(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{ExpireHour: 1, RefreshExpireHour: 2})

	if _, err := svc.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Username:  "jane",
		Password:  "a-strong-password",
		FirstName: "Jane",
		LastName:  "Doe",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var workspaces, memberships int64
	db.Model(&models.Workspace{}).Count(&workspaces)
	db.Model(&models.TeamMember{}).Count(&memberships)
	if workspaces != 0 || memberships != 0 {
		t.Errorf("registration created (%d workspaces, %d memberships), expected none", workspaces, memberships)
	}
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Username:  "jane",
		Password:  "a-strong-password",
		FirstName: "Jane",
		LastName:  "Doe",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	pair, _, err := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "a-strong-password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	fresh, err := svc.Refresh(&RefreshRequest{Refresh: pair.Refresh})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if fresh.Access == "" || fresh.Refresh == "" {
		t.Error("expected a full token pair from refresh")
	}

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(&RefreshRequest{Refresh: pair.Access})
	if appErrorStatus(err) != http.StatusUnauthorized {
		t.Errorf("access token as refresh: expected unauthorized, got %v", err)
	}

	_, err = svc.Refresh(&RefreshRequest{Refresh: "garbage"})
	if appErrorStatus(err) != http.StatusUnauthorized {
		t.Errorf("garbage token: expected unauthorized, got %v", err)
	}
}
