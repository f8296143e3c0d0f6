package service

import (
	"context"
	"errors"
	"testing"

	"SkiBuddy/config"
	"SkiBuddy/internal/model"
	"SkiBuddy/internal/model/dto"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/token"
)

func newAuth(t *testing.T) (*AuthService, *fakeUsers, *fakeProfiles, *fakeTokens) {
	t.Helper()
	config.Cfg.JWTSecret = "test-secret"
	config.Cfg.JWTExpireMinutes = 30
	config.Cfg.JWTRefreshDays = 7
	if err := token.Init(); err != nil {
		t.Fatal(err)
	}

	users := newFakeUsers()
	profiles := &fakeProfiles{existing: map[string]*model.Profile{}}
	tokens := &fakeTokens{saved: map[string]string{}}
	next := int64(100)
	svc := NewAuthService(users, profiles, tokens, func() (int64, error) {
		next++
		return next, nil
	})
	return svc, users, profiles, tokens
}

func TestSignUpValidation(t *testing.T) {
	svc, _, _, _ := newAuth(t)

	tests := []struct {
		name string
		req  dto.SignUpRequest
		want error
	}{
		{"bad email", dto.SignUpRequest{Email: "nope", Password: "secret1"}, pkgerrors.InvalidEmail},
		{"short password", dto.SignUpRequest{Email: "a@b.co", Password: "12345"}, pkgerrors.PasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SignUp(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, users, profiles, tokens := newAuth(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, dto.SignUpRequest{Email: " Alex@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if res.NextStep != dto.NextStepOnboarding || !res.User.IsNewUser || res.User.Email != "alex@example.com" {
		t.Fatalf("sign up response %+v", res)
	}
	if res.User.Status != string(model.UserStatusOnboarding) {
		t.Fatalf("status %q", res.User.Status)
	}
	if tokens.saved[res.User.ID] != res.RefreshToken {
		t.Fatal("refresh token not stored")
	}
	if users.byEmail["alex@example.com"].PasswordHash == "secret1" {
		t.Fatal("password stored in plain text")
	}

	if _, err := svc.SignUp(ctx, dto.SignUpRequest{Email: "alex@example.com", Password: "secret1"}); !errors.Is(err, pkgerrors.EmailAlreadyRegistered) {
		t.Fatalf("duplicate sign up: %v", err)
	}

	if _, err := svc.SignIn(ctx, dto.SignInRequest{Email: "alex@example.com", Password: "wrong!"}); !errors.Is(err, pkgerrors.InvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.SignIn(ctx, dto.SignInRequest{Email: "ghost@example.com", Password: "secret1"}); !errors.Is(err, pkgerrors.InvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}

	in, err := svc.SignIn(ctx, dto.SignInRequest{Email: "ALEX@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if in.NextStep != dto.NextStepOnboarding || in.User.IsNewUser {
		t.Fatalf("sign in response %+v", in)
	}

	profiles.existing[in.User.ID] = &model.Profile{ID: in.User.ID}
	in, err = svc.SignIn(ctx, dto.SignInRequest{Email: "alex@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if in.NextStep != dto.NextStepHome {
		t.Fatalf("user with profile should go home, got %q", in.NextStep)
	}
}

func TestRefreshToken(t *testing.T) {
	svc, _, _, tokens := newAuth(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, dto.SignUpRequest{Email: "alex@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.RefreshToken(ctx, res.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.AccessToken == "" || tokens.saved[res.User.ID] != refreshed.RefreshToken {
		t.Fatalf("refresh response %+v", refreshed)
	}

	if _, err := svc.RefreshToken(ctx, res.AccessToken); !errors.Is(err, pkgerrors.ErrInvalidToken) {
		t.Fatalf("access token used as refresh: %v", err)
	}

	tokens.saved[res.User.ID] = "rotated"
	if _, err := svc.RefreshToken(ctx, refreshed.RefreshToken); !errors.Is(err, pkgerrors.ErrInvalidToken) {
		t.Fatalf("revoked refresh token: %v", err)
	}
}

func TestGetUserStatus(t *testing.T) {
	users := newFakeUsers(&model.User{PublicID: 7, Email: "a@b.co", Status: model.UserStatusOnboarding})
	profiles := &fakeProfiles{existing: map[string]*model.Profile{}}
	svc := NewUserService(users, profiles)
	ctx := context.Background()

	st, err := svc.GetUserStatus(ctx, "7")
	if err != nil {
		t.Fatal(err)
	}
	if st.NextStep != dto.NextStepOnboarding || st.HasProfile {
		t.Fatalf("status %+v", st)
	}

	profiles.existing["7"] = &model.Profile{ID: "7"}
	st, err = svc.GetUserStatus(ctx, "7")
	if err != nil {
		t.Fatal(err)
	}
	if st.NextStep != dto.NextStepHome || !st.HasProfile {
		t.Fatalf("status %+v", st)
	}

	if _, err := svc.GetUserStatus(ctx, "8"); !errors.Is(err, pkgerrors.ErrUserNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}
