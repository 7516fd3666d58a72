package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/request-tracker/internal/auth"
	"github.com/spec-kit/request-tracker/internal/config"
	"github.com/spec-kit/request-tracker/internal/domain"
)

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	UpdateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func TestRegister(t *testing.T) {
	var stored *domain.User
	users := &mockUserRepository{
		CreateFunc: func(_ context.Context, user *domain.User) error {
			user.ID = 1
			stored = user
			return nil
		},
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	user, token, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, token)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "hunter22"))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
		code  string
	}{
		{
			name:  "username too short",
			input: RegisterInput{Username: "jd", Email: "jd@example.com", Password: "hunter22"},
			code:  "VALIDATION_FAILED",
		},
		{
			name:  "invalid email",
			input: RegisterInput{Username: "jdoe", Email: "not-an-email", Password: "hunter22"},
			code:  "VALIDATION_FAILED",
		},
		{
			name:  "password too short",
			input: RegisterInput{Username: "jdoe", Email: "jdoe@example.com", Password: "abc"},
			code:  "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: &mockUserRepository{}})
			_, _, _, err := svc.Register(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, domainCode(t, err))
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	users := &mockUserRepository{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

// Two registrations racing past the pre-insert lookup: the loser hits the
// unique constraint and still surfaces as a conflict, not an internal error.
func TestRegister_ConcurrentDuplicateInsert(t *testing.T) {
	users := &mockUserRepository{
		CreateFunc: func(context.Context, *domain.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		},
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "hunter22",
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestRegister_MultibyteUsernameLength(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: &mockUserRepository{}})
	ctx := context.Background()

	// three characters, six bytes
	_, _, _, err := svc.Register(ctx, RegisterInput{
		Username: strings.Repeat("é", 3),
		Email:    "e@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, RegisterInput{
		Username: strings.Repeat("é", 2),
		Email:    "e@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockUserRepository{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			if email == "jdoe@example.com" {
				return &domain.User{ID: 1, Username: "jdoe", Email: email, PasswordHash: hash}, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})
	ctx := context.Background()

	user, token, _, err := svc.Login(ctx, "jdoe@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEmpty(t, token)

	// unknown email and wrong password produce the same error
	_, _, _, errUnknown := svc.Login(ctx, "nobody@example.com", "hunter22")
	_, _, _, errWrongPw := svc.Login(ctx, "jdoe@example.com", "wrong")
	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, errUnknown))
}

func TestChangePassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{ID: 1, Username: "jdoe", Email: "jdoe@example.com", PasswordHash: hash}
	users := &mockUserRepository{
		GetByIDFunc: func(context.Context, int64) (*domain.User, error) {
			return stored, nil
		},
		UpdateFunc: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, 1, "hunter22", "betterpass"))
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "betterpass"))

	err = svc.ChangePassword(ctx, 1, "not-the-password", "anotherpass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}
