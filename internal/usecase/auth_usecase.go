package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash string, plain string) bool
}

// アクセストークンを作る約束
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (string, time.Time, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptPasswordHasher) Verify(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UserOutput struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      UserOutput `json:"user"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if len(username) < 3 || len(username) > 50 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "username must be 3-50 characters")
	}
	if email == "" || len(email) > 100 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 6 || len(in.Password) > 100 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password must be 6-100 characters")
	}

	//重複チェック
	if _, err := u.userRepo.FindByUsername(ctx, username); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Username already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Email already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	now := u.clock.Now()
	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, &user); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issueFor(user)
}

func (u *AuthUsecase) Login(ctx context.Context, username string, password string) (AuthOutput, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid username or password")
	}

	user, err := u.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid username or password")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.hasher.Verify(user.PasswordHash, password) {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid username or password")
	}

	return u.issueFor(user)
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "ユーザーが見つかりません。")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(user), nil
}

func (u *AuthUsecase) issueFor(user model.User) (AuthOutput, error) {
	token, expiresAt, err := u.issuer.Issue(user, u.clock.Now())
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}
	return AuthOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserOutput(user),
	}, nil
}

func toUserOutput(user model.User) UserOutput {
	return UserOutput{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
