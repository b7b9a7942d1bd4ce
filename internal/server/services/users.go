// Package services contains server-side business logic. UserService handles
// registration, login, preferences and account management; GenerationService
// handles text generation and the per-user generation ledger.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/cryptox"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cocreate/internal/server/validate"
)

// TokenIssuer mints bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// Session is an authenticated user together with a fresh bearer token.
type Session struct {
	User  *models.User
	Token string
}

// RegisterInput carries the registration form. Preferences are optional.
type RegisterInput struct {
	Username          string
	Password          string
	ContentType       string
	TargetAudience    string
	AdditionalContext string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

// Register validates credentials, stores the user with a lower-cased username
// and returns it with a token. Nothing is stored when validation fails.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := validate.Username(in.Username); err != nil {
		return nil, err
	}
	if err := validate.Password(in.Password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:          strings.ToLower(in.Username),
		PasswordHash:      hash,
		ContentType:       in.ContentType,
		TargetAudience:    in.TargetAudience,
		AdditionalContext: in.AdditionalContext,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

// Login checks the password and returns the user with a token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.repomanager.Users(s.db).FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			cryptox.VerifyPassword(password, decoyHash())
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !cryptox.VerifyPassword(password, u.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *UserService) UpdateContentType(ctx context.Context, userID int64, value string) error {
	if strings.TrimSpace(value) == "" {
		return common.ErrEmptyContentType
	}
	return s.repomanager.Users(s.db).UpdateContentType(ctx, userID, value)
}

func (s *UserService) UpdateTargetAudience(ctx context.Context, userID int64, value string) error {
	if strings.TrimSpace(value) == "" {
		return common.ErrEmptyTargetAudience
	}
	return s.repomanager.Users(s.db).UpdateTargetAudience(ctx, userID, value)
}

// UpdateAdditionalContext overwrites the context; an empty value clears it.
func (s *UserService) UpdateAdditionalContext(ctx context.Context, userID int64, value string) error {
	return s.repomanager.Users(s.db).UpdateAdditionalContext(ctx, userID, value)
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if err := s.checkPassword(ctx, userID, current); err != nil {
		return err
	}
	if err := validate.Password(next); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return common.ErrorInternal
	}
	return s.repomanager.Users(s.db).UpdatePassword(ctx, userID, hash)
}

// DeleteAccount removes the user after checking the password. The user's
// generations stay in storage.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	if err := s.checkPassword(ctx, userID, password); err != nil {
		return err
	}
	return s.repomanager.Users(s.db).Delete(ctx, userID)
}

func (s *UserService) checkPassword(ctx context.Context, userID int64, password string) error {
	hash, err := s.repomanager.Users(s.db).GetPasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if !cryptox.VerifyPassword(password, hash) {
		return common.ErrInvalidCredentials
	}
	return nil
}

func (s *UserService) session(u *models.User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: u, Token: token}, nil
}

var (
	decoyOnce sync.Once
	decoy     []byte
)

// decoyHash is compared against when the username does not exist, so that
// login takes about as long either way.
func decoyHash() []byte {
	decoyOnce.Do(func() {
		decoy, _ = cryptox.HashPassword("decoy-password-0")
	})
	return decoy
}
