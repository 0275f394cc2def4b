package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anya/internal/access"
	"anya/internal/auth"
	apperrors "anya/internal/errors"
	"anya/internal/mail"
	"anya/internal/model"
	"anya/internal/repository"
)

const (
	bcryptCost = 10

	sessionDuration    = 7 * 24 * time.Hour
	sessionCacheTTL    = 5 * time.Minute
	verificationExpiry = 24 * time.Hour

	// oauthExchangeTimeout bounds the code-for-token exchange so an
	// unresponsive provider cannot hang the callback.
	oauthExchangeTimeout = 10 * time.Second
)

// AuthService handles signup, login, session resolution and the Discord
// OAuth flow. All failures are sentinel errors from the errors package;
// callers branch on the error value, never on panics.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, ip, userAgent string) (*model.User, *model.Session, error)
	Login(ctx context.Context, email, password, ip, userAgent string) (*model.User, *model.Session, error)
	GetSession(ctx context.Context, token string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) (*model.User, error)
	AuthenticateAPIKey(ctx context.Context, key string) (*model.User, error)
	OAuthBeginURL(linkUserID, redirect string) (string, error)
	OAuthCallback(ctx context.Context, code, state, ip, userAgent string) (*model.User, *model.Session, string, error)
}

type authService struct {
	userRepo         repository.UserRepository
	accountRepo      repository.AccountRepository
	sessionRepo      repository.SessionRepository
	verificationRepo repository.VerificationRepository
	apiKeyRepo       repository.APIKeyRepository
	sessions         auth.SessionStoreInterface
	state            *auth.StateSigner
	provider         auth.OAuthProvider
	mailer           mail.Sender
	apiBaseURL       string
}

// NewAuthService creates the auth service. apiBaseURL is the public origin of
// this API, used to build verification links.
func NewAuthService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	verificationRepo repository.VerificationRepository,
	apiKeyRepo repository.APIKeyRepository,
	sessions auth.SessionStoreInterface,
	state *auth.StateSigner,
	provider auth.OAuthProvider,
	mailer mail.Sender,
	apiBaseURL string,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		sessionRepo:      sessionRepo,
		verificationRepo: verificationRepo,
		apiKeyRepo:       apiKeyRepo,
		sessions:         sessions,
		state:            state,
		provider:         provider,
		mailer:           mailer,
		apiBaseURL:       strings.TrimRight(apiBaseURL, "/"),
	}
}

// Signup creates exactly one user and one credential account in a single
// transaction, then opens a session. The verification email is best effort.
func (s *authService) Signup(ctx context.Context, name, email, password, ip, userAgent string) (*model.User, *model.Session, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	user := &model.User{
		Name:  name,
		Email: email,
		Role:  access.RoleUser,
	}
	account := &model.Account{
		ProviderID: model.ProviderCredential,
		Password:   &hash,
	}
	if err := s.userRepo.CreateWithAccount(ctx, user, account); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	s.sendVerificationEmail(ctx, user.Email)

	session, err := s.createSession(ctx, user, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates against the user's credential account.
func (s *authService) Login(ctx context.Context, email, password, ip, userAgent string) (*model.User, *model.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	account, err := s.accountRepo.FindCredential(ctx, user.ID)
	if err != nil || account.Password == nil {
		// social-only users have no password identity
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if isBanned(user, time.Now()) {
		return nil, nil, apperrors.ErrUserBanned
	}

	session, err := s.createSession(ctx, user, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// GetSession resolves a session token to its user, cache first.
func (s *authService) GetSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	if token == "" {
		return nil, nil, apperrors.ErrSessionNotFound
	}

	now := time.Now()
	if user, session, _ := s.sessions.Get(ctx, token); session != nil && !session.Expired(now) && !isBanned(user, now) {
		return user, session, nil
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, nil, apperrors.ErrSessionNotFound
	}
	if session.Expired(now) {
		_ = s.sessionRepo.DeleteByToken(ctx, token)
		_ = s.sessions.Delete(ctx, token)
		return nil, nil, apperrors.ErrSessionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, apperrors.ErrSessionNotFound
	}
	if isBanned(user, now) {
		return nil, nil, apperrors.ErrUserBanned
	}

	_ = s.sessions.Put(ctx, token, user, session, sessionCacheTTL)
	return user, session, nil
}

// Logout invalidates a session token in both stores.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrSessionNotFound
	}
	if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return s.sessions.Delete(ctx, token)
}

// VerifyEmail consumes a verification token and marks the user verified.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	verification, err := s.verificationRepo.FindByValue(ctx, token)
	if err != nil {
		return nil, apperrors.ErrVerificationNotFound
	}
	if !verification.ExpiresAt.After(time.Now()) {
		_ = s.verificationRepo.Delete(ctx, verification.ID)
		return nil, apperrors.ErrVerificationNotFound
	}

	user, err := s.userRepo.FindByEmail(ctx, verification.Identifier)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	user.EmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.verificationRepo.Delete(ctx, verification.ID)
	return user, nil
}

// AuthenticateAPIKey resolves a service credential to its user.
func (s *authService) AuthenticateAPIKey(ctx context.Context, key string) (*model.User, error) {
	apiKey, err := s.apiKeyRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, apperrors.ErrAPIKeyInvalid
	}
	now := time.Now()
	if !apiKey.Enabled || (apiKey.ExpiresAt != nil && !apiKey.ExpiresAt.After(now)) {
		return nil, apperrors.ErrAPIKeyInvalid
	}

	user, err := s.userRepo.FindByID(ctx, apiKey.UserID)
	if err != nil {
		return nil, apperrors.ErrAPIKeyInvalid
	}
	if isBanned(user, now) {
		return nil, apperrors.ErrUserBanned
	}

	_ = s.apiKeyRepo.TouchLastUsed(ctx, apiKey.ID, now)
	return user, nil
}

// OAuthBeginURL returns the provider authorization URL. A non-empty
// linkUserID marks the flow as explicit account linking for that user.
func (s *authService) OAuthBeginURL(linkUserID, redirect string) (string, error) {
	state, err := s.state.Sign(linkUserID, redirect)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

// OAuthCallback completes the OAuth flow: verifies state, exchanges the code,
// matches or creates the user, links the account and opens a session. The
// returned string is the post-login redirect target from the state, if any.
func (s *authService) OAuthCallback(ctx context.Context, code, state, ip, userAgent string) (*model.User, *model.Session, string, error) {
	claims, err := s.state.Verify(state)
	if err != nil {
		return nil, nil, "", apperrors.ErrUnauthenticated
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, oauthExchangeTimeout)
	defer cancel()
	token, err := s.provider.Exchange(exchangeCtx, code)
	if err != nil {
		return nil, nil, "", fmt.Errorf("exchange code: %w", err)
	}

	providerUser, err := s.provider.FetchUser(ctx, token)
	if err != nil {
		return nil, nil, "", fmt.Errorf("fetch provider user: %w", err)
	}

	var user *model.User
	if claims.LinkUserID != "" {
		// Explicit linking may attach a provider identity with a
		// different email than the user's own.
		user, err = s.linkAccount(ctx, claims.LinkUserID, providerUser, token.AccessToken, token.RefreshToken, token.Expiry, s.scope())
	} else {
		user, err = s.resolveOAuthUser(ctx, providerUser, token.AccessToken, token.RefreshToken, token.Expiry)
	}
	if err != nil {
		return nil, nil, "", err
	}
	if isBanned(user, time.Now()) {
		return nil, nil, "", apperrors.ErrUserBanned
	}

	session, err := s.createSession(ctx, user, ip, userAgent)
	if err != nil {
		return nil, nil, "", err
	}
	return user, session, claims.Redirect, nil
}

func (s *authService) scope() string {
	return "identify email guilds"
}

func (s *authService) linkAccount(ctx context.Context, userID string, pu *auth.ProviderUser, accessToken, refreshToken string, expiry time.Time, scope string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	existing, err := s.accountRepo.FindByProvider(ctx, model.ProviderDiscord, pu.ID)
	if err == nil && existing != nil {
		if existing.UserID != user.ID {
			return nil, fmt.Errorf("discord account is already linked to another user")
		}
		applyTokens(existing, accessToken, refreshToken, expiry, scope)
		if err := s.accountRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update linked account: %w", err)
		}
		return user, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check linked account: %w", err)
	}

	account := &model.Account{
		AccountID:  pu.ID,
		ProviderID: model.ProviderDiscord,
		UserID:     user.ID,
	}
	applyTokens(account, accessToken, refreshToken, expiry, scope)
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create linked account: %w", err)
	}
	return user, nil
}

func (s *authService) resolveOAuthUser(ctx context.Context, pu *auth.ProviderUser, accessToken, refreshToken string, expiry time.Time) (*model.User, error) {
	scope := s.scope()

	account, err := s.accountRepo.FindByProvider(ctx, model.ProviderDiscord, pu.ID)
	if err == nil && account != nil {
		applyTokens(account, accessToken, refreshToken, expiry, scope)
		_ = s.accountRepo.Update(ctx, account)
		user, err := s.userRepo.FindByID(ctx, account.UserID)
		if err != nil {
			return nil, fmt.Errorf("load account user: %w", err)
		}
		return user, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up provider account: %w", err)
	}

	// First Discord sign-in: attach to the user with the same email, or
	// create a fresh user.
	if pu.Email != "" {
		if user, err := s.userRepo.FindByEmail(ctx, pu.Email); err == nil {
			return s.linkAccount(ctx, user.ID, pu, accessToken, refreshToken, expiry, scope)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("look up user by email: %w", err)
		}
	}

	user := &model.User{
		Name:          pu.Name,
		Email:         pu.Email,
		EmailVerified: pu.EmailVerified,
		Role:          access.RoleUser,
	}
	newAccount := &model.Account{
		AccountID:  pu.ID,
		ProviderID: model.ProviderDiscord,
	}
	applyTokens(newAccount, accessToken, refreshToken, expiry, scope)
	if err := s.userRepo.CreateWithAccount(ctx, user, newAccount); err != nil {
		return nil, fmt.Errorf("create oauth user: %w", err)
	}
	return user, nil
}

func (s *authService) createSession(ctx context.Context, user *model.User, ip, userAgent string) (*model.Session, error) {
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionDuration),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	_ = s.sessions.Put(ctx, session.Token, user, session, sessionCacheTTL)
	return session, nil
}

func (s *authService) sendVerificationEmail(ctx context.Context, email string) {
	verification := &model.Verification{
		Identifier: email,
		Value:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(verificationExpiry),
	}
	if err := s.verificationRepo.Create(ctx, verification); err != nil {
		log.Printf("create verification for %s: %v", email, err)
		return
	}

	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.apiBaseURL, url.QueryEscape(verification.Value))
	body := fmt.Sprintf(`<p>Welcome! Confirm your email by opening <a href="%s">this link</a>.</p>`, link)
	if err := s.mailer.Send(ctx, email, "Verify your email", body); err != nil {
		// signup still succeeds; the token can be re-mailed later
		log.Printf("send verification email to %s: %v", email, err)
	}
}

func applyTokens(account *model.Account, accessToken, refreshToken string, expiry time.Time, scope string) {
	if accessToken != "" {
		account.AccessToken = &accessToken
	}
	if refreshToken != "" {
		account.RefreshToken = &refreshToken
	}
	if !expiry.IsZero() {
		e := expiry
		account.AccessTokenExpiresAt = &e
	}
	if scope != "" {
		account.Scope = &scope
	}
}

func isBanned(user *model.User, now time.Time) bool {
	if user == nil || !user.Banned {
		return false
	}
	if user.BanExpires != nil && user.BanExpires.Before(now) {
		return false
	}
	return true
}
