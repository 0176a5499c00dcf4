package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// LoginThrottle limits repeated failed logins per email (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	Failure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthOptions configures optional collaborators of AuthService.
type AuthOptions struct {
	// AllowedDomain restricts registration to addresses under this domain.
	// Empty disables the check.
	AllowedDomain string
	Throttle      LoginThrottle
	Audit         ports.AuditSink
}

// AuthService implements registration, login and token resolution.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *TokenManager
	domainRe *regexp.Regexp
	throttle LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, opts AuthOptions, log zerolog.Logger) *AuthService {
	s := &AuthService{
		repo:     repo,
		tokens:   tokens,
		throttle: opts.Throttle,
		audit:    opts.Audit,
		log:      log,
	}
	if d := strings.ToLower(strings.TrimSpace(opts.AllowedDomain)); d != "" {
		s.domainRe = regexp.MustCompile(`^[^\s@]+@` + regexp.QuoteMeta(d) + `$`)
	}
	if s.throttle == nil {
		s.throttle = noopThrottle{}
	}
	if s.audit == nil {
		s.audit = discardAudit{}
	}
	return s
}

// releaseBootstrap hands back an admin claim whose user was never stored. It
// runs detached from ctx so a cancelled request still frees the claim.
func (s *AuthService) releaseBootstrap(ctx context.Context) {
	if err := s.repo.ReleaseBootstrapAdmin(context.WithoutCancel(ctx)); err != nil {
		s.log.Error().Err(err).Msg("release bootstrap admin claim")
	}
}

// Register creates an account. The very first account is always an admin.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.NewValidationError("", "All fields are required")
	}
	if s.domainRe != nil && !s.domainRe.MatchString(email) {
		return nil, domain.ErrInvalidEmailDomain
	}
	if err := domain.CheckPasswordLength(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	cred, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	first, err := s.repo.ClaimBootstrapAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: bootstrap claim: %w", err)
	}
	role := domain.RoleStudent
	if first {
		role = domain.RoleAdmin
	} else if requested := strings.ToLower(strings.TrimSpace(in.Role)); domain.IsValidRole(requested) {
		role = requested
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:       name,
		Email:      email,
		Credential: cred,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		if first {
			s.releaseBootstrap(ctx)
		}
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	if first {
		s.log.Info().Str("user_id", created.ID).Msg("first account granted admin role")
		s.audit.Enqueue(ports.AuditEntry{
			Action:     domain.AuditBootstrapAdminGrant,
			ActorID:    created.ID,
			TargetType: "user",
			TargetID:   created.ID,
			At:         now,
		})
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login verifies credentials and issues a fresh token. Legacy plaintext
// credentials are upgraded to a hash before the token is issued.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "Email and password are required")
	}

	if !s.allowLogin(ctx, email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: find user: %w", err)
	}

	if !user.Credential.Matches(password) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	migrated := false
	if user.Credential.IsLegacy() {
		if err := s.migrateCredential(ctx, user, password); err != nil {
			return nil, err
		}
		migrated = true
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login throttle")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}
	return &ports.AuthResult{User: user, Token: token, Migrated: migrated}, nil
}

// Authenticate resolves a bearer token into the identity of an existing user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, fmt.Errorf("authenticate: find user: %w", err)
	}
	return user.Identity(), nil
}

func (s *AuthService) migrateCredential(ctx context.Context, user *domain.User, password string) error {
	cred, err := domain.HashPassword(password)
	if err != nil {
		return fmt.Errorf("login: hash legacy password: %w", err)
	}
	if err := s.repo.UpdateCredential(ctx, user.ID, cred); err != nil {
		return fmt.Errorf("login: upgrade legacy credential: %w", err)
	}
	user.Credential = cred

	s.log.Info().Str("user_id", user.ID).Msg("legacy plaintext credential upgraded")
	s.audit.Enqueue(ports.AuditEntry{
		Action:     domain.AuditCredentialMigrated,
		ActorID:    user.ID,
		TargetType: "user",
		TargetID:   user.ID,
		At:         time.Now().UTC(),
	})
	return nil
}

// allowLogin fails open: a throttle outage must not lock everyone out.
func (s *AuthService) allowLogin(ctx context.Context, email string) bool {
	ok, err := s.throttle.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login throttle check failed, allowing attempt")
		return true
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.Failure(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
	}
}

type noopThrottle struct{}

func (noopThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopThrottle) Failure(context.Context, string) error        { return nil }
func (noopThrottle) Reset(context.Context, string) error          { return nil }
