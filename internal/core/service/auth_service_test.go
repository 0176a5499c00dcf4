package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

const testDomain = "jietjodhpur.ac.in"

type stubThrottle struct {
	blocked  bool
	allowErr error
	failures []string
	resets   []string
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) {
	if t.allowErr != nil {
		return false, t.allowErr
	}
	return !t.blocked, nil
}

func (t *stubThrottle) Failure(_ context.Context, email string) error {
	t.failures = append(t.failures, email)
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.resets = append(t.resets, email)
	return nil
}

type authFixture struct {
	repo     *memUserRepo
	throttle *stubThrottle
	sink     *recordingSink
	svc      *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		repo:     newMemUserRepo(),
		throttle: &stubThrottle{},
		sink:     &recordingSink{},
	}
	f.svc = NewAuthService(f.repo, NewTokenManager("secret", time.Hour), AuthOptions{
		AllowedDomain: testDomain,
		Throttle:      f.throttle,
		Audit:         f.sink,
	}, zerolog.Nop())
	return f
}

func registerInput(local, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "User " + local,
		Email:    local + "@" + testDomain,
		Password: "pass123",
		Role:     role,
	}
}

func TestAuthService_Register_FirstUserIsAdmin(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.Register(context.Background(), registerInput("first", "student"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, []string{domain.AuditBootstrapAdminGrant}, f.sink.actions())

	second, err := f.svc.Register(context.Background(), registerInput("second", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, second.User.Role)
}

func TestAuthService_Register_RequestedRole(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerInput("bootstrap", ""))
	require.NoError(t, err)

	cases := []struct {
		local, requested, want string
	}{
		{"a", "admin", domain.RoleAdmin},
		{"b", "ADMIN", domain.RoleAdmin},
		{"c", "student", domain.RoleStudent},
		{"d", "superuser", domain.RoleStudent},
		{"e", "", domain.RoleStudent},
	}
	for _, tc := range cases {
		res, err := f.svc.Register(context.Background(), registerInput(tc.local, tc.requested))
		require.NoError(t, err, tc.requested)
		assert.Equal(t, tc.want, res.User.Role, "requested %q", tc.requested)
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	stored, err := f.repo.FindByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialHashed, stored.Credential.Kind())
	assert.NotEqual(t, "pass123", stored.Credential.Stored())
	assert.True(t, stored.Credential.Matches("pass123"))
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Bob",
		Email:    "  Bob@JIETJODHPUR.AC.IN ",
		Password: "pass123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@jietjodhpur.ac.in", res.User.Email)
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture()

	cases := []ports.RegisterInput{
		{Email: "a@" + testDomain, Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@" + testDomain},
		{Name: "   ", Email: "a@" + testDomain, Password: "x"},
	}
	for _, in := range cases {
		_, err := f.svc.Register(context.Background(), in)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err), "%+v", in)
		assert.EqualError(t, err, "All fields are required")
	}
}

// bcrypt limits input to 72 bytes, not characters.
func TestAuthService_Register_PasswordByteLimit(t *testing.T) {
	f := newAuthFixture()

	in := registerInput("long", "")
	in.Password = strings.Repeat("é", 72)
	_, err := f.svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.EqualError(t, err, "Password must be at most 72 bytes")
	assert.Empty(t, f.repo.users)
	assert.False(t, f.repo.claimed)

	in.Password = strings.Repeat("a", domain.MaxPasswordBytes)
	res, err := f.svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
}

func TestAuthService_Register_RejectsForeignDomain(t *testing.T) {
	f := newAuthFixture()

	for _, email := range []string{
		"alice@gmail.com",
		"alice@sub.jietjodhpur.ac.in",
		"alice@jietjodhpur.ac.in.evil.com",
		"@jietjodhpur.ac.in",
		"a lice@jietjodhpur.ac.in",
	} {
		_, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "A", Email: email, Password: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmailDomain, email)
	}
	assert.Empty(t, f.repo.users)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), registerInput("dup", ""))
	require.NoError(t, err)

	in := registerInput("dup", "")
	in.Email = "DUP@" + testDomain
	_, err = f.svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

// A first registration that fails to store its user must not use up the
// one-time admin grant.
func TestAuthService_Register_FailedCreateKeepsBootstrap(t *testing.T) {
	f := newAuthFixture()
	f.repo.createErr = errors.New("write concern timeout")

	_, err := f.svc.Register(context.Background(), registerInput("first", ""))
	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))
	assert.False(t, f.repo.claimed)
	assert.Empty(t, f.sink.entries)

	f.repo.createErr = nil
	res, err := f.svc.Register(context.Background(), registerInput("retry", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
	assert.Equal(t, []string{domain.AuditBootstrapAdminGrant}, f.sink.actions())
}

func TestAuthService_Register_ConcurrentBootstrapGrantsOneAdmin(t *testing.T) {
	f := newAuthFixture()

	const n = 8
	var wg sync.WaitGroup
	roles := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.Register(context.Background(), registerInput(fmt.Sprintf("u%d", i), "student"))
			if err == nil {
				roles[i] = res.User.Role
			}
		}(i)
	}
	wg.Wait()

	admins := 0
	for _, r := range roles {
		if r == domain.RoleAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	res, err := f.svc.Login(context.Background(), " ALICE@"+testDomain, "pass123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.False(t, res.Migrated)
	assert.Equal(t, []string{"alice@" + testDomain}, f.throttle.resets)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), "alice@"+testDomain, "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), "nobody@"+testDomain, "pass123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Len(t, f.throttle.failures, 2)
	assert.Empty(t, f.throttle.resets)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Login(context.Background(), "", "x")
	assert.EqualError(t, err, "Email and password are required")
	_, err = f.svc.Login(context.Background(), "a@b.c", "")
	assert.True(t, domain.IsValidation(err))
}

func TestAuthService_Login_HashIsNotAPassword(t *testing.T) {
	f := newAuthFixture()
	res, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	stored, err := f.repo.FindByID(context.Background(), res.User.ID)
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), "alice@"+testDomain, stored.Credential.Stored())
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_MigratesLegacyCredential(t *testing.T) {
	f := newAuthFixture()
	legacy := f.repo.seed(&domain.User{
		Name:       "Legacy",
		Email:      "legacy@" + testDomain,
		Credential: domain.ParseCredential("plain123"),
		Role:       domain.RoleStudent,
	})
	require.True(t, legacy.Credential.IsLegacy())

	res, err := f.svc.Login(context.Background(), legacy.Email, "plain123")
	require.NoError(t, err)
	assert.True(t, res.Migrated)

	stored, err := f.repo.FindByID(context.Background(), legacy.ID)
	require.NoError(t, err)
	assert.False(t, stored.Credential.IsLegacy())
	assert.NotEqual(t, "plain123", stored.Credential.Stored())
	assert.True(t, stored.Credential.Matches("plain123"))
	assert.Equal(t, []string{domain.AuditCredentialMigrated}, f.sink.actions())

	again, err := f.svc.Login(context.Background(), legacy.Email, "plain123")
	require.NoError(t, err)
	assert.False(t, again.Migrated)
	assert.Len(t, f.sink.entries, 1)
}

func TestAuthService_Login_LegacyWrongPasswordLeavesRecord(t *testing.T) {
	f := newAuthFixture()
	legacy := f.repo.seed(&domain.User{
		Email:      "legacy@" + testDomain,
		Credential: domain.ParseCredential("plain123"),
		Role:       domain.RoleStudent,
	})

	_, err := f.svc.Login(context.Background(), legacy.Email, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	stored, _ := f.repo.FindByID(context.Background(), legacy.ID)
	assert.True(t, stored.Credential.IsLegacy())
}

func TestAuthService_Login_Throttled(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	f.throttle.blocked = true
	_, err = f.svc.Login(context.Background(), "alice@"+testDomain, "pass123")
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
}

func TestAuthService_Login_ThrottleErrorFailsOpen(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	f.throttle.allowErr = errors.New("redis down")
	_, err = f.svc.Login(context.Background(), "alice@"+testDomain, "pass123")
	assert.NoError(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newAuthFixture()
	res, err := f.svc.Register(context.Background(), registerInput("alice", ""))
	require.NoError(t, err)

	id, err := f.svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.ID)
	assert.Equal(t, domain.RoleAdmin, id.Role)

	_, err = f.svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	require.NoError(t, f.repo.Delete(context.Background(), res.User.ID))
	_, err = f.svc.Authenticate(context.Background(), res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_NoDomainRestriction(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), NewTokenManager("secret", 0), AuthOptions{}, zerolog.Nop())

	res, err := svc.Register(context.Background(), ports.RegisterInput{Name: "A", Email: "a@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", res.User.Email)
}
