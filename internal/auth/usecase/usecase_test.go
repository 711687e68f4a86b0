package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/config"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
	"github.com/ramadhaner/authapi/internal/pkg/hash"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/otp"
	"github.com/ramadhaner/authapi/internal/pkg/validator"
)

// memStore is an in-memory stand-in for the Postgres store so the
// orchestration logic can be exercised end to end without a database.
type memStore struct {
	accounts map[string]*entity.AccountAuthInfo
	tokens   map[int64]entity.BearerToken
	resets   map[string]entity.PasswordReset

	tokenConflicts int
	failCreate     error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*entity.AccountAuthInfo),
		tokens:   make(map[int64]entity.BearerToken),
		resets:   make(map[string]entity.PasswordReset),
	}
}

func (m *memStore) CreateAccount(_ context.Context, in entity.NewAccount) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.accounts[in.Email]; ok {
		return goerror.ErrConflict
	}

	m.accounts[in.Email] = &entity.AccountAuthInfo{
		ID:       in.ID,
		Email:    in.Email,
		FullName: in.FullName,
		Password: in.Password,
	}
	return nil
}

func (m *memStore) GetAccountAuthInfoByEmail(_ context.Context, email string) (*entity.AccountAuthInfo, error) {
	acc, ok := m.accounts[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cp := *acc
	return &cp, nil
}

func (m *memStore) CreateBearerToken(_ context.Context, in entity.BearerToken) error {
	if m.tokenConflicts > 0 {
		m.tokenConflicts--
		return goerror.ErrConflict
	}
	for _, tok := range m.tokens {
		if tok.Digest == in.Digest {
			return goerror.ErrConflict
		}
	}

	m.tokens[in.ID] = in
	return nil
}

func (m *memStore) GetTokenAccountByDigest(_ context.Context, digest string) (*entity.TokenAccount, error) {
	for _, tok := range m.tokens {
		if tok.Digest != digest {
			continue
		}
		for _, acc := range m.accounts {
			if acc.ID == tok.AccountID {
				return &entity.TokenAccount{
					TokenID:     tok.ID,
					TokenDigest: tok.Digest,
					AccountID:   acc.ID,
					Email:       acc.Email,
					FullName:    acc.FullName,
				}, nil
			}
		}
	}
	return nil, goerror.ErrNotFound
}

func (m *memStore) DeleteBearerToken(_ context.Context, id int64) error {
	delete(m.tokens, id)
	return nil
}

func (m *memStore) ListTokenDigestsByAccount(_ context.Context, accountID int64) ([]string, error) {
	var digests []string
	for _, tok := range m.tokens {
		if tok.AccountID == accountID {
			digests = append(digests, tok.Digest)
		}
	}
	return digests, nil
}

func (m *memStore) DeleteAllBearerTokens(_ context.Context, accountID int64) (int64, error) {
	var n int64
	for id, tok := range m.tokens {
		if tok.AccountID == accountID {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) SweepExpiredPasswordResets(_ context.Context, olderThan time.Time) (int64, error) {
	var n int64
	for email, pr := range m.resets {
		if pr.CreatedAt.Before(olderThan) {
			delete(m.resets, email)
			n++
		}
	}
	return n, nil
}

func (m *memStore) UpsertPasswordReset(_ context.Context, in entity.PasswordReset) error {
	m.resets[in.Email] = in
	return nil
}

func (m *memStore) GetPasswordReset(_ context.Context, email string) (*entity.PasswordReset, error) {
	pr, ok := m.resets[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &pr, nil
}

func (m *memStore) DeletePasswordReset(_ context.Context, email string) error {
	delete(m.resets, email)
	return nil
}

func (m *memStore) ResetAccountPassword(_ context.Context, accountID int64, email, newHash string) error {
	if _, ok := m.resets[email]; !ok {
		return goerror.ErrNotFound
	}

	for _, acc := range m.accounts {
		if acc.ID == accountID {
			acc.Password = newHash
			break
		}
	}

	delete(m.resets, email)
	return nil
}

type memCache struct {
	entries map[string]entity.TokenAccount
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]entity.TokenAccount)}
}

func (m *memCache) GetTokenAccount(_ context.Context, digest string) (*entity.TokenAccount, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	ta, ok := m.entries[digest]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &ta, nil
}

func (m *memCache) SetTokenAccount(_ context.Context, ta entity.TokenAccount, _ time.Duration) error {
	m.entries[ta.TokenDigest] = ta
	return nil
}

func (m *memCache) DeleteTokenAccounts(_ context.Context, digests ...string) error {
	for _, d := range digests {
		delete(m.entries, d)
	}
	return nil
}

type memMessaging struct {
	registered []AccountRegisteredEvent
	otps       []PasswordOTPRequestedEvent
	publishErr error
}

func (m *memMessaging) PublishAccountRegistered(_ context.Context, msg AccountRegisteredEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.registered = append(m.registered, msg)
	return nil
}

func (m *memMessaging) PublishPasswordOTPRequested(_ context.Context, msg PasswordOTPRequestedEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.otps = append(m.otps, msg)
	return nil
}

type seqNumberID struct{ n int64 }

func (s *seqNumberID) Generate() int64 {
	return atomic.AddInt64(&s.n, 1)
}

// seqStringID yields distinct 64-character secrets, the same shape the real
// secret generator produces.
type seqStringID struct{ n int64 }

func (s *seqStringID) Generate() string {
	return fmt.Sprintf("%064d", atomic.AddInt64(&s.n, 1))
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type testConfig struct{ config.Config }

func (testConfig) GetMinute(key string) time.Duration {
	switch key {
	case "modules.auth.otp_ttl_minutes":
		return 15 * time.Minute
	case "modules.auth.token_cache_ttl_minutes":
		return 2 * time.Minute
	}
	return time.Minute
}

// countingHash wraps a hasher and counts Verify calls, so tests can assert
// two code paths burn the same amount of hashing work.
type countingHash struct {
	inner    hash.Hash
	verifies int64
}

func (c *countingHash) Hash(plaintext string) (string, error) {
	return c.inner.Hash(plaintext)
}

func (c *countingHash) Verify(hashed, plain string) bool {
	atomic.AddInt64(&c.verifies, 1)
	return c.inner.Verify(hashed, plain)
}

type testEnv struct {
	uc    *Usecase
	store *memStore
	cache *memCache
	msgs  *memMessaging
	clock *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvBcrypt(t, hash.NewBcrypt(bcrypt.MinCost, ""))
}

func newTestEnvBcrypt(t *testing.T, bc hash.Hash) *testEnv {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	env := &testEnv{
		store: newMemStore(),
		cache: newMemCache(),
		msgs:  &memMessaging{},
		clock: &testClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	env.uc = New(Dependency{
		RepoDB:        env.store,
		RepoCache:     env.cache,
		RepoMessaging: env.msgs,
		Validator:     v,
		Config:        testConfig{},
		HMAC:          hash.NewHMACSHA256("test-secret"),
		Bcrypt:        bc,
		Argon2ID:      hash.NewArgon2id(""),
		OTP:           otp.NewNumeric(6),
		UID:           &seqNumberID{},
		OID:           &seqStringID{},
		Clock:         env.clock,
		Instrument:    instrument.NewNoop(),
	})

	return env
}

func registerAccount(t *testing.T, env *testEnv, email string) *RegisterOutput {
	t.Helper()

	out, err := env.uc.Register(context.Background(), RegisterInput{
		FullName:             "Jane Doe",
		Email:                email,
		Password:             "password123",
		PasswordConfirmation: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	return out
}

func TestUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and issues a token", func(t *testing.T) {
		env := newTestEnv(t)

		out := registerAccount(t, env, "jane@example.com")

		if out.Account.Email != "jane@example.com" {
			t.Errorf("account email = %q", out.Account.Email)
		}
		if len(out.Token) != 64 {
			t.Errorf("len(token) = %d, want 64", len(out.Token))
		}

		stored := env.store.accounts["jane@example.com"]
		if stored == nil {
			t.Fatal("account not persisted")
		}
		if stored.Password == "password123" {
			t.Error("password stored in plaintext")
		}

		if len(env.msgs.registered) != 1 {
			t.Fatalf("published %d events, want 1", len(env.msgs.registered))
		}
		if env.msgs.registered[0].Email != "jane@example.com" {
			t.Errorf("event email = %q", env.msgs.registered[0].Email)
		}
	})

	t.Run("normalizes the email", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.uc.Register(ctx, RegisterInput{
			FullName:             "Jane Doe",
			Email:                "  Jane@Example.COM ",
			Password:             "password123",
			PasswordConfirmation: "password123",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if out.Account.Email != "jane@example.com" {
			t.Errorf("account email = %q, want lowercase trimmed", out.Account.Email)
		}
	})

	t.Run("taken email fails as business error", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		_, err := env.uc.Register(ctx, RegisterInput{
			FullName:             "Jane Again",
			Email:                "jane@example.com",
			Password:             "password123",
			PasswordConfirmation: "password123",
		})
		if err == nil || err.Error() != "email already registered" {
			t.Errorf("Register() error = %v, want email already registered", err)
		}
	})

	t.Run("mismatched confirmation is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.Register(ctx, RegisterInput{
			FullName:             "Jane Doe",
			Email:                "jane@example.com",
			Password:             "password123",
			PasswordConfirmation: "different123",
		})
		if err == nil {
			t.Fatal("Register() error = nil, want validation error")
		}
		if len(env.store.accounts) != 0 {
			t.Error("account persisted despite validation failure")
		}
	})

	t.Run("publish failure does not fail the registration", func(t *testing.T) {
		env := newTestEnv(t)
		env.msgs.publishErr = errors.New("broker down")

		if _, err := env.uc.Register(ctx, RegisterInput{
			FullName:             "Jane Doe",
			Email:                "jane@example.com",
			Password:             "password123",
			PasswordConfirmation: "password123",
		}); err != nil {
			t.Errorf("Register() error = %v, want nil", err)
		}
	})

	t.Run("digest collision retries with a fresh secret", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.tokenConflicts = 2

		out := registerAccount(t, env, "jane@example.com")
		if out.Token == "" {
			t.Error("no token issued after retries")
		}
	})
}

func TestUsecase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a fresh token", func(t *testing.T) {
		env := newTestEnv(t)
		reg := registerAccount(t, env, "jane@example.com")

		out, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if out.Token == reg.Token {
			t.Error("login reused the registration token, want a new one")
		}

		// Both tokens stay valid; sessions are independent.
		if _, err := env.uc.Resolve(ctx, reg.Token); err != nil {
			t.Errorf("registration token no longer resolves: %v", err)
		}
		if _, err := env.uc.Resolve(ctx, out.Token); err != nil {
			t.Errorf("login token does not resolve: %v", err)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		_, errUnknown := env.uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "password123"})
		_, errWrong := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "wrong-password"})

		if errUnknown == nil || errWrong == nil {
			t.Fatalf("errors = %v, %v, want both non-nil", errUnknown, errWrong)
		}
		if errUnknown.Error() != errWrong.Error() {
			t.Errorf("messages differ: %q vs %q", errUnknown.Error(), errWrong.Error())
		}
	})

	t.Run("unknown email burns the same hash work as a wrong password", func(t *testing.T) {
		bc := &countingHash{inner: hash.NewBcrypt(bcrypt.MinCost, "")}
		env := newTestEnvBcrypt(t, bc)
		registerAccount(t, env, "jane@example.com")

		atomic.StoreInt64(&bc.verifies, 0)
		if _, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "wrong-password"}); err == nil {
			t.Fatal("Login() with wrong password succeeded")
		}
		wrongPassword := atomic.LoadInt64(&bc.verifies)

		atomic.StoreInt64(&bc.verifies, 0)
		if _, err := env.uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "wrong-password"}); err == nil {
			t.Fatal("Login() with unknown email succeeded")
		}
		unknownEmail := atomic.LoadInt64(&bc.verifies)

		if wrongPassword != 1 || unknownEmail != 1 {
			t.Errorf("bcrypt verifies: wrong password = %d, unknown email = %d, want 1 and 1", wrongPassword, unknownEmail)
		}
	})

	t.Run("email is matched case insensitively", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		if _, err := env.uc.Login(ctx, LoginInput{Email: "JANE@example.com", Password: "password123"}); err != nil {
			t.Errorf("Login() error = %v", err)
		}
	})
}

func TestUsecase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes only the presented token", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		first, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		second, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		sess, err := env.uc.Resolve(ctx, first.Token)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if err := env.uc.Logout(ctx, LogoutInput{
			AccountID:   sess.AccountID,
			TokenID:     sess.TokenID,
			TokenDigest: sess.TokenDigest,
		}); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}

		if _, err := env.uc.Resolve(ctx, first.Token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("revoked token resolved, error = %v", err)
		}
		if _, err := env.uc.Resolve(ctx, second.Token); err != nil {
			t.Errorf("unrelated token revoked too: %v", err)
		}
	})

	t.Run("revoking an already revoked token succeeds", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		in := LogoutInput{AccountID: 1, TokenID: 999, TokenDigest: "gone"}
		if err := env.uc.Logout(ctx, in); err != nil {
			t.Errorf("Logout() error = %v, want nil", err)
		}
	})
}

func TestUsecase_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed secrets fail without a lookup", func(t *testing.T) {
		env := newTestEnv(t)

		for _, secret := range []string{"", "short", "way-too-long-" + fmt.Sprintf("%0100d", 1)} {
			if _, err := env.uc.Resolve(ctx, secret); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Resolve(%q) error = %v, want ErrTokenInvalid", secret, err)
			}
		}
	})

	t.Run("db resolution populates the cache", func(t *testing.T) {
		env := newTestEnv(t)
		out := registerAccount(t, env, "jane@example.com")

		sess, err := env.uc.Resolve(ctx, out.Token)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if sess.Email != "jane@example.com" {
			t.Errorf("session email = %q", sess.Email)
		}

		if _, ok := env.cache.entries[sess.TokenDigest]; !ok {
			t.Error("resolved token not cached")
		}
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		env := newTestEnv(t)
		out := registerAccount(t, env, "jane@example.com")

		sess, err := env.uc.Resolve(ctx, out.Token)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		// Drop the backing row; the cached entry must still serve.
		if err := env.store.DeleteBearerToken(ctx, sess.TokenID); err != nil {
			t.Fatalf("DeleteBearerToken() error = %v", err)
		}

		if _, err := env.uc.Resolve(ctx, out.Token); err != nil {
			t.Errorf("Resolve() error = %v, want cache hit", err)
		}
	})

	t.Run("cache failure falls through to the store", func(t *testing.T) {
		env := newTestEnv(t)
		out := registerAccount(t, env, "jane@example.com")
		env.cache.getErr = errors.New("redis down")

		if _, err := env.uc.Resolve(ctx, out.Token); err != nil {
			t.Errorf("Resolve() error = %v, want store fallback", err)
		}
	})
}

func TestUsecase_PasswordForgot(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed code and publishes the plaintext once", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		if err := env.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "jane@example.com"}); err != nil {
			t.Fatalf("PasswordForgot() error = %v", err)
		}

		if len(env.msgs.otps) != 1 {
			t.Fatalf("published %d events, want 1", len(env.msgs.otps))
		}
		code := env.msgs.otps[0].Code
		if len(code) != 6 {
			t.Errorf("len(code) = %d, want 6", len(code))
		}

		entry, ok := env.store.resets["jane@example.com"]
		if !ok {
			t.Fatal("reset entry not stored")
		}
		if entry.OTPHash == code {
			t.Error("code stored in plaintext")
		}
		if !hash.NewArgon2id("").Verify(entry.OTPHash, code) {
			t.Error("stored hash does not match the published code")
		}
	})

	t.Run("unknown email succeeds without side effects", func(t *testing.T) {
		env := newTestEnv(t)

		if err := env.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "ghost@example.com"}); err != nil {
			t.Errorf("PasswordForgot() error = %v, want nil", err)
		}
		if len(env.msgs.otps) != 0 || len(env.store.resets) != 0 {
			t.Error("side effects for unknown email")
		}
	})

	t.Run("a new request replaces the pending code", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		if err := env.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "jane@example.com"}); err != nil {
			t.Fatalf("PasswordForgot() error = %v", err)
		}
		first := env.store.resets["jane@example.com"]

		env.clock.now = env.clock.now.Add(5 * time.Minute)
		if err := env.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "jane@example.com"}); err != nil {
			t.Fatalf("PasswordForgot() error = %v", err)
		}
		second := env.store.resets["jane@example.com"]

		if !second.CreatedAt.After(first.CreatedAt) {
			t.Error("expiry window not restarted")
		}
		if len(env.store.resets) != 1 {
			t.Errorf("%d pending entries, want 1", len(env.store.resets))
		}
	})

	t.Run("expired entries are swept on request", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")
		env.store.resets["stale@example.com"] = entity.PasswordReset{
			Email:     "stale@example.com",
			OTPHash:   "old",
			CreatedAt: env.clock.now.Add(-time.Hour),
		}

		if err := env.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "jane@example.com"}); err != nil {
			t.Fatalf("PasswordForgot() error = %v", err)
		}
		if _, ok := env.store.resets["stale@example.com"]; ok {
			t.Error("stale entry survived the sweep")
		}
	})
}

func requestResetCode(t *testing.T, env *testEnv, email string) string {
	t.Helper()

	if err := env.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: email}); err != nil {
		t.Fatalf("PasswordForgot() error = %v", err)
	}
	if len(env.msgs.otps) == 0 {
		t.Fatal("no reset code published")
	}

	return env.msgs.otps[len(env.msgs.otps)-1].Code
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestUsecase_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the password and revokes every session", func(t *testing.T) {
		env := newTestEnv(t)
		reg := registerAccount(t, env, "jane@example.com")
		login, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		code := requestResetCode(t, env, "jane@example.com")

		if err := env.uc.PasswordReset(ctx, PasswordResetInput{
			Email:                "jane@example.com",
			Code:                 code,
			Password:             "newpassword456",
			PasswordConfirmation: "newpassword456",
		}); err != nil {
			t.Fatalf("PasswordReset() error = %v", err)
		}

		if _, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "password123"}); err == nil {
			t.Error("old password still logs in")
		}
		if _, err := env.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "newpassword456"}); err != nil {
			t.Errorf("new password rejected: %v", err)
		}

		for name, token := range map[string]string{"registration": reg.Token, "login": login.Token} {
			if _, err := env.uc.Resolve(ctx, token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("%s token still resolves after reset, error = %v", name, err)
			}
		}
	})

	t.Run("a code is consumed by use", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")
		code := requestResetCode(t, env, "jane@example.com")

		in := PasswordResetInput{
			Email:                "jane@example.com",
			Code:                 code,
			Password:             "newpassword456",
			PasswordConfirmation: "newpassword456",
		}
		if err := env.uc.PasswordReset(ctx, in); err != nil {
			t.Fatalf("PasswordReset() error = %v", err)
		}

		if err := env.uc.PasswordReset(ctx, in); err == nil || err.Error() != "invalid or expired code" {
			t.Errorf("second use error = %v, want invalid or expired code", err)
		}
	})

	t.Run("a wrong code keeps the entry for retry", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")
		code := requestResetCode(t, env, "jane@example.com")

		in := PasswordResetInput{
			Email:                "jane@example.com",
			Code:                 wrongCode(code),
			Password:             "newpassword456",
			PasswordConfirmation: "newpassword456",
		}
		if err := env.uc.PasswordReset(ctx, in); err == nil || err.Error() != "invalid or expired code" {
			t.Fatalf("PasswordReset() error = %v, want invalid or expired code", err)
		}

		in.Code = code
		if err := env.uc.PasswordReset(ctx, in); err != nil {
			t.Errorf("retry with the right code failed: %v", err)
		}
	})

	t.Run("an expired code fails and is removed", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")
		code := requestResetCode(t, env, "jane@example.com")

		env.clock.now = env.clock.now.Add(16 * time.Minute)

		err := env.uc.PasswordReset(ctx, PasswordResetInput{
			Email:                "jane@example.com",
			Code:                 code,
			Password:             "newpassword456",
			PasswordConfirmation: "newpassword456",
		})
		if err == nil || err.Error() != "invalid or expired code" {
			t.Fatalf("PasswordReset() error = %v, want invalid or expired code", err)
		}
		if _, ok := env.store.resets["jane@example.com"]; ok {
			t.Error("expired entry kept")
		}
	})

	t.Run("missing entry and wrong code share one error", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")
		code := requestResetCode(t, env, "jane@example.com")

		errMissing := env.uc.PasswordReset(ctx, PasswordResetInput{
			Email:                "other@example.com",
			Code:                 "123456",
			Password:             "newpassword456",
			PasswordConfirmation: "newpassword456",
		})
		errWrong := env.uc.PasswordReset(ctx, PasswordResetInput{
			Email:                "jane@example.com",
			Code:                 wrongCode(code),
			Password:             "newpassword456",
			PasswordConfirmation: "newpassword456",
		})

		if errMissing == nil || errWrong == nil {
			t.Fatalf("errors = %v, %v, want both non-nil", errMissing, errWrong)
		}
		if errMissing.Error() != errWrong.Error() {
			t.Errorf("messages differ: %q vs %q", errMissing.Error(), errWrong.Error())
		}
	})

	t.Run("a malformed code never reaches the store", func(t *testing.T) {
		env := newTestEnv(t)
		registerAccount(t, env, "jane@example.com")

		for _, code := range []string{"", "12345", "1234567", "abcdef"} {
			err := env.uc.PasswordReset(ctx, PasswordResetInput{
				Email:                "jane@example.com",
				Code:                 code,
				Password:             "newpassword456",
				PasswordConfirmation: "newpassword456",
			})
			if err == nil {
				t.Errorf("PasswordReset() with code %q succeeded", code)
			}
		}
	})
}
