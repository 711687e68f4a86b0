package usecase

import (
	"context"
	"time"

	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/clock"
	"github.com/ramadhaner/authapi/internal/pkg/config"
	"github.com/ramadhaner/authapi/internal/pkg/hash"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/otp"
	"github.com/ramadhaner/authapi/internal/pkg/uid"
	"github.com/ramadhaner/authapi/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type AccountRegisteredEvent struct {
	AccountID int64
	Email     string
	FullName  string
}

type PasswordOTPRequestedEvent struct {
	AccountID int64
	Email     string
	FullName  string
	Code      string
	ExpiresIn time.Duration
}

type repoMessaging interface {
	PublishAccountRegistered(ctx context.Context, msg AccountRegisteredEvent) error
	PublishPasswordOTPRequested(ctx context.Context, msg PasswordOTPRequestedEvent) error
}

type repoDB interface {
	CreateAccount(ctx context.Context, in entity.NewAccount) error
	GetAccountAuthInfoByEmail(ctx context.Context, email string) (*entity.AccountAuthInfo, error)

	CreateBearerToken(ctx context.Context, in entity.BearerToken) error
	GetTokenAccountByDigest(ctx context.Context, digest string) (*entity.TokenAccount, error)
	DeleteBearerToken(ctx context.Context, id int64) error
	ListTokenDigestsByAccount(ctx context.Context, accountID int64) ([]string, error)
	DeleteAllBearerTokens(ctx context.Context, accountID int64) (int64, error)

	SweepExpiredPasswordResets(ctx context.Context, olderThan time.Time) (int64, error)
	UpsertPasswordReset(ctx context.Context, in entity.PasswordReset) error
	GetPasswordReset(ctx context.Context, email string) (*entity.PasswordReset, error)
	DeletePasswordReset(ctx context.Context, email string) error
	ResetAccountPassword(ctx context.Context, accountID int64, email, newHash string) error
}

type repoCache interface {
	GetTokenAccount(ctx context.Context, digest string) (*entity.TokenAccount, error)
	SetTokenAccount(ctx context.Context, ta entity.TokenAccount, ttl time.Duration) error
	DeleteTokenAccounts(ctx context.Context, digests ...string) error
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	bcrypt        hash.Hash
	argon2id      hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	oid           uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation

	// bcryptDecoy is a hash of a sentinel value, verified on the
	// unknown-email login path so it costs the same work as a wrong
	// password and the two failures stay timing-indistinguishable.
	bcryptDecoy string
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	Argon2ID      hash.Hash
	OTP           otp.Generator
	UID           uid.NumberID
	OID           uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	// Hashed with the injected hasher so the decoy carries the production
	// cost parameter. The sentinel never matches a submitted password.
	decoy, _ := dep.Bcrypt.Hash("decoy-credential-cd8f2a")

	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		argon2id:      dep.Argon2ID,
		otp:           dep.OTP,
		uid:           dep.UID,
		oid:           dep.OID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		bcryptDecoy:   decoy,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	return s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
}
