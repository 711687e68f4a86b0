package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ramadhaner/authapi/internal/auth/inbound"
	"github.com/ramadhaner/authapi/internal/auth/outbound/cache"
	"github.com/ramadhaner/authapi/internal/auth/outbound/db"
	"github.com/ramadhaner/authapi/internal/auth/outbound/mq"
	"github.com/ramadhaner/authapi/internal/auth/usecase"
	"github.com/ramadhaner/authapi/internal/pkg/clock"
	"github.com/ramadhaner/authapi/internal/pkg/config"
	"github.com/ramadhaner/authapi/internal/pkg/hash"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/messaging"
	"github.com/ramadhaner/authapi/internal/pkg/otp"
	"github.com/ramadhaner/authapi/internal/pkg/router"
	"github.com/ramadhaner/authapi/internal/pkg/uid"
	"github.com/ramadhaner/authapi/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Argon2ID   hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// New wires the module and returns its usecase, which also serves as the
// session resolver for the router's auth middleware.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoCache := cache.NewCache(dep.CacheConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoCache:     repoCache,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Bcrypt:        dep.Bcrypt,
		Argon2ID:      dep.Argon2ID,
		OTP:           dep.OTP,
		UID:           dep.UID,
		OID:           dep.OID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}
