package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ramadhaner/authapi/internal/pkg/clock"
	"github.com/ramadhaner/authapi/internal/pkg/config"
	"github.com/ramadhaner/authapi/internal/pkg/goroutine"
	"github.com/ramadhaner/authapi/internal/pkg/hash"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/mail"
	"github.com/ramadhaner/authapi/internal/pkg/messaging"
	"github.com/ramadhaner/authapi/internal/pkg/otp"
	"github.com/ramadhaner/authapi/internal/pkg/router"
	"github.com/ramadhaner/authapi/internal/pkg/session"
	"github.com/ramadhaner/authapi/internal/pkg/uid"
	"github.com/ramadhaner/authapi/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// sessionResolver is bound late: the router exists before the auth module
// that actually resolves tokens.
type sessionResolver struct {
	delegate router.SessionResolver
}

func (s *sessionResolver) Resolve(ctx context.Context, secret string) (*session.Session, error) {
	if s.delegate == nil {
		return nil, errors.New("session resolver not configured")
	}

	return s.delegate.Resolve(ctx, secret)
}

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	argon2id  hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	otp       otp.Generator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	sessions   *sessionResolver
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
