package app

import (
	"log/slog"
	"os"

	"github.com/ramadhaner/authapi/internal/auth"
	"github.com/ramadhaner/authapi/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		uc, err := auth.New(auth.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			OID:        a.oid,
			Bcrypt:     a.bcrypt,
			HMAC:       a.hmac,
			Argon2ID:   a.argon2id,
			OTP:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Messaging:  a.messaging,
		})
		if err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}

		a.sessions.delegate = uc
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(a.ctx, notification.Dependency{
			Goroutine:  a.goroutine,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
