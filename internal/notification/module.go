package notification

import (
	"context"

	"github.com/ramadhaner/authapi/internal/notification/inbound"
	"github.com/ramadhaner/authapi/internal/notification/usecase"
	"github.com/ramadhaner/authapi/internal/pkg/config"
	"github.com/ramadhaner/authapi/internal/pkg/goroutine"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/mail"
	"github.com/ramadhaner/authapi/internal/pkg/messaging"
	"github.com/ramadhaner/authapi/internal/pkg/uid"
	"github.com/ramadhaner/authapi/internal/pkg/validator"
)

type Dependency struct {
	Goroutine  *goroutine.Manager         `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc, err := usecase.New(usecase.Dependency{
		Mail:       dep.Mail,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})
	if err != nil {
		return err
	}

	inbound.RegisterMQConsumer(ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
