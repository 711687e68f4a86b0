package mq

import (
	"context"
	"encoding/json"

	"github.com/ramadhaner/authapi/internal/auth/usecase"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/messaging"
	"github.com/ramadhaner/authapi/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAccountRegistered(ctx context.Context, msg usecase.AccountRegisteredEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishAccountRegistered")
	defer span.End()

	body, err := json.Marshal(event.AccountRegisteredMessage{
		AccountID: msg.AccountID,
		Email:     msg.Email,
		FullName:  msg.FullName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AccountRegisteredDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishPasswordOTPRequested(ctx context.Context, msg usecase.PasswordOTPRequestedEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishPasswordOTPRequested")
	defer span.End()

	body, err := json.Marshal(event.PasswordOTPRequestedMessage{
		AccountID: msg.AccountID,
		Email:     msg.Email,
		FullName:  msg.FullName,
		Code:      msg.Code,
		ExpiresIn: msg.ExpiresIn.String(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PasswordOTPRequestedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
