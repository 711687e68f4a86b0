package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ramadhaner/authapi/internal/notification/usecase"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/messaging"
	"github.com/ramadhaner/authapi/internal/pkg/uid"
	"github.com/ramadhaner/authapi/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) AccountRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AccountRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: account registered notification", "msg_body", string(body))

	var payload event.AccountRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAccountRegistered(ctx, usecase.ConsumeAccountRegisteredInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		FullName:  payload.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account registered", "account_id", payload.AccountID, "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) PasswordOTPRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordOTPRequestedNotification")
	defer span.End()

	// The reset code rides in the body; never echo it into logs.
	var payload event.PasswordOTPRequestedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of reset code notification", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: reset code notification", "account_id", payload.AccountID)

	if err := h.uc.ConsumePasswordOTPRequested(ctx, usecase.ConsumePasswordOTPRequestedInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Code:      payload.Code,
		ExpiresIn: payload.ExpiresIn,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume reset code requested", "account_id", payload.AccountID, "error", err)
		return err
	}

	return nil
}
