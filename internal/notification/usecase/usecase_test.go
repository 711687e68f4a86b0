package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/mail"
)

type memMail struct {
	sent     []mail.Message
	failNext int
}

func (m *memMail) Send(_ context.Context, msg mail.Message) error {
	if m.failNext > 0 {
		m.failNext--
		return errors.New("smtp: connection refused")
	}

	m.sent = append(m.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T) (*Usecase, *memMail) {
	t.Helper()

	mm := &memMail{}
	uc, err := New(Dependency{
		Mail:       mm,
		Instrument: instrument.NewNoop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return uc, mm
}

func TestUsecase_ConsumeAccountRegistered(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the welcome email", func(t *testing.T) {
		uc, mm := newTestUsecase(t)

		err := uc.ConsumeAccountRegistered(ctx, ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "jane@example.com",
			FullName:  "Jane Doe",
		})
		if err != nil {
			t.Fatalf("ConsumeAccountRegistered() error = %v", err)
		}

		if len(mm.sent) != 1 {
			t.Fatalf("sent %d emails, want 1", len(mm.sent))
		}
		msg := mm.sent[0]
		if msg.To[0] != "jane@example.com" {
			t.Errorf("recipient = %q", msg.To[0])
		}
		if !strings.Contains(msg.HTMLBody, "Jane Doe") {
			t.Error("body does not address the recipient by name")
		}
	})

	t.Run("retries transient send failures", func(t *testing.T) {
		uc, mm := newTestUsecase(t)
		mm.failNext = 2

		err := uc.ConsumeAccountRegistered(ctx, ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "jane@example.com",
			FullName:  "Jane Doe",
		})
		if err != nil {
			t.Fatalf("ConsumeAccountRegistered() error = %v", err)
		}
		if len(mm.sent) != 1 {
			t.Errorf("sent %d emails, want 1", len(mm.sent))
		}
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		uc, mm := newTestUsecase(t)
		mm.failNext = 10

		err := uc.ConsumeAccountRegistered(ctx, ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "jane@example.com",
			FullName:  "Jane Doe",
		})
		if err == nil {
			t.Error("ConsumeAccountRegistered() error = nil, want send failure")
		}
	})
}

func TestUsecase_ConsumePasswordOTPRequested(t *testing.T) {
	uc, mm := newTestUsecase(t)

	err := uc.ConsumePasswordOTPRequested(context.Background(), ConsumePasswordOTPRequestedInput{
		AccountID: 1,
		Email:     "jane@example.com",
		FullName:  "Jane Doe",
		Code:      "042317",
		ExpiresIn: "15m0s",
	})
	if err != nil {
		t.Fatalf("ConsumePasswordOTPRequested() error = %v", err)
	}

	if len(mm.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mm.sent))
	}
	body := mm.sent[0].HTMLBody
	if !strings.Contains(body, "042317") {
		t.Error("body does not contain the reset code")
	}
	if !strings.Contains(body, "15m0s") {
		t.Error("body does not state the expiry window")
	}
}
