package usecase

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"time"

	"github.com/ramadhaner/authapi/internal/pkg/config"
	"github.com/ramadhaner/authapi/internal/pkg/instrument"
	"github.com/ramadhaner/authapi/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/trace"
)

const welcomeEmailTemplate = `<html><body>
<p>Hi {{.FullName}},</p>
<p>Welcome aboard! Your account is ready to use.</p>
<p>If you did not create this account, please contact support.</p>
</body></html>`

const passwordOTPEmailTemplate = `<html><body>
<p>Hi {{.FullName}},</p>
<p>Your password reset code is:</p>
<p><strong style="font-size:1.5em;letter-spacing:0.2em">{{.Code}}</strong></p>
<p>The code expires in {{.ExpiresIn}}. It can be used once.</p>
<p>If you did not request a password reset, you can ignore this email.</p>
</body></html>`

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoMail repoMail
	cfg      config.Config
	ins      instrument.Instrumentation

	tplWelcome *template.Template
	tplOTP     *template.Template
}

type Dependency struct {
	Mail       repoMail
	Config     config.Config
	Instrument instrument.Instrumentation
}

func New(dep Dependency) (*Usecase, error) {
	tplWelcome, err := template.New("welcome").Parse(welcomeEmailTemplate)
	if err != nil {
		return nil, err
	}

	tplOTP, err := template.New("password_otp").Parse(passwordOTPEmailTemplate)
	if err != nil {
		return nil, err
	}

	return &Usecase{
		repoMail:   dep.Mail,
		cfg:        dep.Config,
		ins:        dep.Instrument,
		tplWelcome: tplWelcome,
		tplOTP:     tplOTP,
	}, nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) render(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// sendEmail delivers with bounded exponential backoff; SMTP hiccups are
// common enough that a single attempt would drop too much.
func (s *Usecase) sendEmail(ctx context.Context, to, subject, htmlBody string) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, mail.Message{
			To:       []string{to},
			Subject:  subject,
			HTMLBody: htmlBody,
		}); err != nil {
			slog.WarnContext(ctx, "email send attempt failed", "subject", subject, "error", err)
			return retry.RetryableError(err)
		}

		return nil
	})
}
