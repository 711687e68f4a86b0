package db

import (
	"context"
	"time"

	"github.com/ramadhaner/authapi/internal/auth/entity"
)

func (s *DB) SweepExpiredPasswordResets(ctx context.Context, olderThan time.Time) (n int64, err error) {
	ctx, span := s.startSpan(ctx, "SweepExpiredPasswordResets")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM password_resets WHERE created_at < $1`, olderThan)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (s *DB) UpsertPasswordReset(ctx context.Context, in entity.PasswordReset) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertPasswordReset")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO password_resets (email, otp_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET otp_hash = EXCLUDED.otp_hash, created_at = EXCLUDED.created_at`,
		in.Email, in.OTPHash, in.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) GetPasswordReset(ctx context.Context, email string) (out *entity.PasswordReset, err error) {
	ctx, span := s.startSpan(ctx, "GetPasswordReset")
	defer func() { s.endSpan(span, err) }()

	var pr entity.PasswordReset
	err = s.conn.QueryRow(ctx, `
		SELECT email, otp_hash, created_at
		FROM password_resets
		WHERE email = $1`,
		email,
	).Scan(&pr.Email, &pr.OTPHash, &pr.CreatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &pr, nil
}

func (s *DB) DeletePasswordReset(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "DeletePasswordReset")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM password_resets WHERE email = $1`, email)

	err = s.mapError(err)
	return err
}
