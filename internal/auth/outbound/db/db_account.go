package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/ramadhaner/authapi/internal/auth/entity"
	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

func (s *DB) CreateAccount(ctx context.Context, in entity.NewAccount) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO accounts (id, email, full_name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`,
		in.ID, in.Email, in.FullName, in.Password,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) GetAccountAuthInfoByEmail(ctx context.Context, email string) (out *entity.AccountAuthInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountAuthInfoByEmail")
	defer func() { s.endSpan(span, err) }()

	var acc entity.AccountAuthInfo
	err = s.conn.QueryRow(ctx, `
		SELECT id, email, full_name, password, created_at, updated_at
		FROM accounts
		WHERE email = $1`,
		email,
	).Scan(&acc.ID, &acc.Email, &acc.FullName, &acc.Password, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &acc, nil
}

// ResetAccountPassword replaces the password and consumes the pending reset
// entry in one transaction. goerror.ErrNotFound means the entry was already
// consumed by a concurrent reset and nothing was committed.
func (s *DB) ResetAccountPassword(ctx context.Context, accountID int64, email, newHash string) (err error) {
	ctx, span := s.startSpan(ctx, "ResetAccountPassword")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, `
		UPDATE accounts SET password = $1, updated_at = now()
		WHERE id = $2`,
		newHash, accountID,
	); err != nil {
		return s.mapError(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM password_resets WHERE email = $1`, email)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
