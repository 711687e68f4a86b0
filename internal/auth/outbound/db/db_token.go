package db

import (
	"context"

	"github.com/ramadhaner/authapi/internal/auth/entity"
)

func (s *DB) CreateBearerToken(ctx context.Context, in entity.BearerToken) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBearerToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO bearer_tokens (id, account_id, token_digest, created_at)
		VALUES ($1, $2, $3, $4)`,
		in.ID, in.AccountID, in.Digest, in.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) GetTokenAccountByDigest(ctx context.Context, digest string) (out *entity.TokenAccount, err error) {
	ctx, span := s.startSpan(ctx, "GetTokenAccountByDigest")
	defer func() { s.endSpan(span, err) }()

	var ta entity.TokenAccount
	err = s.conn.QueryRow(ctx, `
		SELECT t.id, t.token_digest, a.id, a.email, a.full_name
		FROM bearer_tokens t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.token_digest = $1`,
		digest,
	).Scan(&ta.TokenID, &ta.TokenDigest, &ta.AccountID, &ta.Email, &ta.FullName)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &ta, nil
}

func (s *DB) DeleteBearerToken(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteBearerToken")
	defer func() { s.endSpan(span, err) }()

	// Deleting an absent row is not an error; revocation is idempotent.
	_, err = s.conn.Exec(ctx, `DELETE FROM bearer_tokens WHERE id = $1`, id)

	err = s.mapError(err)
	return err
}

func (s *DB) ListTokenDigestsByAccount(ctx context.Context, accountID int64) (out []string, err error) {
	ctx, span := s.startSpan(ctx, "ListTokenDigestsByAccount")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT token_digest FROM bearer_tokens WHERE account_id = $1`, accountID)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	var digests []string
	for rows.Next() {
		var d string
		if err = rows.Scan(&d); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		digests = append(digests, d)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return digests, nil
}

func (s *DB) DeleteAllBearerTokens(ctx context.Context, accountID int64) (n int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteAllBearerTokens")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM bearer_tokens WHERE account_id = $1`, accountID)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
