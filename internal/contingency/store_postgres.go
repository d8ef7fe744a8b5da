package contingency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facturador/internal/dte"
)

// PostgresStore is the durable queue backend. A contingency buffer exists
// precisely because the network is unreliable, so production deployments
// should prefer it over the in-memory store.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// EnsureSchema creates the queue table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS contingency_queue (
			id                TEXT PRIMARY KEY,
			nit_emisor        TEXT NOT NULL,
			kind              TEXT NOT NULL,
			codigo_generacion TEXT NOT NULL,
			numero_control    TEXT NOT NULL,
			document          JSONB NOT NULL,
			state             TEXT NOT NULL,
			attempts          INT NOT NULL DEFAULT 0,
			last_error        TEXT NOT NULL DEFAULT '',
			sello_recibido    TEXT NOT NULL DEFAULT '',
			enqueued_at       TIMESTAMPTZ NOT NULL,
			updated_at        TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating contingency_queue table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Enqueue(ctx context.Context, doc *QueuedDocument) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contingency_queue
			(id, nit_emisor, kind, codigo_generacion, numero_control, document,
			 state, attempts, last_error, sello_recibido, enqueued_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		doc.ID, doc.NITEmisor, string(doc.Kind), doc.CodigoGeneracion, doc.NumeroControl,
		[]byte(doc.Document), string(doc.State), doc.Attempts, doc.LastError,
		doc.SelloRecibido, doc.EnqueuedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("enqueueing document %s: %w", doc.ID, err)
	}
	return nil
}

// Dequeue claims the oldest queued rows with SKIP LOCKED so concurrent
// processors never double-claim. UPDATE ... RETURNING rows come back in no
// particular order, so the outer select re-imposes enqueue order.
func (s *PostgresStore) Dequeue(ctx context.Context, limit int) ([]*QueuedDocument, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		WITH claimed AS (
			SELECT id FROM contingency_queue
			WHERE state = $3
			ORDER BY enqueued_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		), updated AS (
			UPDATE contingency_queue q SET state = $1, updated_at = $2
			FROM claimed
			WHERE q.id = claimed.id
			RETURNING q.id, q.nit_emisor, q.kind, q.codigo_generacion,
				q.numero_control, q.document, q.state, q.attempts,
				q.last_error, q.sello_recibido, q.enqueued_at, q.updated_at
		)
		SELECT * FROM updated ORDER BY enqueued_at`,
		string(StateProcessing), s.now(), string(StateQueued), limit)
	if err != nil {
		return nil, fmt.Errorf("claiming queued documents: %w", err)
	}
	defer rows.Close()

	var out []*QueuedDocument
	for rows.Next() {
		doc, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, doc *QueuedDocument) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contingency_queue
		SET state = $1, attempts = $2, last_error = $3, sello_recibido = $4, updated_at = $5
		WHERE id = $6`,
		string(doc.State), doc.Attempts, doc.LastError, doc.SelloRecibido, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("updating document %s: %w", doc.ID, err)
	}
	return s.requireRow(res, doc.ID)
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*QueuedDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, nit_emisor, kind, codigo_generacion, numero_control,
			document, state, attempts, last_error, sello_recibido,
			enqueued_at, updated_at
		FROM contingency_queue WHERE id = $1`, id)
	doc, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	return doc, err
}

func (s *PostgresStore) Cancel(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contingency_queue SET state = $1, updated_at = $2
		WHERE id = $3 AND state = $4`,
		string(StateCancelled), s.now(), id, string(StateQueued))
	if err != nil {
		return fmt.Errorf("cancelling document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return notCancelable(id, doc.State)
}

func (s *PostgresStore) Retry(ctx context.Context, id string) error {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE contingency_queue
		SET state = $1, attempts = 0, last_error = '', enqueued_at = $2, updated_at = $2
		WHERE id = $3 AND state IN ($4, $5)`,
		string(StateQueued), now, id, string(StateFailed), string(StateCancelled))
	if err != nil {
		return fmt.Errorf("retrying document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return notRetryable(id, doc.State)
}

func (s *PostgresStore) List(ctx context.Context, state State, limit int) ([]*QueuedDocument, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nit_emisor, kind, codigo_generacion, numero_control,
			document, state, attempts, last_error, sello_recibido,
			enqueued_at, updated_at
		FROM contingency_queue
		WHERE $1 = '' OR state = $1
		ORDER BY enqueued_at
		LIMIT $2`, string(state), limit)
	if err != nil {
		return nil, fmt.Errorf("listing queued documents: %w", err)
	}
	defer rows.Close()

	var out []*QueuedDocument
	for rows.Next() {
		doc, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT state, COUNT(*) FROM contingency_queue GROUP BY state`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting queued documents: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return Stats{}, err
		}
		switch State(state) {
		case StateQueued:
			st.Queued = n
		case StateProcessing:
			st.Processing = n
		case StateCompleted:
			st.Completed = n
		case StateFailed:
			st.Failed = n
		case StateCancelled:
			st.Cancelled = n
		}
	}
	return st, rows.Err()
}

func (s *PostgresStore) requireRow(res sql.Result, id string) error {
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoc(row rowScanner) (*QueuedDocument, error) {
	var doc QueuedDocument
	var kind, state string
	var document []byte
	err := row.Scan(&doc.ID, &doc.NITEmisor, &kind, &doc.CodigoGeneracion,
		&doc.NumeroControl, &document, &state, &doc.Attempts, &doc.LastError,
		&doc.SelloRecibido, &doc.EnqueuedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	doc.Kind = dte.Kind(kind)
	doc.State = State(state)
	doc.Document = document
	return &doc, nil
}
