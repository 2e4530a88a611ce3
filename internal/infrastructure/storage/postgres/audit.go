package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"gestistock/internal/core/appctx"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/audit"
	"gestistock/pkg/logger"
)

// CompressionAlgo specifies the compression algorithm used for a
// stored payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one stored audit record.
type AuditEntry struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            audit.Action    `db:"action"`
	Username          string          `db:"username"`
	Message           string          `db:"message"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// Compile-time check that AuditStore implements audit.Notifier.
var _ audit.Notifier = (*AuditStore)(nil)

// AuditStore persists audit records. Record is fire-and-forget:
// services call it after their transaction committed, and a storage
// failure is logged, never propagated back into the business flow.
type AuditStore struct {
	txm               *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditStore creates a new audit store.
func NewAuditStore(txm *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditStore{
		txm:               txm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record implements audit.Notifier.
func (s *AuditStore) Record(ctx context.Context, action audit.Action, entityType string, entityID id.ID, message string) {
	entry := AuditEntry{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Username:   appctx.GetUsername(ctx),
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.insert(ctx, entry); err != nil {
		logger.Error(ctx, "audit record failed",
			"entity_type", entityType,
			"entity_id", entityID.String(),
			"action", string(action),
			"error", err,
		)
	}
}

// RecordPayload stores an audit record with a JSON payload, compressed
// when it exceeds the threshold.
func (s *AuditStore) RecordPayload(ctx context.Context, action audit.Action, entityType string, entityID id.ID, message string, payload any) {
	entry := AuditEntry{
		ID:              id.New(),
		EntityType:      entityType,
		EntityID:        entityID,
		Action:          action,
		Username:        appctx.GetUsername(ctx),
		Message:         message,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error(ctx, "audit payload marshal failed", "error", err)
		return
	}

	if len(raw) > s.compressThreshold {
		entry.PayloadCompressed = s.encoder.EncodeAll(raw, nil)
		entry.CompressionAlgo = CompressionZstd
	} else {
		entry.Payload = raw
	}

	if err := s.insert(ctx, entry); err != nil {
		logger.Error(ctx, "audit record failed",
			"entity_type", entityType,
			"entity_id", entityID.String(),
			"error", err,
		)
	}
}

func (s *AuditStore) insert(ctx context.Context, entry AuditEntry) error {
	sql := `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action, username, message,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.txm.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		entry.Username, entry.Message,
		entry.Payload, entry.PayloadCompressed, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	return err
}

// EntityHistory retrieves the audit trail of one entity, newest first.
func (s *AuditStore) EntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]AuditEntry, error) {
	sql := `
		SELECT id, entity_type, entity_id, action, username, message,
		       payload, payload_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.txm.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		err := rows.Scan(
			&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.Username, &e.Message,
			&e.Payload, &e.PayloadCompressed, &e.CompressionAlgo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.PayloadCompressed) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.PayloadCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = decompressed
			e.PayloadCompressed = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
