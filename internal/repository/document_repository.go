package repository

import (
	"context"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type DocumentRepository struct {
	*config.Database
}

func NewDocumentRepository(database *config.Database) *DocumentRepository {
	return &DocumentRepository{database}
}

// Create : сохраняем метаданные документа (бинарник уже в объектном хранилище)
func (r *DocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error {
	query := `
		INSERT INTO documents (uuid, session_uuid, title, doc_type, storage_path, public_url, mime_type, size_bytes, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := exec.ExecContext(
		ctx,
		query,
		document.UUID,
		document.SessionUUID,
		document.Title,
		document.DocType,
		document.StoragePath,
		document.PublicURL,
		document.MimeType,
		document.SizeBytes,
		document.DisplayOrder)

	return err
}

// FindByUUID : ищет документ по UUID
func (r *DocumentRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	query := `
		SELECT uuid, session_uuid, title, doc_type, storage_path, public_url, mime_type, size_bytes, display_order, created_at
		FROM documents WHERE uuid = $1
	`
	var document model.Document
	err := sqlx.GetContext(ctx, exec, &document, query, documentUUID)
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// BelongsToSession : проверяет, что документ принадлежит сессии
func (r *DocumentRepository) BelongsToSession(ctx context.Context, exec sqlx.ExtContext, documentUUID, sessionUUID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM documents WHERE uuid = $1 AND session_uuid = $2)`
	err := sqlx.GetContext(ctx, exec, &exists, query, documentUUID, sessionUUID)
	if err != nil {
		return false, util.LogError("[DocumentRepo] ошибка проверки принадлежности документа", err)
	}
	return exists, nil
}

// ListBySession : документы сессии в порядке, заданном докладчиком
func (r *DocumentRepository) ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.Document, error) {
	query := `
		SELECT uuid, session_uuid, title, doc_type, storage_path, public_url, mime_type, size_bytes, display_order, created_at
		FROM documents
		WHERE session_uuid = $1
		ORDER BY display_order ASC, created_at ASC
	`
	docs := []model.Document{}
	err := sqlx.SelectContext(ctx, exec, &docs, query, sessionUUID)
	if err != nil {
		return nil, util.LogError("[DocumentRepo] не удалось получить список документов", err)
	}
	return docs, nil
}

// Delete : удаляет строку документа, возвращает storage_path для очистки S3
func (r *DocumentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (string, error) {
	query := `DELETE FROM documents WHERE uuid = $1 RETURNING storage_path`

	var storagePath string
	err := sqlx.GetContext(ctx, exec, &storagePath, query, documentUUID)
	if err != nil {
		return "", err
	}

	return storagePath, nil
}

// UpdateOrder : выставляет display_order одного документа
func (r *DocumentRepository) UpdateOrder(ctx context.Context, exec sqlx.ExtContext, documentUUID string, order int) error {
	query := `UPDATE documents SET display_order = $2 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, documentUUID, order)
	if err != nil {
		return util.LogError("[DocumentRepo] не удалось обновить порядок документа", err)
	}
	return nil
}

func (r *DocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
