package repository

import (
	"context"
	"fmt"
	"time"

	"dcet-prep/internal/repository/models"
	"dcet-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

// MaterialRepository defines the interface for study-material chunk
// persistence. Ranking is intentionally simple: chunks come back in the
// order they appear in the uploaded material.
type MaterialRepository interface {
	GetTopChunks(ctx context.Context, subjectID, unitID int64, limit int) ([]models.MaterialChunk, error)
	SaveChunks(ctx context.Context, subjectID, unitID int64, contents []string) error
}

type sqlxMaterialRepository struct {
	db *sqlx.DB
}

// NewSQLXMaterialRepository creates a new instance of sqlxMaterialRepository.
func NewSQLXMaterialRepository(db *sqlx.DB) MaterialRepository {
	return &sqlxMaterialRepository{db: db}
}

func (r *sqlxMaterialRepository) GetTopChunks(ctx context.Context, subjectID, unitID int64, limit int) ([]models.MaterialChunk, error) {
	var chunks []models.MaterialChunk
	query := `SELECT * FROM material_chunks
	          WHERE subject_id = $1 AND unit_id = $2
	          ORDER BY position ASC
	          LIMIT $3`
	if err := r.db.SelectContext(ctx, &chunks, query, subjectID, unitID, limit); err != nil {
		return nil, fmt.Errorf("failed to get material chunks: %w", err)
	}
	return chunks, nil
}

// SaveChunks appends content chunks for a subject/unit after the current
// highest position.
func (r *sqlxMaterialRepository) SaveChunks(ctx context.Context, subjectID, unitID int64, contents []string) error {
	var next int
	err := r.db.GetContext(ctx, &next,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM material_chunks WHERE subject_id = $1 AND unit_id = $2`,
		subjectID, unitID)
	if err != nil {
		return fmt.Errorf("failed to determine next chunk position: %w", err)
	}

	query := `INSERT INTO material_chunks (id, subject_id, unit_id, position, content, created_at)
	          VALUES (:id, :subject_id, :unit_id, :position, :content, :created_at)`
	for i, content := range contents {
		chunk := models.MaterialChunk{
			ID:        util.NewULID(),
			SubjectID: subjectID,
			UnitID:    unitID,
			Position:  next + i,
			Content:   content,
			CreatedAt: time.Now(),
		}
		if _, err := r.db.NamedExecContext(ctx, query, chunk); err != nil {
			return fmt.Errorf("failed to save material chunk: %w", err)
		}
	}
	return nil
}
