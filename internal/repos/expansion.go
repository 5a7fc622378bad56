package repos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/cachekey"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/types"
)

type ExpansionRepo interface {
	// GetCachedSubjectExpansion looks up by (artworkID, cache key). Subject
	// variants that normalize identically hit the same entry. Returns nil
	// without error on a cache miss.
	GetCachedSubjectExpansion(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID, subject string, parentExpansionID *uuid.UUID) (*types.SubjectExpansion, error)
	// SaveSubjectExpansion inserts a new expansion and returns the re-read
	// persisted row. A duplicate cache key means a concurrent request won the
	// race; the winner's row is returned instead.
	SaveSubjectExpansion(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID, subject, expansionXML string, parentExpansionID *uuid.UUID) (*types.SubjectExpansion, error)
	GetSubjectExpansion(ctx context.Context, tx *gorm.DB, expansionID uuid.UUID) (*types.SubjectExpansion, error)
	// GetAllExpansionsWithHierarchy returns the flat expansion set for an
	// artwork ordered by creation time; tree assembly is the caller's job.
	GetAllExpansionsWithHierarchy(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID) ([]*types.SubjectExpansion, error)
}

type expansionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpansionRepo(db *gorm.DB, baseLog *logger.Logger) ExpansionRepo {
	repoLog := baseLog.With("repo", "ExpansionRepo")
	return &expansionRepo{db: db, log: repoLog}
}

func subjectHashFor(subject string, parentExpansionID *uuid.UUID) string {
	parent := ""
	if parentExpansionID != nil {
		parent = parentExpansionID.String()
	}
	return cachekey.ForSubject(subject, parent)
}

func (er *expansionRepo) GetCachedSubjectExpansion(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID, subject string, parentExpansionID *uuid.UUID) (*types.SubjectExpansion, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return er.getByCacheKey(ctx, transaction, artworkID, subjectHashFor(subject, parentExpansionID))
}

func (er *expansionRepo) getByCacheKey(ctx context.Context, transaction *gorm.DB, artworkID uuid.UUID, subjectHash string) (*types.SubjectExpansion, error) {
	var result types.SubjectExpansion
	err := transaction.WithContext(ctx).
		Where("artwork_id = ? AND subject_hash = ?", artworkID, subjectHash).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return &result, nil
}

func (er *expansionRepo) SaveSubjectExpansion(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID, subject, expansionXML string, parentExpansionID *uuid.UUID) (*types.SubjectExpansion, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if parentExpansionID != nil {
		parent, err := er.GetSubjectExpansion(ctx, transaction, *parentExpansionID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ArtworkID != artworkID {
			return nil, apierr.Validation("parent expansion %s does not belong to artwork %s", parentExpansionID, artworkID)
		}
	}

	subjectHash := subjectHashFor(subject, parentExpansionID)
	row := &types.SubjectExpansion{
		ID:                uuid.New(),
		ArtworkID:         artworkID,
		Subject:           subject,
		SubjectHash:       subjectHash,
		ExpansionXML:      expansionXML,
		ParentExpansionID: parentExpansionID,
		CreatedAt:         time.Now().UTC(),
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			er.log.Warn("Concurrent expansion insert lost the race, returning winner", "artwork_id", artworkID, "subject_hash", subjectHash)
			winner, readErr := er.getByCacheKey(ctx, transaction, artworkID, subjectHash)
			if readErr != nil {
				return nil, readErr
			}
			if winner == nil {
				return nil, apierr.Persistence(fmt.Errorf("duplicate cache key %s for artwork %s but winner row unreadable", subjectHash, artworkID))
			}
			return winner, nil
		}
		return nil, apierr.Persistence(err)
	}

	// Re-read the canonical persisted row so server-computed fields are
	// reflected accurately.
	saved, err := er.GetSubjectExpansion(ctx, transaction, row.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		// The row we just wrote is gone: the storage layer is inconsistent.
		// Fatal, never retried.
		return nil, apierr.New(http.StatusInternalServerError, "storage_inconsistency",
			fmt.Errorf("failed to retrieve saved expansion: %s", row.ID))
	}
	return saved, nil
}

func (er *expansionRepo) GetSubjectExpansion(ctx context.Context, tx *gorm.DB, expansionID uuid.UUID) (*types.SubjectExpansion, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.SubjectExpansion
	err := transaction.WithContext(ctx).
		Where("id = ?", expansionID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return &result, nil
}

func (er *expansionRepo) GetAllExpansionsWithHierarchy(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID) ([]*types.SubjectExpansion, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.SubjectExpansion
	err := transaction.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return results, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
