package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/types"
)

type ArtworkRepo interface {
	// SaveArtworkExplanation inserts a new artwork row. When creatorUserID is
	// present the user profile row is upserted first; the artwork row carries
	// a foreign key to it.
	SaveArtworkExplanation(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID, explanationXML string, imagePath, artworkName *string, creatorUserID *uuid.UUID) (*types.Artwork, error)
	// GetArtworkExplanation returns nil without error when the artwork does
	// not exist.
	GetArtworkExplanation(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID) (*types.Artwork, error)
	EnsureUserProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	SaveUserArtwork(ctx context.Context, tx *gorm.DB, userID, artworkID uuid.UUID) error
	// GetUserSavedArtworks returns collection metadata only; the explanation
	// body is omitted from list reads.
	GetUserSavedArtworks(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Artwork, error)
}

type artworkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArtworkRepo(db *gorm.DB, baseLog *logger.Logger) ArtworkRepo {
	repoLog := baseLog.With("repo", "ArtworkRepo")
	return &artworkRepo{db: db, log: repoLog}
}

func (ar *artworkRepo) SaveArtworkExplanation(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID, explanationXML string, imagePath, artworkName *string, creatorUserID *uuid.UUID) (*types.Artwork, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if creatorUserID != nil {
		if err := ar.EnsureUserProfile(ctx, transaction, *creatorUserID); err != nil {
			return nil, err
		}
	}

	artwork := &types.Artwork{
		ID:             artworkID,
		ExplanationXML: explanationXML,
		ImagePath:      imagePath,
		ArtworkName:    artworkName,
		CreatorUserID:  creatorUserID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := transaction.WithContext(ctx).Create(artwork).Error; err != nil {
		return nil, apierr.Persistence(err)
	}
	return artwork, nil
}

func (ar *artworkRepo) GetArtworkExplanation(ctx context.Context, tx *gorm.DB, artworkID uuid.UUID) (*types.Artwork, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Artwork
	err := transaction.WithContext(ctx).
		Where("id = ?", artworkID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return &result, nil
}

func (ar *artworkRepo) EnsureUserProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	profile := &types.UserProfile{ID: userID, CreatedAt: time.Now().UTC()}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(profile).Error
	if err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

func (ar *artworkRepo) SaveUserArtwork(ctx context.Context, tx *gorm.DB, userID, artworkID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	row := &types.UserArtwork{
		UserID:    userID,
		ArtworkID: artworkID,
		SavedAt:   time.Now().UTC(),
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
	if err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

func (ar *artworkRepo) GetUserSavedArtworks(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Artwork, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Artwork
	err := transaction.WithContext(ctx).
		Model(&types.Artwork{}).
		Select(`"artwork"."id", "artwork"."image_path", "artwork"."artwork_name", "artwork"."creator_user_id", "user_artwork"."saved_at" AS created_at`).
		Joins(`JOIN "user_artwork" ON "user_artwork"."artwork_id" = "artwork"."id"`).
		Where(`"user_artwork"."user_id" = ?`, userID).
		Order(`"user_artwork"."saved_at" DESC`).
		Find(&results).Error
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return results, nil
}
