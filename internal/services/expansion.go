package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/repos"
	"github.com/artlore/artlore-backend/internal/types"
)

// ExpansionNode is one node of the reconstructed expansion tree served to
// clients.
type ExpansionNode struct {
	ID            uuid.UUID        `json:"id"`
	Subject       string           `json:"subject"`
	CreatedAt     time.Time        `json:"created_at"`
	SubExpansions []*ExpansionNode `json:"sub_expansions"`
}

// ExpansionService decides cache-hit versus cache-miss for subject expansions
// and coordinates the interpretation collaborator on a miss.
type ExpansionService interface {
	// ExpandSubject returns the cached expansion for the (artwork, subject,
	// parent) triple when one exists; otherwise it invokes the model against
	// the artwork's original explanation and persists the result. Identical
	// triples never trigger a second model call once a cache entry exists.
	ExpandSubject(ctx context.Context, artworkID, subject string, parentExpansionID *string) (*types.SubjectExpansion, error)
	GetExpansion(ctx context.Context, expansionID string) (*types.SubjectExpansion, error)
	GetExpansionTree(ctx context.Context, artworkID string) ([]*ExpansionNode, error)
}

type expansionService struct {
	db            *gorm.DB
	log           *logger.Logger
	artworkRepo   repos.ArtworkRepo
	expansionRepo repos.ExpansionRepo
	aiClient      AIClient
}

func NewExpansionService(db *gorm.DB, log *logger.Logger, artworkRepo repos.ArtworkRepo, expansionRepo repos.ExpansionRepo, aiClient AIClient) ExpansionService {
	return &expansionService{
		db:            db,
		log:           log.With("service", "ExpansionService"),
		artworkRepo:   artworkRepo,
		expansionRepo: expansionRepo,
		aiClient:      aiClient,
	}
}

func (es *expansionService) ExpandSubject(ctx context.Context, artworkID, subject string, parentExpansionID *string) (*types.SubjectExpansion, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, apierr.Validation("subject cannot be empty")
	}
	if strings.TrimSpace(artworkID) == "" {
		return nil, apierr.Validation("artwork id cannot be empty")
	}
	artworkUUID, err := uuid.Parse(strings.TrimSpace(artworkID))
	if err != nil {
		return nil, apierr.NotFound("artwork not found: %s", artworkID)
	}
	var parentUUID *uuid.UUID
	if parentExpansionID != nil && strings.TrimSpace(*parentExpansionID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*parentExpansionID))
		if err != nil {
			return nil, apierr.Validation("invalid parent expansion id: %s", *parentExpansionID)
		}
		parentUUID = &parsed
	}

	cached, err := es.expansionRepo.GetCachedSubjectExpansion(ctx, nil, artworkUUID, subject, parentUUID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		es.log.Info("Expansion cache hit", "artwork_id", artworkUUID, "subject", subject)
		return cached, nil
	}

	artwork, err := es.artworkRepo.GetArtworkExplanation(ctx, nil, artworkUUID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, apierr.NotFound("artwork not found: %s", artworkID)
	}

	expansionXML, err := es.aiClient.ExpandSubject(ctx, artwork.ExplanationXML, subject)
	if err != nil {
		return nil, err
	}

	saved, err := es.expansionRepo.SaveSubjectExpansion(ctx, nil, artworkUUID, subject, expansionXML, parentUUID)
	if err != nil {
		return nil, err
	}
	es.log.Info("Saved subject expansion", "artwork_id", artworkUUID, "subject", subject, "expansion_id", saved.ID)
	return saved, nil
}

func (es *expansionService) GetExpansion(ctx context.Context, expansionID string) (*types.SubjectExpansion, error) {
	id, err := uuid.Parse(strings.TrimSpace(expansionID))
	if err != nil {
		return nil, apierr.NotFound("expansion not found: %s", expansionID)
	}
	expansion, err := es.expansionRepo.GetSubjectExpansion(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if expansion == nil {
		return nil, apierr.NotFound("expansion not found: %s", expansionID)
	}
	return expansion, nil
}

func (es *expansionService) GetExpansionTree(ctx context.Context, artworkID string) ([]*ExpansionNode, error) {
	id, err := uuid.Parse(strings.TrimSpace(artworkID))
	if err != nil {
		return nil, apierr.NotFound("artwork not found: %s", artworkID)
	}
	flat, err := es.expansionRepo.GetAllExpansionsWithHierarchy(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return BuildExpansionTree(flat), nil
}

// BuildExpansionTree reconstructs the expansion forest from the flat record
// set: each node's children are the expansions whose parent id equals that
// node's id, roots have no parent. Children are ordered by creation time so
// the output is deterministic for a fixed input set.
func BuildExpansionTree(flat []*types.SubjectExpansion) []*ExpansionNode {
	byParent := make(map[uuid.UUID][]*types.SubjectExpansion)
	var roots []*types.SubjectExpansion
	for _, e := range flat {
		if e.ParentExpansionID == nil {
			roots = append(roots, e)
			continue
		}
		byParent[*e.ParentExpansionID] = append(byParent[*e.ParentExpansionID], e)
	}

	var attach func(records []*types.SubjectExpansion) []*ExpansionNode
	attach = func(records []*types.SubjectExpansion) []*ExpansionNode {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		})
		nodes := make([]*ExpansionNode, 0, len(records))
		for _, r := range records {
			nodes = append(nodes, &ExpansionNode{
				ID:            r.ID,
				Subject:       r.Subject,
				CreatedAt:     r.CreatedAt,
				SubExpansions: attach(byParent[r.ID]),
			})
		}
		return nodes
	}
	return attach(roots)
}
