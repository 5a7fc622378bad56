package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/repos"
	"github.com/artlore/artlore-backend/internal/types"
)

type fakeAIClient struct {
	explainCalls int
	expandCalls  int
	response     string
	err          error
}

func (f *fakeAIClient) ExplainArtwork(ctx context.Context, imageData []byte) (string, error) {
	f.explainCalls++
	return f.response, f.err
}

func (f *fakeAIClient) ExplainArtworkByName(ctx context.Context, artworkName string) (string, error) {
	f.explainCalls++
	return f.response, f.err
}

func (f *fakeAIClient) ExpandSubject(ctx context.Context, originalExplanationXML, subject string) (string, error) {
	f.expandCalls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("<article><title>%s</title></article>", subject), nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&types.UserProfile{}, &types.Artwork{}, &types.UserArtwork{}, &types.SubjectExpansion{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestExpansionService(t *testing.T) (ExpansionService, repos.ArtworkRepo, *fakeAIClient) {
	t.Helper()
	db := testDB(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	artworkRepo := repos.NewArtworkRepo(db, log)
	expansionRepo := repos.NewExpansionRepo(db, log)
	ai := &fakeAIClient{}
	return NewExpansionService(db, log, artworkRepo, expansionRepo, ai), artworkRepo, ai
}

func seedArtwork(t *testing.T, artworkRepo repos.ArtworkRepo) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if _, err := artworkRepo.SaveArtworkExplanation(context.Background(), nil, id, "<article><title>Seed</title></article>", nil, nil, nil); err != nil {
		t.Fatalf("failed to seed artwork: %v", err)
	}
	return id
}

func TestExpandSubjectCacheIdempotence(t *testing.T) {
	svc, artworkRepo, ai := newTestExpansionService(t)
	ctx := context.Background()
	artworkID := seedArtwork(t, artworkRepo)

	first, err := svc.ExpandSubject(ctx, artworkID.String(), "Impressionism", nil)
	if err != nil {
		t.Fatalf("first expansion failed: %v", err)
	}
	if ai.expandCalls != 1 {
		t.Fatalf("expected 1 model call after first expansion, got %d", ai.expandCalls)
	}

	second, err := svc.ExpandSubject(ctx, artworkID.String(), "Impressionism", nil)
	if err != nil {
		t.Fatalf("second expansion failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected cached expansion %s, got %s", first.ID, second.ID)
	}
	if ai.expandCalls != 1 {
		t.Errorf("cache hit must not invoke the model, got %d calls", ai.expandCalls)
	}
}

func TestExpandSubjectNormalizesSubjectVariants(t *testing.T) {
	svc, artworkRepo, ai := newTestExpansionService(t)
	ctx := context.Background()
	artworkID := seedArtwork(t, artworkRepo)

	first, err := svc.ExpandSubject(ctx, artworkID.String(), "Chiaroscuro", nil)
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	for _, variant := range []string{"chiaroscuro", "  CHIAROSCURO  ", "Chiaroscuro"} {
		got, err := svc.ExpandSubject(ctx, artworkID.String(), variant, nil)
		if err != nil {
			t.Fatalf("expansion for %q failed: %v", variant, err)
		}
		if got.ID != first.ID {
			t.Errorf("variant %q: expected cached expansion %s, got %s", variant, first.ID, got.ID)
		}
	}
	if ai.expandCalls != 1 {
		t.Errorf("expected exactly 1 model call across variants, got %d", ai.expandCalls)
	}
}

func TestExpandSubjectParentScopesCache(t *testing.T) {
	svc, artworkRepo, ai := newTestExpansionService(t)
	ctx := context.Background()
	artworkID := seedArtwork(t, artworkRepo)

	root, err := svc.ExpandSubject(ctx, artworkID.String(), "Symbolism", nil)
	if err != nil {
		t.Fatalf("root expansion failed: %v", err)
	}
	rootID := root.ID.String()
	child, err := svc.ExpandSubject(ctx, artworkID.String(), "Symbolism", &rootID)
	if err != nil {
		t.Fatalf("child expansion failed: %v", err)
	}
	if child.ID == root.ID {
		t.Error("expansions under different parents must be distinct cache entries")
	}
	if ai.expandCalls != 2 {
		t.Errorf("expected 2 model calls for 2 distinct triples, got %d", ai.expandCalls)
	}
}

func TestExpandSubjectMissingArtwork(t *testing.T) {
	svc, _, ai := newTestExpansionService(t)

	_, err := svc.ExpandSubject(context.Background(), uuid.NewString(), "Pointillism", nil)
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("expected 404 for missing artwork, got %v", err)
	}
	if ai.expandCalls != 0 {
		t.Errorf("missing artwork must not invoke the model, got %d calls", ai.expandCalls)
	}
}

func TestExpandSubjectEmptySubject(t *testing.T) {
	svc, artworkRepo, ai := newTestExpansionService(t)
	artworkID := seedArtwork(t, artworkRepo)

	for _, subject := range []string{"", "   ", "\t\n"} {
		_, err := svc.ExpandSubject(context.Background(), artworkID.String(), subject, nil)
		if apierr.StatusOf(err) != 400 {
			t.Errorf("subject %q: expected 400, got %v", subject, err)
		}
	}
	if ai.expandCalls != 0 {
		t.Errorf("validation failures must not invoke the model, got %d calls", ai.expandCalls)
	}
}

func TestGetExpansionNotFound(t *testing.T) {
	svc, _, _ := newTestExpansionService(t)

	_, err := svc.GetExpansion(context.Background(), uuid.NewString())
	if apierr.StatusOf(err) != 404 {
		t.Errorf("expected 404 for unknown expansion, got %v", err)
	}
	_, err = svc.GetExpansion(context.Background(), "not-a-uuid")
	if apierr.StatusOf(err) != 404 {
		t.Errorf("expected 404 for malformed id, got %v", err)
	}
}

func TestGetExpansionTree(t *testing.T) {
	svc, artworkRepo, _ := newTestExpansionService(t)
	ctx := context.Background()
	artworkID := seedArtwork(t, artworkRepo)

	a, err := svc.ExpandSubject(ctx, artworkID.String(), "Composition", nil)
	if err != nil {
		t.Fatalf("expansion A failed: %v", err)
	}
	aID := a.ID.String()
	b, err := svc.ExpandSubject(ctx, artworkID.String(), "Golden ratio", &aID)
	if err != nil {
		t.Fatalf("expansion B failed: %v", err)
	}
	bID := b.ID.String()
	if _, err := svc.ExpandSubject(ctx, artworkID.String(), "Fibonacci", &bID); err != nil {
		t.Fatalf("expansion C failed: %v", err)
	}
	if _, err := svc.ExpandSubject(ctx, artworkID.String(), "Palette", nil); err != nil {
		t.Fatalf("expansion D failed: %v", err)
	}
	if _, err := svc.ExpandSubject(ctx, artworkID.String(), "Brushwork", nil); err != nil {
		t.Fatalf("expansion E failed: %v", err)
	}

	tree, err := svc.GetExpansionTree(ctx, artworkID.String())
	if err != nil {
		t.Fatalf("tree retrieval failed: %v", err)
	}
	if len(tree) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(tree))
	}
	if tree[0].Subject != "Composition" {
		t.Errorf("expected first root Composition, got %s", tree[0].Subject)
	}
	if len(tree[0].SubExpansions) != 1 || tree[0].SubExpansions[0].Subject != "Golden ratio" {
		t.Fatalf("expected Composition -> Golden ratio, got %+v", tree[0].SubExpansions)
	}
	grand := tree[0].SubExpansions[0].SubExpansions
	if len(grand) != 1 || grand[0].Subject != "Fibonacci" {
		t.Errorf("expected Golden ratio -> Fibonacci, got %+v", grand)
	}
}

func TestBuildExpansionTreeOrdersChildren(t *testing.T) {
	root := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flat := []*types.SubjectExpansion{
		{ID: uuid.New(), Subject: "later", ParentExpansionID: &root, CreatedAt: base.Add(time.Hour)},
		{ID: root, Subject: "root", CreatedAt: base},
		{ID: uuid.New(), Subject: "earlier", ParentExpansionID: &root, CreatedAt: base.Add(time.Minute)},
	}

	tree := BuildExpansionTree(flat)
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	children := tree[0].SubExpansions
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Subject != "earlier" || children[1].Subject != "later" {
		t.Errorf("children not ordered by creation time: %s, %s", children[0].Subject, children[1].Subject)
	}
}
