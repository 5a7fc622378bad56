package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/repos"
	"github.com/artlore/artlore-backend/internal/requestdata"
)

func newTestArtworkService(t *testing.T) (ArtworkService, repos.ArtworkRepo, *fakeAIClient) {
	t.Helper()
	db := testDB(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	artworkRepo := repos.NewArtworkRepo(db, log)
	ai := &fakeAIClient{response: "<article><title>Test</title></article>"}
	return NewArtworkService(db, log, artworkRepo, ai, nil), artworkRepo, ai
}

func testImagePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestExplainArtworkFromImage(t *testing.T) {
	svc, _, ai := newTestArtworkService(t)

	artwork, err := svc.ExplainArtworkFromImage(context.Background(), testImagePNG(t))
	if err != nil {
		t.Fatalf("explanation failed: %v", err)
	}
	if artwork.ExplanationXML != ai.response {
		t.Errorf("unexpected explanation: %s", artwork.ExplanationXML)
	}
	if ai.explainCalls != 1 {
		t.Errorf("expected 1 model call, got %d", ai.explainCalls)
	}

	fetched, err := svc.GetArtwork(context.Background(), artwork.ID.String())
	if err != nil {
		t.Fatalf("retrieval failed: %v", err)
	}
	if fetched.ID != artwork.ID {
		t.Errorf("expected artwork %s, got %s", artwork.ID, fetched.ID)
	}
}

func TestExplainArtworkFromImageRejectsGarbage(t *testing.T) {
	svc, _, ai := newTestArtworkService(t)

	for _, data := range [][]byte{nil, {}, []byte("not an image")} {
		_, err := svc.ExplainArtworkFromImage(context.Background(), data)
		if apierr.StatusOf(err) != 400 {
			t.Errorf("expected 400 for invalid image, got %v", err)
		}
	}
	if ai.explainCalls != 0 {
		t.Errorf("invalid images must not invoke the model, got %d calls", ai.explainCalls)
	}
}

func TestExplainArtworkByName(t *testing.T) {
	svc, _, _ := newTestArtworkService(t)

	artwork, err := svc.ExplainArtworkByName(context.Background(), "  The Starry Night  ")
	if err != nil {
		t.Fatalf("explanation failed: %v", err)
	}
	if artwork.ArtworkName == nil || *artwork.ArtworkName != "The Starry Night" {
		t.Errorf("expected trimmed artwork name, got %v", artwork.ArtworkName)
	}
}

func TestExplainArtworkByNameEmpty(t *testing.T) {
	svc, _, ai := newTestArtworkService(t)

	_, err := svc.ExplainArtworkByName(context.Background(), "   ")
	if apierr.StatusOf(err) != 400 {
		t.Fatalf("expected 400 for blank name, got %v", err)
	}
	if ai.explainCalls != 0 {
		t.Errorf("validation failures must not invoke the model, got %d calls", ai.explainCalls)
	}
}

func TestExplainSavesToCreatorCollection(t *testing.T) {
	svc, _, _ := newTestArtworkService(t)
	userID := uuid.New()
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})

	artwork, err := svc.ExplainArtworkByName(ctx, "Guernica")
	if err != nil {
		t.Fatalf("explanation failed: %v", err)
	}
	if artwork.CreatorUserID == nil || *artwork.CreatorUserID != userID {
		t.Errorf("expected creator %s, got %v", userID, artwork.CreatorUserID)
	}

	saved, err := svc.GetUserSavedArtworks(ctx)
	if err != nil {
		t.Fatalf("collection retrieval failed: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != artwork.ID {
		t.Fatalf("expected collection [%s], got %+v", artwork.ID, saved)
	}
}

func TestGetUserSavedArtworksRequiresAuth(t *testing.T) {
	svc, _, _ := newTestArtworkService(t)

	_, err := svc.GetUserSavedArtworks(context.Background())
	if apierr.StatusOf(err) != 401 {
		t.Errorf("expected 401 for anonymous collection access, got %v", err)
	}
}

func TestGetArtworkNotFound(t *testing.T) {
	svc, _, _ := newTestArtworkService(t)

	_, err := svc.GetArtwork(context.Background(), uuid.NewString())
	if apierr.StatusOf(err) != 404 {
		t.Errorf("expected 404 for unknown artwork, got %v", err)
	}
	_, err = svc.GetArtwork(context.Background(), "not-a-uuid")
	if apierr.StatusOf(err) != 404 {
		t.Errorf("expected 404 for malformed id, got %v", err)
	}
}
