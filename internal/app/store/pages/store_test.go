package pages_test

import (
	"testing"

	"github.com/ydpps/schoolcms/internal/app/store/pages"
	"github.com/ydpps/schoolcms/internal/domain/models"
	"github.com/ydpps/schoolcms/internal/testutil"
)

func TestStore_GetAbout_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pages.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	page, err := store.GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout() error = %v", err)
	}

	defaults := models.DefaultAboutPage()
	if page.HeroTitle != defaults.HeroTitle {
		t.Errorf("HeroTitle = %q, want default %q", page.HeroTitle, defaults.HeroTitle)
	}
	if page.UpdatedAt != nil {
		t.Error("UpdatedAt should be nil until a save happens")
	}
}

func TestStore_SaveAbout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pages.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	page := models.DefaultAboutPage()
	page.HeroTitle = "About Our School"
	page.HistoryContent = "<p>Founded in 1995.</p>"

	if err := store.SaveAbout(ctx, page); err != nil {
		t.Fatalf("SaveAbout() error = %v", err)
	}

	got, err := store.GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout() error = %v", err)
	}
	if got.HeroTitle != "About Our School" {
		t.Errorf("HeroTitle = %q, want %q", got.HeroTitle, "About Our School")
	}
	if got.HistoryContent != "<p>Founded in 1995.</p>" {
		t.Errorf("HistoryContent = %q, want saved content", got.HistoryContent)
	}
	if got.UpdatedAt == nil {
		t.Error("SaveAbout() did not stamp UpdatedAt")
	}
}

func TestStore_SaveAbout_ReplacesPrevious(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pages.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := models.DefaultAboutPage()
	first.VisionTitle = "Our Vision"
	if err := store.SaveAbout(ctx, first); err != nil {
		t.Fatalf("SaveAbout() error = %v", err)
	}

	second := models.DefaultAboutPage()
	second.VisionTitle = "A New Vision"
	if err := store.SaveAbout(ctx, second); err != nil {
		t.Fatalf("SaveAbout() error = %v", err)
	}

	got, err := store.GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout() error = %v", err)
	}
	if got.VisionTitle != "A New Vision" {
		t.Errorf("VisionTitle = %q, want %q", got.VisionTitle, "A New Vision")
	}

	exists, err := store.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after saves")
	}
}
