package noticeboard

import (
	"net/http"
	"testing"

	noticestore "github.com/ydpps/schoolcms/internal/app/store/notices"
	"github.com/ydpps/schoolcms/internal/domain/models"
	"github.com/ydpps/schoolcms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *noticestore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := noticestore.New(db)
	return NewHandler(store, zap.NewNop()), store
}

func seedNotice(t *testing.T, store *noticestore.Store, title string) models.Notice {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	notice, err := store.Create(ctx, noticestore.CreateInput{
		Title:    title,
		Content:  "content",
		Category: models.NoticeGeneral,
		Date:     "2026-04-01",
	})
	if err != nil {
		t.Fatalf("seed notice: %v", err)
	}
	return *notice
}

func TestCreateHandler(t *testing.T) {
	h, _ := newTestHandler(t)
	admin := testutil.AdminAccount()

	t.Run("valid notice", func(t *testing.T) {
		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/", CreateInput{
			Title:    "Summer Break",
			Content:  "School closes May 15.",
			Category: "Holiday",
			Date:     "2026-05-15",
		}, admin)
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusCreated)

		var notice models.Notice
		rec.DecodeJSON(t, &notice)
		if notice.Category != models.NoticeHoliday {
			t.Errorf("Category = %q, want %q", notice.Category, models.NoticeHoliday)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/", CreateInput{
			Title:    "Bad",
			Content:  "content",
			Category: "Gossip",
			Date:     "2026-05-15",
		}, admin)
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/", CreateInput{
			Title:    "Bad",
			Content:  "content",
			Category: "General",
			Date:     "15/05/2026",
		}, admin)
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusBadRequest)
	})
}

func TestListHandler(t *testing.T) {
	h, store := newTestHandler(t)
	seedNotice(t, store, "First")
	seedNotice(t, store, "Second")

	req := testutil.NewRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()
	PublicRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var notices []models.Notice
	rec.DecodeJSON(t, &notices)
	if len(notices) != 2 {
		t.Fatalf("ListHandler() returned %d notices, want 2", len(notices))
	}
}

func TestUpdateHandler(t *testing.T) {
	h, store := newTestHandler(t)
	admin := testutil.AdminAccount()
	notice := seedNotice(t, store, "Original")

	t.Run("category change", func(t *testing.T) {
		category := "Exam"
		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPatch, "/"+notice.ID.Hex(),
			UpdateInput{Category: &category}, admin)
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusOK)

		var got models.Notice
		rec.DecodeJSON(t, &got)
		if got.Category != models.NoticeExam {
			t.Errorf("Category = %q, want %q", got.Category, models.NoticeExam)
		}
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		category := "Gossip"
		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPatch, "/"+notice.ID.Hex(),
			UpdateInput{Category: &category}, admin)
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		date := "not-a-date"
		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPatch, "/"+notice.ID.Hex(),
			UpdateInput{Date: &date}, admin)
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusBadRequest)
	})
}

func TestDeleteHandler(t *testing.T) {
	h, store := newTestHandler(t)
	admin := testutil.AdminAccount()
	notice := seedNotice(t, store, "Doomed")

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+notice.ID.Hex(), admin)
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusNoContent)
}
