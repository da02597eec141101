package settingscache

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/store/sitesettings"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

type fakeStore struct {
	stored  *models.SiteSettings
	getErr  error
	changes chan struct{}
	updates []sitesettings.Partial
}

func newFakeStore() *fakeStore {
	return &fakeStore{changes: make(chan struct{}, 1)}
}

func (f *fakeStore) Get(_ context.Context) (*models.SiteSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, mongo.ErrNoDocuments
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeStore) Update(_ context.Context, patch sitesettings.Partial) error {
	f.updates = append(f.updates, patch)
	if f.stored == nil {
		f.stored = &models.SiteSettings{}
	}
	if patch.SchoolName != nil {
		f.stored.SchoolName = *patch.SchoolName
	}
	if patch.Phone != nil {
		f.stored.Phone = *patch.Phone
	}
	return nil
}

func (f *fakeStore) Watch(_ context.Context) (<-chan struct{}, error) {
	return f.changes, nil
}

func testDefaults() models.SiteSettings {
	return models.SiteSettings{
		SchoolName: "Default School",
		ShortName:  "DS",
		Logo:       "/images/logo.jpg",
		Email:      "office@example.com",
		Phone:      "+91 00000 00000",
		Address:    "Default Address",
	}
}

func TestCurrent_DefaultsBeforeFirstLoad(t *testing.T) {
	cache := New(newFakeStore(), testDefaults(), zap.NewNop())
	if got := cache.Current(); got != testDefaults() {
		t.Errorf("Current() = %+v, want defaults", got)
	}
}

func TestRefresh_MissingDocumentKeepsDefaults(t *testing.T) {
	cache := New(newFakeStore(), testDefaults(), zap.NewNop())
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := cache.Current(); got != testDefaults() {
		t.Errorf("Current() = %+v, want defaults", got)
	}
}

func TestRefresh_StoredFieldsWinDefaultsFillGaps(t *testing.T) {
	store := newFakeStore()
	store.stored = &models.SiteSettings{
		SchoolName: "Renamed School",
		Socials:    models.Socials{Facebook: "https://facebook.com/renamed"},
	}
	cache := New(store, testDefaults(), zap.NewNop())

	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := cache.Current()
	if got.SchoolName != "Renamed School" {
		t.Errorf("SchoolName = %q, want stored value", got.SchoolName)
	}
	if got.Socials.Facebook != "https://facebook.com/renamed" {
		t.Errorf("Facebook = %q, want stored value", got.Socials.Facebook)
	}
	if got.Phone != testDefaults().Phone {
		t.Errorf("Phone = %q, want default", got.Phone)
	}
	if got.Email != testDefaults().Email {
		t.Errorf("Email = %q, want default", got.Email)
	}
}

func TestRefresh_ErrorKeepsCachedValue(t *testing.T) {
	store := newFakeStore()
	store.stored = &models.SiteSettings{SchoolName: "Renamed School"}
	cache := New(store, testDefaults(), zap.NewNop())
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	store.getErr = context.DeadlineExceeded
	if err := cache.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh: want error")
	}
	if got := cache.Current().SchoolName; got != "Renamed School" {
		t.Errorf("SchoolName = %q, want previous value retained", got)
	}
}

func TestRun_ReloadsOnChangeSignal(t *testing.T) {
	store := newFakeStore()
	cache := New(store, testDefaults(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- cache.Run(ctx) }()

	sub, unsub := cache.Subscribe()
	defer unsub()

	store.stored = &models.SiteSettings{SchoolName: "Renamed School"}
	store.changes <- struct{}{}

	select {
	case got := <-sub:
		if got.SchoolName != "Renamed School" {
			t.Errorf("SchoolName = %q, want stored value", got.SchoolName)
		}
		if got.Phone != testDefaults().Phone {
			t.Errorf("Phone = %q, want default", got.Phone)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for settings update")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_ReturnsNilWhenStreamEnds(t *testing.T) {
	store := newFakeStore()
	cache := New(store, testDefaults(), zap.NewNop())

	close(store.changes)
	if err := cache.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestUpdate_WritesThroughAndRefreshes(t *testing.T) {
	store := newFakeStore()
	cache := New(store, testDefaults(), zap.NewNop())

	name := "Renamed School"
	if err := cache.Update(context.Background(), sitesettings.Partial{SchoolName: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(store.updates) != 1 {
		t.Fatalf("store received %d updates, want 1", len(store.updates))
	}
	if got := cache.Current().SchoolName; got != "Renamed School" {
		t.Errorf("SchoolName = %q, want write visible immediately", got)
	}
}

func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	store := newFakeStore()
	cache := New(store, testDefaults(), zap.NewNop())

	if err := cache.Update(context.Background(), sitesettings.Partial{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(store.updates) != 0 {
		t.Errorf("store received %d updates, want 0", len(store.updates))
	}
}

func TestUpdate_AfterClose(t *testing.T) {
	cache := New(newFakeStore(), testDefaults(), zap.NewNop())
	cache.Close()

	name := "Renamed School"
	if err := cache.Update(context.Background(), sitesettings.Partial{SchoolName: &name}); err != ErrClosed {
		t.Fatalf("Update after Close: err = %v, want ErrClosed", err)
	}
}

func TestSubscribe_CancelIsIdempotent(t *testing.T) {
	cache := New(newFakeStore(), testDefaults(), zap.NewNop())
	_, cancel := cache.Subscribe()
	cancel()
	cancel()
	cache.Close()
}
