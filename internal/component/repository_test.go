package component

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/database"
	"github.com/capacitymarket/capacity-checker/internal/search"
)

// setupTestRepo creates a temp SQLite database with the components table
// and a few seed rows.
func setupTestRepo(t *testing.T) *SQLRepository {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5000,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE components (
			id TEXT PRIMARY KEY,
			component_id TEXT NOT NULL UNIQUE,
			cmu_id TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			county TEXT NOT NULL DEFAULT '',
			outward_code TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			technology TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL DEFAULT '',
			auction_name TEXT NOT NULL DEFAULT '',
			delivery_year TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			derated_capacity_mw REAL,
			additional_data TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	repo := NewSQLRepository(db)
	seed := []Component{
		{ID: "cmp-001", ComponentID: "CMP-LON-1", CMUID: "CMU-001", Location: "Battersea, London",
			County: "Greater London", OutwardCode: "SW1", Technology: "Gas", CompanyName: "Thames Power Ltd"},
		{ID: "cmp-002", ComponentID: "CMP-NOT-1", CMUID: "CMU-002", Location: "Nottingham",
			County: "Nottinghamshire", OutwardCode: "NG1", Technology: "Battery", CompanyName: "Trent Storage"},
		{ID: "cmp-003", ComponentID: "CMP-LEE-1", CMUID: "CMU-003", Location: "Leeds",
			County: "West Yorkshire", OutwardCode: "LS1", Technology: "DSR", CompanyName: "Aire Demand Co"},
	}
	for i := range seed {
		if err := repo.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("failed to seed component %s: %v", seed[i].ID, err)
		}
	}
	return repo
}

func TestCreateGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	capacity := 49.5
	c := &Component{
		ID: "cmp-100", ComponentID: "CMP-BIR-1", CMUID: "CMU-100",
		Location: "Birmingham", County: "West Midlands", OutwardCode: "B1",
		Technology: "Wind", DeratedCapacityMW: &capacity,
		AdditionalData: map[string]any{"connection": "distribution"},
	}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.Get(ctx, "cmp-100")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ComponentID != "CMP-BIR-1" || got.CMUID != "CMU-100" {
		t.Errorf("unexpected identifiers: %+v", got)
	}
	if got.DeratedCapacityMW == nil || *got.DeratedCapacityMW != 49.5 {
		t.Errorf("unexpected capacity: %v", got.DeratedCapacityMW)
	}
	if got.AdditionalData["connection"] != "distribution" {
		t.Errorf("unexpected additional data: %v", got.AdditionalData)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo := setupTestRepo(t)

	c := &Component{ID: "cmp-200", ComponentID: "CMP-LON-1", CMUID: "CMU-200"}
	err := repo.Create(context.Background(), c)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreate_Invalid(t *testing.T) {
	repo := setupTestRepo(t)

	c := &Component{ID: "cmp-201", ComponentID: "CMP-X", CMUID: "   "}
	err := repo.Create(context.Background(), c)
	if !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("expected ErrInvalidComponent, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Get(context.Background(), "cmp-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByComponentID(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetByComponentID(context.Background(), "CMP-NOT-1")
	if err != nil {
		t.Fatalf("GetByComponentID() error: %v", err)
	}
	if got.ID != "cmp-002" {
		t.Errorf("expected cmp-002, got %s", got.ID)
	}
}

func TestList(t *testing.T) {
	repo := setupTestRepo(t)

	components, err := repo.List(context.Background(), Page{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(components) != 3 {
		t.Errorf("expected 3 components, got %d", len(components))
	}
}

func TestList_Pagination(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.List(ctx, Page{Limit: 2})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 components, got %d", len(first))
	}

	second, err := repo.List(ctx, Page{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(second) != 1 {
		t.Errorf("expected 1 component on second page, got %d", len(second))
	}
}

func TestSearch(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	filter := search.BuildLocationFilter("London", nil)
	components, err := repo.Search(ctx, filter, Page{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(components) != 1 || components[0].ID != "cmp-001" {
		t.Errorf("expected cmp-001 only, got %+v", components)
	}
}

func TestSearch_OutwardCode(t *testing.T) {
	repo := setupTestRepo(t)

	filter := search.BuildLocationFilter("ng1", nil)
	components, err := repo.Search(context.Background(), filter, Page{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(components) != 1 || components[0].ID != "cmp-002" {
		t.Errorf("expected cmp-002 via outward code, got %+v", components)
	}
}

func TestSearch_NilFilterListsAll(t *testing.T) {
	repo := setupTestRepo(t)

	components, err := repo.Search(context.Background(), nil, Page{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(components) != 3 {
		t.Errorf("expected all 3 components for nil filter, got %d", len(components))
	}
}

func TestCountMatching(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	n, err := repo.CountMatching(ctx, search.BuildLocationFilter("yorkshire", nil))
	if err != nil {
		t.Fatalf("CountMatching() error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 match, got %d", n)
	}

	total, err := repo.CountMatching(ctx, nil)
	if err != nil {
		t.Fatalf("CountMatching(nil) error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 total, got %d", total)
	}
}

func TestUpdate(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	c, err := repo.Get(ctx, "cmp-001")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	c.Status = "Terminated"
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := repo.Get(ctx, "cmp-001")
	if err != nil {
		t.Fatalf("Get() after update error: %v", err)
	}
	if got.Status != "Terminated" {
		t.Errorf("expected updated status, got %q", got.Status)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	c := &Component{ID: "cmp-missing", ComponentID: "CMP-Z", CMUID: "CMU-Z"}
	if err := repo.Update(context.Background(), c); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.Delete(ctx, "cmp-003"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := repo.Get(ctx, "cmp-003"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "cmp-003"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	n, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll() error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 deleted, got %d", n)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected empty table, got %d", total)
	}
}
