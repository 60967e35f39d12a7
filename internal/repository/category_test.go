package repository

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/plannerd/internal/model"
)

func TestAddCategoryRejectsDuplicates(t *testing.T) {
	repo, saver := newTestRepo(t)

	if err := repo.AddCategory("Health", "#FF6B6B"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if err := repo.AddCategory("Health", "#000000"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := repo.AddCategory("Work", "#123456"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for default name, got %v", err)
	}

	names := categoryNames(repo)
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate category %q after failed adds: %v", n, names)
		}
		seen[n] = true
	}
	if saver.saves != 1 {
		t.Fatalf("expected exactly one save, got %d", saver.saves)
	}
}

func TestAddCategoryValidatesName(t *testing.T) {
	repo, saver := newTestRepo(t)
	var verr *model.ValidationError
	if err := repo.AddCategory("  ", "#FFFFFF"); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if saver.saves != 0 {
		t.Fatalf("failed validation must not persist")
	}
}

func TestUpdateCategoryRenameCascades(t *testing.T) {
	repo, _ := newTestRepo(t)

	sched := addSchedule(t, repo, model.ScheduleDraft{
		Title: "Standup", StartTime: "2026-02-03 09:00", Category: "Work",
	})
	other := addSchedule(t, repo, model.ScheduleDraft{
		Title: "Groceries", StartTime: "2026-02-03 18:00", Category: "Life",
	})
	plan := addPlan(t, repo, model.PlanDraft{Name: "Ship v1", Category: "Work"})

	if err := repo.UpdateCategory("Work", "Office", "#112233"); err != nil {
		t.Fatalf("rename category: %v", err)
	}

	for _, s := range repo.Schedules() {
		if s.Category == "Work" {
			t.Fatalf("schedule %q still references old name", s.Title)
		}
		if s.ID == sched.ID && s.Category != "Office" {
			t.Fatalf("schedule not retargeted: %q", s.Category)
		}
		if s.ID == other.ID && s.Category != "Life" {
			t.Fatalf("unrelated schedule touched: %q", s.Category)
		}
	}
	got, err := repo.Plan(plan.ID)
	if err != nil {
		t.Fatalf("fetch plan: %v", err)
	}
	if got.Category != "Office" {
		t.Fatalf("plan not retargeted: %q", got.Category)
	}
	if repo.CategoryColor("Office") != "#112233" {
		t.Fatalf("color not updated")
	}
}

func TestUpdateCategoryRejectsRenameOntoExisting(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.UpdateCategory("Work", "Life", "#000000"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateCategoryRecolorOnly(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.UpdateCategory("Work", "Work", "#101010"); err != nil {
		t.Fatalf("recolor: %v", err)
	}
	if repo.CategoryColor("Work") != "#101010" {
		t.Fatalf("color not applied")
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.UpdateCategory("Nope", "Whatever", "#FFFFFF"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCategoryCascadesToFallback(t *testing.T) {
	repo, _ := newTestRepo(t)

	addSchedule(t, repo, model.ScheduleDraft{
		Title: "Standup", StartTime: "2026-02-03 09:00", Category: "Work",
	})
	plan := addPlan(t, repo, model.PlanDraft{Name: "Ship v1", Category: "Work"})

	// Deleting a default category is allowed; the guard lives with callers.
	if err := repo.DeleteCategory("Work"); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	for _, n := range categoryNames(repo) {
		if n == "Work" {
			t.Fatalf("category still present after delete")
		}
	}
	for _, s := range repo.Schedules() {
		if s.Category == "Work" {
			t.Fatalf("schedule still references deleted category")
		}
		if s.Category != model.FallbackCategory {
			t.Fatalf("schedule not moved to fallback: %q", s.Category)
		}
	}
	got, err := repo.Plan(plan.ID)
	if err != nil {
		t.Fatalf("fetch plan: %v", err)
	}
	if got.Category != model.FallbackCategory {
		t.Fatalf("plan not moved to fallback: %q", got.Category)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	repo, saver := newTestRepo(t)
	if err := repo.DeleteCategory("Nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if saver.saves != 0 {
		t.Fatalf("failed delete must not persist")
	}
}

func TestCategoryColorFallback(t *testing.T) {
	repo, _ := newTestRepo(t)
	if got := repo.CategoryColor("Unknown"); got != model.FallbackColor {
		t.Fatalf("fallback color = %q", got)
	}
	if got := repo.CategoryColor("Work"); got != "#4A90D9" {
		t.Fatalf("work color = %q", got)
	}
}
