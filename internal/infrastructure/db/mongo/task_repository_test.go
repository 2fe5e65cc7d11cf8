package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskmate/taskmate-api/internal/core/domain"
	"github.com/taskmate/taskmate-api/internal/core/ports"
)

func TestTaskQuery_Empty(t *testing.T) {
	if q := taskQuery(ports.TaskFilter{}); len(q) != 0 {
		t.Fatalf("empty filter must match everything, got %v", q)
	}
}

func TestTaskQuery_AllFields(t *testing.T) {
	q := taskQuery(ports.TaskFilter{
		OwnerID:  7,
		Status:   domain.StatusDone,
		Priority: domain.PriorityHigh,
		Search:   "a.b*",
	})

	if q["user_id"] != int64(7) {
		t.Errorf("user_id: got %v", q["user_id"])
	}
	if q["status"] != "Done" || q["priority"] != "High" {
		t.Errorf("enum filters: got %v / %v", q["status"], q["priority"])
	}

	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or over title and description, got %v", q["$or"])
	}
	title := or[0].(bson.M)["title"].(primitive.Regex)
	if title.Pattern != `a\.b\*` {
		t.Errorf("search text must be escaped, got %q", title.Pattern)
	}
	if title.Options != "" {
		t.Errorf("search must be case-sensitive, got options %q", title.Options)
	}
}

// testDatabase connects to MONGO_TEST_URI and returns a throwaway database.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{
		URI:      uri,
		Database: fmt.Sprintf("taskmate_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	return db
}

func TestTaskRepository_Integration(t *testing.T) {
	db := testDatabase(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newTask := func(title string, owner int64, updated time.Time) *domain.Task {
		task := &domain.Task{
			Title:     title,
			Status:    domain.StatusToDo,
			Priority:  domain.PriorityMedium,
			CreatedAt: base,
			UpdatedAt: updated,
			UserID:    owner,
		}
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		return task
	}

	a := newTask("Build Dashboard", 1, base)
	b := newTask("tie", 1, base)
	c := newTask("newest", 1, base.Add(time.Minute))
	other := newTask("other", 2, base)

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids must be sequential from 1, got %d, %d", a.ID, b.ID)
	}

	got, err := repo.List(ctx, ports.TaskFilter{OwnerID: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{c.ID, a.ID, b.ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order: want %v, got task %d at %d", want, got[i].ID, i)
		}
	}

	all, _ := repo.List(ctx, ports.TaskFilter{})
	if len(all) != 4 {
		t.Fatalf("unscoped list: want 4, got %d", len(all))
	}

	found, _ := repo.List(ctx, ports.TaskFilter{Search: "Dash"})
	if len(found) != 1 || found[0].ID != a.ID {
		t.Fatalf("search: unexpected result %v", found)
	}

	limited, _ := repo.List(ctx, ports.TaskFilter{Limit: 2})
	if len(limited) != 2 {
		t.Fatalf("limit: want 2, got %d", len(limited))
	}

	a.Status = domain.StatusDone
	a.UpdatedAt = base.Add(time.Hour)
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if reloaded.Status != domain.StatusDone || !reloaded.UpdatedAt.Equal(a.UpdatedAt) || reloaded.UserID != 1 {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	if err := repo.Delete(ctx, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, other.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, other.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on second delete, got %v", err)
	}
	if err := repo.Update(ctx, other); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound updating a deleted task, got %v", err)
	}
}

func TestUserRepository_Integration(t *testing.T) {
	db := testDatabase(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expected empty store, got %d, %v", n, err)
	}

	created, err := repo.Create(ctx, &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	if _, err := repo.Create(ctx, &domain.User{Username: "alice", Email: "x@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for username, got %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "al", Email: "alice@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for email, got %v", err)
	}

	byName, err := repo.FindByUsername(ctx, "alice")
	if err != nil || byName.ID != created.ID || byName.PasswordHash != "hash" {
		t.Fatalf("find by username: %+v, %v", byName, err)
	}
	if _, err := repo.FindByID(ctx, 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
