package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

type recordingFanout struct {
	enqueued []domain.Notification
}

func (f *recordingFanout) Enqueue(n domain.Notification) {
	f.enqueued = append(f.enqueued, n)
}

func newNotificationFixture() (*NotificationService, *stubNotificationRepo, *recordingFanout) {
	repo := newStubNotificationRepo()
	fanout := &recordingFanout{}
	return NewNotificationService(repo, fanout, zerolog.Nop()), repo, fanout
}

func TestNotificationService_Create_DefaultsToInfo(t *testing.T) {
	svc, _, fanout := newNotificationFixture()

	created, err := svc.Create(context.Background(), "c1", "u1", ports.CreateNotificationInput{Message: "hello"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Class != domain.ClassInfo {
		t.Fatalf("expected INFO default, got %s", created.Class)
	}
	if created.CustomerID != "c1" || created.UserID != "u1" {
		t.Fatalf("notification not scoped to caller: %+v", created)
	}

	if len(fanout.enqueued) != 1 || fanout.enqueued[0].ID != created.ID {
		t.Fatalf("notification not handed to fan-out: %+v", fanout.enqueued)
	}
}

func TestNotificationService_Create_ExplicitClass(t *testing.T) {
	svc, _, _ := newNotificationFixture()

	created, err := svc.Create(context.Background(), "c1", "u1", ports.CreateNotificationInput{
		Class:   domain.ClassError,
		Message: "broken",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Class != domain.ClassError {
		t.Fatalf("expected ERROR, got %s", created.Class)
	}
}

func TestNotificationService_List_NewestFirstAndScoped(t *testing.T) {
	svc, _, _ := newNotificationFixture()

	first, _ := svc.Create(context.Background(), "c1", "u1", ports.CreateNotificationInput{Message: "first"})
	second, _ := svc.Create(context.Background(), "c1", "u1", ports.CreateNotificationInput{Message: "second"})
	_, _ = svc.Create(context.Background(), "c1", "u2", ports.CreateNotificationInput{Message: "other user"})
	_, _ = svc.Create(context.Background(), "c2", "u1", ports.CreateNotificationInput{Message: "other tenant"})

	list, err := svc.List(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
}

func TestNotificationService_Delete_Scoped(t *testing.T) {
	svc, _, _ := newNotificationFixture()
	created, _ := svc.Create(context.Background(), "c1", "u1", ports.CreateNotificationInput{Message: "bye"})

	// Another user of the same tenant cannot delete it.
	if _, err := svc.Delete(context.Background(), created.ID, "c1", "u2"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for wrong user, got %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.ID, "c1", "u1")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("unexpected deleted notification: %+v", deleted)
	}
}

func TestNotificationService_NilFanout(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "c1", "u1", ports.CreateNotificationInput{Message: "quiet"}); err != nil {
		t.Fatalf("Create with nil fanout returned error: %v", err)
	}
}
