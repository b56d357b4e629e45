package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/adapter/repository"
	"github.com/leondli/centriq/internal/domain/entity"
)

// Fixtures creates rows directly through the repositories
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

// NewFixtures returns fixture helpers bound to db
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

// DB returns the database the fixtures write to
func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

// Tag creates an active tag
func (f *Fixtures) Tag(name string) *entity.Tag {
	f.t.Helper()
	tag := &entity.Tag{Name: name}
	require.NoError(f.t, repository.NewTagRepository(f.db).Create(context.Background(), tag))
	return tag
}

// InactiveTag creates a deactivated tag
func (f *Fixtures) InactiveTag(name string) *entity.Tag {
	f.t.Helper()
	tag := f.Tag(name)
	inactive := false
	require.NoError(f.t, repository.NewTagRepository(f.db).Update(context.Background(), tag.ID, &entity.TagUpdate{IsActive: &inactive}))
	tag.IsActive = false
	return tag
}

// Template creates an active template task with the given tags
func (f *Fixtures) Template(name string, tagIDs ...uint) *entity.Task {
	f.t.Helper()
	task := &entity.Task{Name: name, Type: entity.TaskTypeTemplate}
	require.NoError(f.t, repository.NewTaskRepository(f.db).Create(context.Background(), task, tagIDs))
	return task
}

// AdHoc creates an active ad-hoc task that is not linked to any call
func (f *Fixtures) AdHoc(name string) *entity.Task {
	f.t.Helper()
	task := &entity.Task{Name: name, Type: entity.TaskTypeAdHoc}
	require.NoError(f.t, repository.NewTaskRepository(f.db).Create(context.Background(), task, nil))
	return task
}

// Call creates a call with the given tags
func (f *Fixtures) Call(name string, tagIDs ...uint) *entity.Call {
	f.t.Helper()
	call := &entity.Call{Name: name}
	require.NoError(f.t, repository.NewCallRepository(f.db).Create(context.Background(), call, tagIDs))
	return call
}

// Link links a task to a call with the given status
func (f *Fixtures) Link(callID, taskID uint, status entity.TaskStatus) {
	f.t.Helper()
	link := &entity.CallTaskLink{CallID: callID, TaskID: taskID, Status: status}
	require.NoError(f.t, repository.NewCallTaskRepository(f.db).Create(context.Background(), link))
}

// Backdate moves a call's creation time into the past
func (f *Fixtures) Backdate(callID uint, age time.Duration) {
	f.t.Helper()
	createdAt := time.Now().UTC().Add(-age)
	require.NoError(f.t, f.db.Model(&repository.CallModel{}).
		Where("id = ?", callID).
		Update("created_at", createdAt).Error)
}
