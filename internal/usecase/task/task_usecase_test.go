package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/centriq/internal/adapter/repository"
	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/testutil"
	"github.com/leondli/centriq/internal/usecase/task"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

func newUseCase(t *testing.T) (task.UseCase, *testutil.Fixtures) {
	t.Helper()
	db := testutil.NewDB(t)
	uc := task.NewUseCase(
		repository.NewTaskRepository(db),
		repository.NewTagRepository(db),
		repository.NewCallRepository(db),
		repository.NewCallTaskRepository(db),
		repository.NewTransactor(db),
	)
	return uc, testutil.NewFixtures(t, db)
}

func TestCreateAdHocAppearsOnCall(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")

	created, err := uc.CreateAdHoc(ctx, &task.CreateAdHocInput{Name: "send deck", CallID: call.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskTypeAdHoc, created.Type)
	assert.Equal(t, entity.TaskStatusOpen, created.Status)
	assert.Equal(t, call.ID, created.CallID)

	explicit, err := uc.CreateAdHoc(ctx, &task.CreateAdHocInput{
		Name:   "book follow-up",
		CallID: call.ID,
		Status: entity.TaskStatusInProgress,
	})
	require.NoError(t, err)

	listed, err := uc.ListForCall(ctx, call.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, entity.TaskStatusOpen, listed[0].Status)
	assert.Equal(t, explicit.ID, listed[1].ID)
	assert.Equal(t, entity.TaskStatusInProgress, listed[1].Status)
}

func TestCreateAdHocUnknownCall(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.CreateAdHoc(ctx, &task.CreateAdHocInput{Name: "orphan", CallID: 404})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeactivateRemovesTaskFromCalls(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	first := fx.Call("first")
	second := fx.Call("second")
	template := fx.Template("qualify lead")
	fx.Link(first.ID, template.ID, entity.TaskStatusOpen)
	fx.Link(second.ID, template.ID, entity.TaskStatusCompleted)

	require.NoError(t, uc.Deactivate(ctx, template.ID))

	for _, id := range []uint{first.ID, second.ID} {
		listed, err := uc.ListForCall(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, listed)
	}

	active, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)

	err = uc.Deactivate(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLinkUnlinkRelink(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")
	template := fx.Template("qualify lead")

	linked, err := uc.LinkTemplateToCall(ctx, template.ID, call.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusOpen, linked.Status)
	assert.Equal(t, call.ID, linked.CallID)

	_, err = uc.LinkTemplateToCall(ctx, template.ID, call.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyExists(err))

	require.NoError(t, uc.UnlinkFromCall(ctx, template.ID, call.ID))
	listed, err := uc.ListForCall(ctx, call.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// unlinking an absent pair is a no-op
	require.NoError(t, uc.UnlinkFromCall(ctx, template.ID, call.ID))

	_, err = uc.LinkTemplateToCall(ctx, template.ID, call.ID)
	require.NoError(t, err)
	listed, err = uc.ListForCall(ctx, call.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestLinkTemplateToCallErrors(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")
	adHoc := fx.AdHoc("one-off")
	inactive := fx.Template("retired")
	require.NoError(t, uc.Deactivate(ctx, inactive.ID))
	template := fx.Template("active")

	tests := []struct {
		name    string
		taskID  uint
		callID  uint
		wantErr func(error) bool
	}{
		{name: "missing task", taskID: 999, callID: call.ID, wantErr: apperrors.IsNotFound},
		{name: "inactive task", taskID: inactive.ID, callID: call.ID, wantErr: apperrors.IsNotFound},
		{name: "ad-hoc task", taskID: adHoc.ID, callID: call.ID, wantErr: apperrors.IsInvalidTaskType},
		{name: "missing call", taskID: template.ID, callID: 999, wantErr: apperrors.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.LinkTemplateToCall(ctx, tt.taskID, tt.callID)
			require.Error(t, err)
			assert.True(t, tt.wantErr(err))
		})
	}
}

func TestUnlinkRejectsAdHoc(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")
	adHoc := fx.AdHoc("one-off")

	err := uc.UnlinkFromCall(ctx, adHoc.ID, call.ID)
	assert.True(t, apperrors.IsInvalidTaskType(err))
}

func TestUnlinkDeactivatedTemplateNotFound(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")
	template := fx.Template("qualify lead")
	require.NoError(t, uc.Deactivate(ctx, template.ID))

	err := uc.UnlinkFromCall(ctx, template.ID, call.ID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = uc.LinkTemplateToCall(ctx, template.ID, call.ID)
	assert.True(t, apperrors.IsNotFound(err))

	err = uc.UnlinkFromCall(ctx, 999, call.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateWithStatus(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")
	other := fx.Call("other")
	template := fx.Template("qualify lead")
	fx.Link(call.ID, template.ID, entity.TaskStatusOpen)

	name := "qualify lead twice"
	updated, err := uc.UpdateWithStatus(ctx, template.ID, &task.UpdateStatusInput{
		Name:   &name,
		CallID: call.ID,
		Status: entity.TaskStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, entity.TaskStatusCompleted, updated.Status)

	listed, err := uc.ListForCall(ctx, call.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, entity.TaskStatusCompleted, listed[0].Status)

	_, err = uc.UpdateWithStatus(ctx, template.ID, &task.UpdateStatusInput{CallID: other.ID, Status: entity.TaskStatusOpen})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = uc.UpdateWithStatus(ctx, 999, &task.UpdateStatusInput{CallID: call.ID, Status: entity.TaskStatusOpen})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateWithStatusUnlinkedKeepsName(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	call := fx.Call("intro")
	template := fx.Template("qualify lead")

	name := "renamed"
	_, err := uc.UpdateWithStatus(ctx, template.ID, &task.UpdateStatusInput{
		Name:   &name,
		CallID: call.ID,
		Status: entity.TaskStatusCompleted,
	})
	require.Error(t, err)

	got, err := uc.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "qualify lead", got.Name)
}

func TestCreateTemplateKeepsActiveTagsOnly(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	billing := fx.Tag("billing")
	retired := fx.InactiveTag("retired")

	created, err := uc.CreateTemplate(ctx, &task.CreateTemplateInput{
		Name:   "offer refund",
		TagIDs: []uint{billing.ID, retired.ID, 404},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskTypeTemplate, created.Type)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, billing.ID, created.Tags[0].ID)
}

func TestUpdateTemplate(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	billing := fx.Tag("billing")
	support := fx.Tag("support")
	template := fx.Template("offer refund", billing.ID)

	// absent tag_ids leaves the tags alone
	name := "offer partial refund"
	got, err := uc.UpdateTemplate(ctx, template.ID, &task.UpdateTemplateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, billing.ID, got.Tags[0].ID)

	replacement := []uint{support.ID}
	got, err = uc.UpdateTemplate(ctx, template.ID, &task.UpdateTemplateInput{TagIDs: &replacement})
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, support.ID, got.Tags[0].ID)

	empty := []uint{}
	got, err = uc.UpdateTemplate(ctx, template.ID, &task.UpdateTemplateInput{TagIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	adHoc := fx.AdHoc("one-off")
	_, err = uc.UpdateTemplate(ctx, adHoc.ID, &task.UpdateTemplateInput{Name: &name})
	assert.True(t, apperrors.IsInvalidTaskType(err))

	_, err = uc.UpdateTemplate(ctx, 999, &task.UpdateTemplateInput{Name: &name})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListTemplates(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	billing := fx.Tag("billing")
	retired := fx.Tag("retired")
	template := fx.Template("offer refund", billing.ID, retired.ID)
	fx.AdHoc("one-off")
	hidden := fx.Template("hidden")
	require.NoError(t, uc.Deactivate(ctx, hidden.ID))

	inactive := false
	require.NoError(t, repository.NewTagRepository(fx.DB()).Update(ctx, retired.ID, &entity.TagUpdate{IsActive: &inactive}))

	templates, err := uc.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, template.ID, templates[0].ID)
	require.Len(t, templates[0].Tags, 1)
	assert.Equal(t, billing.ID, templates[0].Tags[0].ID)
}

func TestGetTemplate(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	template := fx.Template("offer refund")
	adHoc := fx.AdHoc("one-off")

	got, err := uc.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "offer refund", got.Name)
	assert.NotNil(t, got.Tags)

	_, err = uc.GetTemplate(ctx, adHoc.ID)
	assert.True(t, apperrors.IsInvalidTaskType(err))

	_, err = uc.GetTemplate(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	adHoc := fx.AdHoc("one-off")

	name := "renamed"
	got, err := uc.Update(ctx, adHoc.ID, &task.UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.True(t, got.IsActive)

	_, err = uc.Update(ctx, 999, &task.UpdateInput{Name: &name})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListForCallMissingCall(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.ListForCall(context.Background(), 999)
	assert.True(t, apperrors.IsNotFound(err))
}
