package tag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/centriq/internal/adapter/repository"
	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/testutil"
	"github.com/leondli/centriq/internal/usecase/tag"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

func newUseCase(t *testing.T) (tag.UseCase, *testutil.Fixtures) {
	t.Helper()
	db := testutil.NewDB(t)
	uc := tag.NewUseCase(repository.NewTagRepository(db), repository.NewTaskRepository(db))
	return uc, testutil.NewFixtures(t, db)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	created, err := uc.Create(ctx, &tag.CreateInput{Name: "billing", ColorID: entity.TagColorPurple})
	require.NoError(t, err)
	assert.Equal(t, "billing", created.Name)
	assert.True(t, created.IsActive)
	assert.Equal(t, entity.TagColorPurple, created.ColorID)

	_, err = uc.Create(ctx, &tag.CreateInput{Name: "billing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyExists(err))
}

func TestDeactivateKeepsTagReadable(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	billing := fx.Tag("billing")
	fx.Tag("support")

	require.NoError(t, uc.Deactivate(ctx, billing.ID))

	listed, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "support", listed[0].Name)

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := uc.GetByID(ctx, billing.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = uc.GetWithSuggestedTasks(ctx, billing.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivateMissing(t *testing.T) {
	uc, _ := newUseCase(t)

	err := uc.Deactivate(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	billing := fx.Tag("billing")
	fx.Tag("support")

	tests := []struct {
		name    string
		id      uint
		input   tag.UpdateInput
		check   func(t *testing.T, got *entity.TagResponse)
		wantErr func(error) bool
	}{
		{
			name:  "color only",
			id:    billing.ID,
			input: tag.UpdateInput{ColorID: colorPtr(entity.TagColorCyan)},
			check: func(t *testing.T, got *entity.TagResponse) {
				assert.Equal(t, "billing", got.Name)
				assert.Equal(t, entity.TagColorCyan, got.ColorID)
			},
		},
		{
			name:  "rename",
			id:    billing.ID,
			input: tag.UpdateInput{Name: strPtr("invoices")},
			check: func(t *testing.T, got *entity.TagResponse) {
				assert.Equal(t, "invoices", got.Name)
				assert.Equal(t, entity.TagColorCyan, got.ColorID)
			},
		},
		{
			name:  "reactivate",
			id:    billing.ID,
			input: tag.UpdateInput{IsActive: boolPtr(true)},
			check: func(t *testing.T, got *entity.TagResponse) {
				assert.True(t, got.IsActive)
			},
		},
		{
			name:    "rename onto another tag",
			id:      billing.ID,
			input:   tag.UpdateInput{Name: strPtr("support")},
			wantErr: apperrors.IsAlreadyExists,
		},
		{
			name:    "missing tag",
			id:      999,
			input:   tag.UpdateInput{Name: strPtr("ghost")},
			wantErr: apperrors.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Update(ctx, tt.id, &tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestGetWithSuggestedTasks(t *testing.T) {
	ctx := context.Background()
	uc, fx := newUseCase(t)
	billing := fx.Tag("billing")
	other := fx.Tag("other")
	refund := fx.Template("offer refund", billing.ID)
	fx.Template("unrelated", other.ID)
	fx.AdHoc("ad hoc")

	got, err := uc.GetWithSuggestedTasks(ctx, billing.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.ID, got.ID)
	require.Len(t, got.SuggestedTasks, 1)
	assert.Equal(t, refund.ID, got.SuggestedTasks[0].ID)

	_, err = uc.GetWithSuggestedTasks(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func colorPtr(c entity.TagColor) *entity.TagColor { return &c }
