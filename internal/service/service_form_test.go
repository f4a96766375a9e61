// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/mock"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type formServiceMocks struct {
	forms       *mock.MockFormStorage
	submissions *mock.MockSubmissionStorage
	versions    *mock.MockFormVersionStorage
	cleaner     *mock.MockFileCleaner
	notifier    *mock.MockNotifier
}

// newTestFormService — formService wired to gomock storages, predictable ids
// and a fixed clock.
func newTestFormService(t *testing.T, ctrl *gomock.Controller) (*formService, formServiceMocks) {
	t.Helper()
	m := formServiceMocks{
		forms:       mock.NewMockFormStorage(ctrl),
		submissions: mock.NewMockSubmissionStorage(ctrl),
		versions:    mock.NewMockFormVersionStorage(ctrl),
		cleaner:     mock.NewMockFileCleaner(ctrl),
		notifier:    mock.NewMockNotifier(ctrl),
	}

	svc := NewFormService(m.forms, m.submissions, m.versions, m.cleaner, m.notifier, logger.Nop()).(*formService)
	svc.ids = &sequenceIDs{}
	svc.now = fixedClock

	return svc, m
}

func storedForm() models.Form {
	return models.Form{
		ID:      "form-1",
		Title:   "Registration",
		Status:  models.FormStatusDraft,
		Version: 2,
		Fields: []models.Field{
			{ID: "f-name", Name: "name", Label: "Name", Type: models.FieldTypeText, Options: []string{}, Order: models.IntPtr(1)},
			{ID: "f-email", Name: "email", Label: "Email", Type: models.FieldTypeEmail, Options: []string{}, Order: models.IntPtr(0)},
		},
		Revision: 4,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestFormService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	input := models.Form{
		Title: "Registration",
		Fields: []models.Field{
			textField("name", "Name", models.IntPtr(3)),
			{Name: "email", Label: "Email", Type: models.FieldTypeEmail, Order: models.IntPtr(1)},
		},
	}

	m.forms.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, form models.Form) (models.Form, error) {
			assert.Equal(t, 1, form.Version)
			assert.Equal(t, models.FormStatusDraft, form.Status)
			assert.Equal(t, []string{"gen-1", "gen-2"}, []string{form.Fields[0].ID, form.Fields[1].ID})
			assert.Equal(t, []int{1, 0}, fieldOrders(form.Fields))
			form.ID = "form-1"
			form.Revision = 1
			return form, nil
		},
	)

	created, err := svc.Create(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "form-1", created.ID)
	assert.Equal(t, []string{"email", "name"}, fieldNames(created.Fields), "response lists fields by display order")
}

func TestFormService_Create_InvalidStructure_NothingStored(t *testing.T) {
	cases := []struct {
		name   string
		fields []models.Field
		want   error
	}{
		{
			name:   "uppercase name",
			fields: []models.Field{textField("email", "Email", nil), textField("EMAIL", "Email again", nil)},
			want:   validators.ErrInvalidFieldName,
		},
		{
			name:   "same name twice",
			fields: []models.Field{textField("email", "Email", nil), textField("email", "Email again", nil)},
			want:   validators.ErrDuplicateFieldName,
		},
		{
			name:   "select without options",
			fields: []models.Field{{Name: "country", Label: "Country", Type: models.FieldTypeSelect}},
			want:   validators.ErrMissingOptions,
		},
		{
			name:   "unknown type",
			fields: []models.Field{{Name: "x", Label: "X", Type: "slider"}},
			want:   validators.ErrInvalidFieldType,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _ := newTestFormService(t, ctrl)

			_, err := svc.Create(context.Background(), models.Form{Title: "T", Fields: tc.fields})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFormService_Create_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()
	storeErr := errors.New("disk full")

	m.forms.EXPECT().Create(ctx, gomock.Any()).Return(models.Form{}, storeErr)

	_, err := svc.Create(ctx, models.Form{Title: "T"})
	assert.ErrorIs(t, err, storeErr)
}

// ── Get / GetPublic / List ───────────────────────────────────────────────────

func TestFormService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	m.forms.EXPECT().Get(ctx, "missing").Return(models.Form{}, store.ErrDocumentNotFound)

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestFormService_GetPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	draft := storedForm()
	active := storedForm()
	active.ID = "form-2"
	active.Status = models.FormStatusActive

	m.forms.EXPECT().Get(ctx, "form-1").Return(draft, nil)
	m.forms.EXPECT().Get(ctx, "form-2").Return(active, nil)

	_, err := svc.GetPublic(ctx, "form-1")
	assert.ErrorIs(t, err, ErrFormNotActive)

	got, err := svc.GetPublic(ctx, "form-2")
	require.NoError(t, err)
	assert.Equal(t, "form-2", got.ID)
}

func TestFormService_List_DefaultsToNewestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	m.forms.EXPECT().List(ctx, models.ListQuery{
		Status: "active",
		Page:   2,
		SortBy: models.DocumentKeyCreatedAt,
		Order:  models.OrderDesc,
	}).Return(models.Page[models.Form]{}, nil)

	_, err := svc.List(ctx, models.ListQuery{Status: "active", Page: 2})
	require.NoError(t, err)
}

func TestFormService_List_KeepsCallerSort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	query := models.ListQuery{SortBy: "title", Order: models.OrderAsc}
	m.forms.EXPECT().List(ctx, query).Return(models.Page[models.Form]{}, nil)

	_, err := svc.List(ctx, query)
	require.NoError(t, err)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestFormService_Update_StatusOnly_NoSnapshotNoVersionBump(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()
	active := models.FormStatusActive

	m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil)
	m.forms.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, form models.Form) (models.Form, error) {
			assert.Equal(t, 2, form.Version)
			assert.Equal(t, models.FormStatusActive, form.Status)
			assert.Equal(t, int64(4), form.Revision, "update must carry the revision it read")
			form.Revision++
			return form, nil
		},
	)
	m.notifier.EXPECT().Notify(ctx, models.FormEvent{
		Type:       models.FormEventStatusChanged,
		FormID:     "form-1",
		Status:     models.FormStatusActive,
		Title:      "Registration",
		OccurredAt: testNow,
	}).Return(nil)

	updated, err := svc.Update(ctx, "form-1", models.FormUpdate{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, []string{"email", "name"}, fieldNames(updated.Fields))
}

func TestFormService_Update_Structural_SnapshotsAndBumpsVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()
	current := storedForm()

	gomock.InOrder(
		m.forms.EXPECT().GetRaw(ctx, "form-1").Return(current, nil),
		m.versions.EXPECT().Create(ctx, models.FormVersion{
			FormID:     "form-1",
			Version:    2,
			Title:      "Registration",
			Fields:     current.Fields,
			ArchivedAt: testNow,
		}).Return(nil),
		m.forms.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, form models.Form) (models.Form, error) {
				assert.Equal(t, 3, form.Version)
				assert.Equal(t, "Sign up", form.Title)
				require.Len(t, form.Fields, 2)
				assert.Equal(t, "f-email", form.Fields[0].ID, "existing field keeps its id")
				assert.Equal(t, "gen-1", form.Fields[1].ID)
				return form, nil
			},
		),
		m.notifier.EXPECT().Notify(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, event models.FormEvent) error {
				assert.Equal(t, models.FormEventChanged, event.Type)
				return nil
			},
		),
	)

	updated, err := svc.Update(ctx, "form-1", models.FormUpdate{
		Title: strPtr("Sign up"),
		Fields: []models.Field{
			{Name: "email", Label: "Email", Type: models.FieldTypeEmail},
			textField("company", "Company", nil),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Version)
}

func TestFormService_Update_SnapshotFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil)
	m.versions.EXPECT().Create(ctx, gomock.Any()).Return(store.ErrDocumentExists)
	m.forms.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, form models.Form) (models.Form, error) { return form, nil },
	)
	m.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

	updated, err := svc.Update(ctx, "form-1", models.FormUpdate{Description: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Version)
	assert.Equal(t, "new", updated.Description)
}

func TestFormService_Update_NotifierFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()
	archived := models.FormStatusArchived

	m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil)
	m.forms.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, form models.Form) (models.Form, error) { return form, nil },
	)
	m.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(errors.New("redis down"))

	_, err := svc.Update(ctx, "form-1", models.FormUpdate{Status: &archived})
	require.NoError(t, err)
}

func TestFormService_Update_Errors(t *testing.T) {
	bogus := models.FormStatus("published")

	t.Run("empty update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newTestFormService(t, ctrl)

		_, err := svc.Update(context.Background(), "form-1", models.FormUpdate{})
		assert.ErrorIs(t, err, validators.ErrNoFieldsToUpdate)
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newTestFormService(t, ctrl)

		_, err := svc.Update(context.Background(), "form-1", models.FormUpdate{Status: &bogus})
		assert.ErrorIs(t, err, validators.ErrInvalidFormStatus)
	})

	t.Run("form not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newTestFormService(t, ctrl)
		ctx := context.Background()

		m.forms.EXPECT().GetRaw(ctx, "missing").Return(models.Form{}, store.ErrDocumentNotFound)

		_, err := svc.Update(ctx, "missing", models.FormUpdate{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("revision conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newTestFormService(t, ctrl)
		ctx := context.Background()
		active := models.FormStatusActive

		m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil)
		m.forms.EXPECT().Update(ctx, gomock.Any()).Return(models.Form{}, store.ErrRevisionConflict)

		_, err := svc.Update(ctx, "form-1", models.FormUpdate{Status: &active})
		assert.ErrorIs(t, err, store.ErrRevisionConflict)
	})
}

// ── Reorder ──────────────────────────────────────────────────────────────────

func TestFormService_Reorder_PersistsSortedDenseFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	current := storedForm()
	current.Fields = append(current.Fields,
		models.Field{ID: "f-age", Name: "age", Label: "Age", Type: models.FieldTypeNumber, Order: models.IntPtr(2)},
	)

	m.forms.EXPECT().GetRaw(ctx, "form-1").Return(current, nil)
	m.forms.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, form models.Form) (models.Form, error) {
			assert.Equal(t, []string{"age", "email", "name"}, fieldNames(form.Fields))
			assert.Equal(t, []int{0, 1, 2}, fieldOrders(form.Fields))
			assert.Equal(t, 2, form.Version, "reorder does not bump the version")
			return form, nil
		},
	)
	m.notifier.EXPECT().Notify(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event models.FormEvent) error {
			assert.Equal(t, models.FormEventChanged, event.Type)
			return nil
		},
	)

	got, err := svc.Reorder(ctx, "form-1", map[string]int{"f-age": -1})
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "email", "name"}, fieldNames(got.Fields))
}

func TestFormService_Reorder_Errors(t *testing.T) {
	t.Run("no orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newTestFormService(t, ctrl)

		_, err := svc.Reorder(context.Background(), "form-1", nil)
		assert.ErrorIs(t, err, ErrEmptyReorder)
	})

	t.Run("form not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newTestFormService(t, ctrl)
		ctx := context.Background()

		m.forms.EXPECT().GetRaw(ctx, "missing").Return(models.Form{}, store.ErrDocumentNotFound)

		_, err := svc.Reorder(ctx, "missing", map[string]int{"a": 1})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestFormService_Delete_CleansFilesKeepsSubmissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	submissions := []models.Submission{
		{ID: "s1", FormID: "form-1", Answers: map[string]any{
			"cv": map[string]any{"path": "/uploads/form-1/a.pdf", "originalName": "a.pdf"},
		}},
		{ID: "s2", FormID: "form-1", Answers: map[string]any{"name": "no files"}},
	}

	gomock.InOrder(
		m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil),
		m.submissions.EXPECT().ListAll(ctx, "form-1").Return(submissions, nil),
		m.forms.EXPECT().Delete(ctx, "form-1").Return(nil),
		m.cleaner.EXPECT().Clean(ctx, "form-1", []string{"/uploads/form-1/a.pdf"}),
		m.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil),
	)
	// no SubmissionStorage.Delete expectation: submissions are kept

	require.NoError(t, svc.Delete(ctx, "form-1"))
}

func TestFormService_Delete_NoFilesNoCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil)
	m.submissions.EXPECT().ListAll(ctx, "form-1").Return(nil, nil)
	m.forms.EXPECT().Delete(ctx, "form-1").Return(nil)
	m.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

	require.NoError(t, svc.Delete(ctx, "form-1"))
}

func TestFormService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()

	m.forms.EXPECT().GetRaw(ctx, "missing").Return(models.Form{}, store.ErrDocumentNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrFormNotFound)
}

func TestFormService_Delete_StoreErrorSkipsCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestFormService(t, ctrl)
	ctx := context.Background()
	storeErr := errors.New("io error")

	m.forms.EXPECT().GetRaw(ctx, "form-1").Return(storedForm(), nil)
	m.submissions.EXPECT().ListAll(ctx, "form-1").Return([]models.Submission{{ID: "s1", Answers: map[string]any{
		"cv": map[string]any{"path": "/x", "originalName": "x"},
	}}}, nil)
	m.forms.EXPECT().Delete(ctx, "form-1").Return(storeErr)

	assert.ErrorIs(t, svc.Delete(ctx, "form-1"), storeErr)
}
