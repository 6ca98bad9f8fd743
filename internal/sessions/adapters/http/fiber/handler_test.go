package fiber_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "session-analytics-service/internal/sessions/adapters/http/fiber"
	"session-analytics-service/internal/sessions/core/domain"
	"session-analytics-service/internal/sessions/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake usecase implementing the interface that handler depends on.
type fakeStoreSessionUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.StoreSessionInput) (usecase.StoreSessionResult, error)
	BulkFn    func(ctx context.Context, in usecase.BulkCreateSessionsInput) (usecase.BulkCreateSessionsResult, error)
	ImportFn  func(ctx context.Context, kind string, coll domain.Collection) (usecase.BulkCreateSessionsResult, error)
	ListFn    func(ctx context.Context, kind string) (domain.Collection, error)

	called bool
}

func (f *fakeStoreSessionUseCase) Execute(ctx context.Context, in usecase.StoreSessionInput) (usecase.StoreSessionResult, error) {
	f.called = true
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return usecase.StoreSessionResult{ID: "generated", Created: true}, nil
}

func (f *fakeStoreSessionUseCase) BulkCreateSessions(ctx context.Context, in usecase.BulkCreateSessionsInput) (usecase.BulkCreateSessionsResult, error) {
	f.called = true
	if f.BulkFn != nil {
		return f.BulkFn(ctx, in)
	}
	return usecase.BulkCreateSessionsResult{}, nil
}

func (f *fakeStoreSessionUseCase) ImportCollection(ctx context.Context, kind string, coll domain.Collection) (usecase.BulkCreateSessionsResult, error) {
	f.called = true
	if f.ImportFn != nil {
		return f.ImportFn(ctx, kind, coll)
	}
	return usecase.BulkCreateSessionsResult{}, nil
}

func (f *fakeStoreSessionUseCase) ListSessions(ctx context.Context, kind string) (domain.Collection, error) {
	f.called = true
	if f.ListFn != nil {
		return f.ListFn(ctx, kind)
	}
	return domain.Collection{}, nil
}

func setupApp(t *testing.T, uc httpadapter.StoreSessionUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	httpadapter.NewSessionHandler(uc).Register(app.Group("/sessions"))
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestCreateSession_Created(t *testing.T) {
	uc := &fakeStoreSessionUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.StoreSessionInput) (usecase.StoreSessionResult, error) {
			assert.Equal(t, "avatar", in.Kind)
			assert.Equal(t, "u1", in.Payload["user_id"])
			return usecase.StoreSessionResult{ID: "s1", Created: true}, nil
		},
	}

	resp, body := post(t, setupApp(t, uc), "/sessions/avatar", `{"user_id":"u1","session_duration":60}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"status":"created","id":"s1"}`, body)
}

func TestCreateSession_Duplicate(t *testing.T) {
	uc := &fakeStoreSessionUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.StoreSessionInput) (usecase.StoreSessionResult, error) {
			return usecase.StoreSessionResult{ID: "s1", Created: false}, nil
		},
	}

	resp, body := post(t, setupApp(t, uc), "/sessions/avatar", `{"id":"s1"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"duplicate","id":"s1"}`, body)
}

func TestCreateSession_InvalidJSON(t *testing.T) {
	uc := &fakeStoreSessionUseCase{}

	resp, _ := post(t, setupApp(t, uc), "/sessions/avatar", `{"user_id":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, uc.called)
}

func TestCreateSession_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown kind", usecase.ErrUnknownKind, http.StatusBadRequest},
		{"invalid", usecase.ErrInvalidSession, http.StatusBadRequest},
		{"db", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeStoreSessionUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.StoreSessionInput) (usecase.StoreSessionResult, error) {
					return usecase.StoreSessionResult{}, tc.err
				},
			}

			resp, _ := post(t, setupApp(t, uc), "/sessions/avatar", `{"a":1}`)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestBulkCreateSessions_Success(t *testing.T) {
	uc := &fakeStoreSessionUseCase{
		BulkFn: func(ctx context.Context, in usecase.BulkCreateSessionsInput) (usecase.BulkCreateSessionsResult, error) {
			assert.Equal(t, "meditation", in.Kind)
			require.Len(t, in.Sessions, 2)
			return usecase.BulkCreateSessionsResult{Created: 1, Duplicates: 1, IDs: []string{"a", "b"}}, nil
		},
	}

	resp, body := post(t, setupApp(t, uc), "/sessions/meditation/bulk", `{"sessions":[{"id":"a"},{"id":"b"}]}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"created":1,"duplicates":1,"ids":["a","b"]}`, body)
}

func TestBulkCreateSessions_EmptyList(t *testing.T) {
	uc := &fakeStoreSessionUseCase{}

	resp, body := post(t, setupApp(t, uc), "/sessions/meditation/bulk", `{"sessions":[]}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "sessions_list_required")
	assert.False(t, uc.called)
}

func TestImportCollection_KeepsOrder(t *testing.T) {
	var got domain.Collection
	uc := &fakeStoreSessionUseCase{
		ImportFn: func(ctx context.Context, kind string, coll domain.Collection) (usecase.BulkCreateSessionsResult, error) {
			got = coll
			return usecase.BulkCreateSessionsResult{Created: len(coll), IDs: []string{"z", "a"}}, nil
		},
	}

	resp, _ := post(t, setupApp(t, uc), "/sessions/sessionAvatar/import", `{"z":{"user_id":"u1"},"a":{"user_id":"u2"}}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, got, 2)
	assert.Equal(t, "z", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestImportCollection_NotAnObject(t *testing.T) {
	uc := &fakeStoreSessionUseCase{}

	resp, _ := post(t, setupApp(t, uc), "/sessions/avatar/import", `[{"user_id":"u1"}]`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, uc.called)
}

func TestListSessions_PreservesOrder(t *testing.T) {
	uc := &fakeStoreSessionUseCase{
		ListFn: func(ctx context.Context, kind string) (domain.Collection, error) {
			return domain.Collection{
				{ID: "s2", Value: map[string]any{"user_id": "a"}},
				{ID: "s1", Value: map[string]any{"user_id": "b"}},
			}, nil
		},
	}

	resp, err := setupApp(t, uc).Test(httptest.NewRequest(http.MethodGet, "/sessions/avatar", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"s2":{"user_id":"a"},"s1":{"user_id":"b"}}`, string(raw))
}
