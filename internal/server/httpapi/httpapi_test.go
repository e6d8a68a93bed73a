package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/proplusapp/proplus/internal/common"
	"github.com/proplusapp/proplus/internal/logging"
	"github.com/proplusapp/proplus/internal/server/config"
	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
	"github.com/proplusapp/proplus/internal/server/repositories/projects"
	"github.com/proplusapp/proplus/internal/server/services"
)

// in-memory stores honoring the repository contracts

type memUsers struct {
	byEmail map[string]*models.User
	byID    map[ids.ID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}, byID: map[ids.ID]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, common.ErrConflict
	}
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id ids.ID) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) DeleteByEmail(ctx context.Context, email string) error {
	u, ok := m.byEmail[email]
	if !ok {
		return common.ErrNotFound
	}
	delete(m.byEmail, email)
	delete(m.byID, u.ID)
	return nil
}

type memProjects struct {
	items map[ids.ID]*models.Project
	seq   time.Time
}

func newMemProjects() *memProjects {
	return &memProjects{items: map[ids.ID]*models.Project{}, seq: time.Now()}
}

func (m *memProjects) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	m.seq = m.seq.Add(time.Second)
	p.CreatedAt = m.seq
	m.items[p.ID] = p
	return p, nil
}

func (m *memProjects) List(ctx context.Context, ownerID ids.ID, limit, offset int) ([]*models.Project, error) {
	owned := []*models.Project{}
	for _, p := range m.items {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	if offset >= len(owned) {
		return []*models.Project{}, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (m *memProjects) Get(ctx context.Context, ownerID, id ids.ID) (*models.Project, error) {
	p, ok := m.items[id]
	if !ok || p.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (m *memProjects) Update(ctx context.Context, ownerID, id ids.ID, patch projects.Patch) (*models.Project, error) {
	p, ok := m.items[id]
	if !ok || p.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	p.Title = patch.Title
	p.Description = patch.Description
	return p, nil
}

func (m *memProjects) Delete(ctx context.Context, ownerID, id ids.ID) error {
	p, ok := m.items[id]
	if !ok || p.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// test harness

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := services.NewUserService(newMemUsers(), cfg)
	ps := services.NewProjectService(newMemProjects())

	return NewServer(":0", "http://localhost:4200", logger, us, ps).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func registerAndLogin(t *testing.T, h http.Handler, email, password string) (string, string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeBody[userOut](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decodeBody[tokenOut](t, rec)
	require.Equal(t, "bearer", tok.TokenType)

	return user.ID, tok.AccessToken
}
