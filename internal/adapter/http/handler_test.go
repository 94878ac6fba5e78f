package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser/internal/adapter/repository"
	"resume-parser/internal/domain"
)

const validResumeJSON = `{
	"profile": {"name": "Jordan Doe", "email": "jordan@example.com"},
	"experience": [], "education": [], "patents": [],
	"publications": [], "certificates": [], "computer_skills": []
}`

type memStore struct {
	mu       sync.Mutex
	disabled bool
	resumes  map[uuid.UUID]*domain.StoredResume
	jobs     map[uuid.UUID]*domain.ParseJob
}

func newMemStore() *memStore {
	return &memStore{
		resumes: map[uuid.UUID]*domain.StoredResume{},
		jobs:    map[uuid.UUID]*domain.ParseJob{},
	}
}

func (s *memStore) InsertOne(_ context.Context, owner string, doc json.RawMessage) (uuid.UUID, error) {
	if s.disabled {
		return uuid.Nil, repository.ErrStorageDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.resumes[id] = &domain.StoredResume{ID: id, Owner: owner, Document: doc, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return id, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.StoredResume, error) {
	if s.disabled {
		return nil, repository.ErrStorageDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.resumes[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) SaveJob(_ context.Context, j *domain.ParseJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *j
	s.jobs[j.ID] = &cp
	return nil
}

func (s *memStore) GetJob(_ context.Context, id uuid.UUID) (*domain.ParseJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		return j, nil
	}
	return nil, repository.ErrNotFound
}

type fakeRunner struct {
	mu   sync.Mutex
	jobs []uuid.UUID
	done chan struct{}
}

func (f *fakeRunner) Run(_ context.Context, job *domain.ParseJob) error {
	f.mu.Lock()
	f.jobs = append(f.jobs, job.ID)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return nil
}

func newTestApp(store *memStore, runner Runner) *fiber.App {
	app := fiber.New()
	NewHandler(runner, store, zerolog.Nop()).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*stdhttp.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(b) > 0 {
		require.NoError(t, json.Unmarshal(b, &decoded))
	}
	return resp, decoded
}

func TestValidateDocumentPass(t *testing.T) {
	app := newTestApp(newMemStore(), &fakeRunner{})

	resp, body := doJSON(t, app, stdhttp.MethodPost, "/validate", validResumeJSON)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])
	assert.Empty(t, body["violations"])
}

func TestValidateDocumentFail(t *testing.T) {
	app := newTestApp(newMemStore(), &fakeRunner{})

	resp, body := doJSON(t, app, stdhttp.MethodPost, "/validate", `{"profile":{"name":"x"}}`)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["valid"])

	violations, ok := body["violations"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, violations)

	paths := make([]string, 0, len(violations))
	for _, v := range violations {
		paths = append(paths, v.(map[string]interface{})["path"].(string))
	}
	assert.Contains(t, paths, "profile.email")
}

func TestValidateDocumentRejectsBrokenJSON(t *testing.T) {
	app := newTestApp(newMemStore(), &fakeRunner{})

	resp, _ := doJSON(t, app, stdhttp.MethodPost, "/validate", `{broken`)
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
}

func TestCreateAndGetResume(t *testing.T) {
	store := newMemStore()
	app := newTestApp(store, &fakeRunner{})

	resp, body := doJSON(t, app, stdhttp.MethodPost, "/resumes",
		`{"owner":"jordan","document":`+validResumeJSON+`}`)
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	id := body["id"].(string)
	require.NotEmpty(t, id)

	resp, body = doJSON(t, app, stdhttp.MethodGet, "/resumes/"+id, "")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "jordan", body["owner"])
}

func TestCreateResumeRejectsInvalidDocument(t *testing.T) {
	app := newTestApp(newMemStore(), &fakeRunner{})

	resp, body := doJSON(t, app, stdhttp.MethodPost, "/resumes",
		`{"owner":"jordan","document":{"profile":{}}}`)
	assert.Equal(t, stdhttp.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, body["violations"])
}

func TestCreateResumeWithoutDocument(t *testing.T) {
	app := newTestApp(newMemStore(), &fakeRunner{})

	resp, _ := doJSON(t, app, stdhttp.MethodPost, "/resumes", `{"owner":"jordan"}`)
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
}

func TestCreateResumeStorageDisabled(t *testing.T) {
	store := newMemStore()
	store.disabled = true
	app := newTestApp(store, &fakeRunner{})

	resp, _ := doJSON(t, app, stdhttp.MethodPost, "/resumes",
		`{"owner":"jordan","document":`+validResumeJSON+`}`)
	assert.Equal(t, stdhttp.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetResumeNotFound(t *testing.T) {
	app := newTestApp(newMemStore(), &fakeRunner{})

	resp, _ := doJSON(t, app, stdhttp.MethodGet, "/resumes/"+uuid.NewString(), "")
	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, stdhttp.MethodGet, "/resumes/not-a-uuid", "")
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
}

func TestStartParseJob(t *testing.T) {
	store := newMemStore()
	runner := &fakeRunner{done: make(chan struct{})}
	app := newTestApp(store, runner)

	resp, body := doJSON(t, app, stdhttp.MethodPost, "/jobs/parse", "")
	require.Equal(t, stdhttp.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "started", body["status"])

	jobID, err := uuid.Parse(body["jobId"].(string))
	require.NoError(t, err)

	select {
	case <-runner.done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner was not invoked")
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	require.Len(t, runner.jobs, 1)
	assert.Equal(t, jobID, runner.jobs[0])

	resp, body = doJSON(t, app, stdhttp.MethodGet, "/jobs/"+jobID.String(), "")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.JobStatusPending, body["status"])
}
