package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "cvgen/internal/adapter/http"
	"cvgen/internal/domain"
	"cvgen/internal/usecase"
)

// memRepo is an in-memory job store for handler tests.
type memRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.RenderJob
}

func newMemRepo() *memRepo {
	return &memRepo{jobs: map[string]*domain.RenderJob{}}
}

func (r *memRepo) Save(_ context.Context, j *domain.RenderJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID.String()] = j
	return nil
}

func (r *memRepo) Get(_ context.Context, id string) (*domain.RenderJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	return j, nil
}

func testApp(repo usecase.JobsRepo) *fiber.App {
	h := httpadapter.NewHandler(usecase.NewProcessor(nil, repo, nil), repo)
	app := fiber.New()
	app.Post("/render", h.StartRender)
	app.Post("/validate", h.ValidateDocument)
	app.Get("/jobs/:id", h.JobStatus)
	app.Get("/schema.json", httpadapter.SchemaHandler)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *nethttp.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	app := testApp(newMemRepo())

	resp := postJSON(t, app, "/validate", map[string]any{
		"document": map[string]any{
			"cv": map[string]any{"name": "Jane Doe"},
		},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["valid"])
}

func TestValidateDocumentCollectsProblems(t *testing.T) {
	t.Parallel()

	app := testApp(newMemRepo())

	resp := postJSON(t, app, "/validate", map[string]any{
		"document": map[string]any{
			"cv": map[string]any{
				"name":  "",
				"email": "not-an-email",
			},
		},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["valid"])
	problems := body["problems"].([]any)
	assert.Len(t, problems, 2)
}

func TestValidateDocumentRequiresDocument(t *testing.T) {
	t.Parallel()

	app := testApp(newMemRepo())

	resp := postJSON(t, app, "/validate", map[string]any{"theme": "classic"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStartRenderAcceptsJob(t *testing.T) {
	chdir(t, t.TempDir())

	repo := newMemRepo()
	app := testApp(repo)

	resp := postJSON(t, app, "/render", map[string]any{
		"document": map[string]any{
			"cv": map[string]any{"name": "Jane Doe"},
		},
		"theme": "classic",
	})
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	body := decodeBody(t, resp)
	jobID, ok := body["jobId"].(string)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, body["status"].(string))

	repo.mu.Lock()
	_, saved := repo.jobs[jobID]
	repo.mu.Unlock()
	assert.True(t, saved)
}

func TestJobStatus(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	app := testApp(repo)

	req := httptest.NewRequest(nethttp.MethodGet, "/jobs/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSchemaEndpoint(t *testing.T) {
	t.Parallel()

	app := testApp(newMemRepo())

	req := httptest.NewRequest(nethttp.MethodGet, "/schema.json", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/schema+json", resp.Header.Get("Content-Type"))

	body := decodeBody(t, resp)
	assert.Contains(t, body, "properties")
}

// chdir changes the working directory for the duration of the test,
// restoring the previous directory on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
