package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/api"
	"github.com/charlesng35/catcatalog/internal/app"
	sharedtestutil "github.com/charlesng35/catcatalog/internal/database/testutil"
	"github.com/charlesng35/catcatalog/internal/models"
	"github.com/charlesng35/catcatalog/internal/services"
	"github.com/charlesng35/catcatalog/pkg/response"
)

// GeneratedName is returned by the name generator wired into every Env.
const GeneratedName = "Whiskers"

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	Cats   *services.CatService
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())

	cats, err := services.NewCatService(db, services.StaticNameGenerator(GeneratedName))
	require.NoError(t, err)

	cfg := &app.Config{}
	cfg.Monitoring.Health.Enabled = true

	router, err := api.NewRouter(db, cats, cfg)
	require.NoError(t, err)

	return &Env{
		T:      t,
		DB:     db,
		Router: router,
		Cats:   cats,
	}
}

// CatPayload mirrors the serialised cat returned by the API.
type CatPayload struct {
	ID          uint   `json:"id"`
	ImageURL    string `json:"image_url"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	LifeSpan    string `json:"life_span"`
	Breed       string `json:"breed"`
	Favorite    bool   `json:"favorite"`
}

// SeedCat inserts a cat directly through the service layer.
func (e *Env) SeedCat(input services.CreateCatInput) *models.Cat {
	e.T.Helper()
	cat, err := e.Cats.Create(e.T.Context(), input)
	require.NoError(e.T, err)
	return cat
}

// DecodeInto unmarshals the recorder body into the provided destination.
func DecodeInto[T any](t *testing.T, w *httptest.ResponseRecorder, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

// DecodeError parses the error envelope returned on failures.
func DecodeError(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.False(t, resp.Success, w.Body.String())
	require.NotNil(t, resp.Error, w.Body.String())
	return resp
}

// Request executes an HTTP request against the test router, JSON encoding the body when present.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		reader = bytes.NewReader(data)
	}
	return e.do(method, path, reader, body != nil)
}

// RequestRaw sends the body verbatim, for malformed payload cases.
func (e *Env) RequestRaw(method, path, body string) *httptest.ResponseRecorder {
	e.T.Helper()
	return e.do(method, path, bytes.NewBufferString(body), true)
}

func (e *Env) do(method, path string, body io.Reader, isJSON bool) *httptest.ResponseRecorder {
	e.T.Helper()

	req, err := http.NewRequest(method, path, body)
	require.NoError(e.T, err)
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
