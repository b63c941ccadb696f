package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/filter"
	"candidate-management-db/internal/geo"
	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCandidateRepo struct {
	records  []model.Candidate
	comments map[int64][]model.Comment
	nextID   int64
}

func (f *fakeCandidateRepo) Create(_ context.Context, c *model.Candidate) error {
	f.nextID++
	c.ID = f.nextID
	f.records = append(f.records, *c)
	return nil
}

func (f *fakeCandidateRepo) Get(_ context.Context, id int64) (*model.Candidate, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			c := f.records[i]
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCandidateRepo) Update(_ context.Context, c *model.Candidate) error {
	for i := range f.records {
		if f.records[i].ID == c.ID {
			f.records[i] = *c
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeCandidateRepo) Delete(_ context.Context, id int64) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeCandidateRepo) matched(clauses []filter.Clause) []model.Candidate {
	now := time.Now()
	var out []model.Candidate
	for _, r := range f.records {
		if filter.MatchAll(clauses, r, now) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeCandidateRepo) List(_ context.Context, clauses []filter.Clause, page filter.PageParams) ([]model.Candidate, int, error) {
	matched := f.matched(clauses)
	shaped, meta := filter.Shape(matched, page)
	return shaped, meta.TotalRecords, nil
}

func (f *fakeCandidateRepo) Find(_ context.Context, clauses []filter.Clause, limit int) ([]model.Candidate, error) {
	matched, _ := filter.Shape(f.matched(clauses), filter.PageParams{Page: 1, Limit: 1 << 30})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeCandidateRepo) CountBefore(_ context.Context, uploaded time.Time) (int, error) {
	count := 0
	for _, r := range f.records {
		if r.DateOfUpload.Before(uploaded) {
			count++
		}
	}
	return count, nil
}

func (f *fakeCandidateRepo) AddComment(_ context.Context, candidateID int64, text, addedBy string) (*model.Comment, error) {
	if _, err := f.Get(context.Background(), candidateID); err != nil {
		return nil, err
	}
	if f.comments == nil {
		f.comments = make(map[int64][]model.Comment)
	}
	comment := model.Comment{
		ID:          int64(len(f.comments[candidateID]) + 1),
		CandidateID: candidateID,
		Text:        text,
		AddedBy:     addedBy,
		CreatedAt:   time.Now(),
	}
	f.comments[candidateID] = append(f.comments[candidateID], comment)
	return &comment, nil
}

func (f *fakeCandidateRepo) GetComments(_ context.Context, candidateID int64) ([]model.Comment, error) {
	return f.comments[candidateID], nil
}

func (f *fakeCandidateRepo) DistinctValues(_ context.Context, field filter.Field) ([]string, error) {
	var out []string
	for _, r := range f.records {
		switch field {
		case filter.FieldGender:
			out = append(out, string(r.Gender))
		case filter.FieldCurrentState:
			out = append(out, r.CurrentState)
		case filter.FieldPreferredState:
			out = append(out, r.PreferredState)
		case filter.FieldDesignation:
			out = append(out, r.Designation)
		case filter.FieldDepartment:
			out = append(out, r.Department)
		case filter.FieldCurrentEmployer:
			out = append(out, r.CurrentEmployer)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) DistinctExperience(context.Context) ([]int, error) {
	var out []int
	for _, r := range f.records {
		if r.MinExperience != nil {
			out = append(out, *r.MinExperience)
		}
		if r.MaxExperience != nil {
			out = append(out, *r.MaxExperience)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) DistinctCTC(context.Context) ([]float64, error) {
	var out []float64
	for _, r := range f.records {
		if r.MinCTC != nil {
			out = append(out, *r.MinCTC)
		}
		if r.MaxCTC != nil {
			out = append(out, *r.MaxCTC)
		}
	}
	return out, nil
}

func testLookup(t *testing.T) *geo.Lookup {
	t.Helper()
	path := filepath.Join(t.TempDir(), "states.yaml")
	content := "states:\n  Karnataka: [Bengaluru]\n  Maharashtra: [Mumbai, Pune]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	lookup, err := geo.Load(path)
	require.NoError(t, err)
	return lookup
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Upload.MaxFileSize = 5 << 20
	cfg.Upload.AllowedExtensions = []string{".pdf", ".docx"}
	cfg.Export.BaseURL = "http://localhost:8080"
	cfg.Export.UnfilteredLimit = 1000
	return cfg
}

type fakeProducer struct {
	jobs []model.CleanupJob
}

func (f *fakeProducer) EnqueueCleanupJob(_ context.Context, job model.CleanupJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeProducer) keys() []string {
	out := make([]string, len(f.jobs))
	for i, j := range f.jobs {
		out[i] = j.Key
	}
	return out
}

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, apperrors.ErrAttachmentMissing
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Upload(_ context.Context, key string, data io.Reader) error {
	buf, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[key] = buf
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

type testEnv struct {
	router   *gin.Engine
	repo     *fakeCandidateRepo
	producer *fakeProducer
	store    *fakeStorage
}

func newTestEnv(t *testing.T, repo *fakeCandidateRepo) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	producer := &fakeProducer{}
	store := newFakeStorage()
	handler := NewHandler(repo, nil, nil, store, producer, nil, testLookup(t), testConfig())
	router := gin.New()
	SetupRoutes(router, handler)
	return &testEnv{router: router, repo: repo, producer: producer, store: store}
}

func testRouter(t *testing.T, repo *fakeCandidateRepo) *gin.Engine {
	t.Helper()
	return newTestEnv(t, repo).router
}

func seededRepo(n int) *fakeCandidateRepo {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeCandidateRepo{nextID: int64(n)}
	for i := 0; i < n; i++ {
		state := "Karnataka"
		if i%2 == 1 {
			state = "Maharashtra"
		}
		repo.records = append(repo.records, model.Candidate{
			ID:           int64(i + 1),
			FirstName:    fmt.Sprintf("Candidate%d", i+1),
			CurrentState: state,
			Gender:       model.GenderFemale,
			DateOfUpload: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestListCandidatesPaginates(t *testing.T) {
	router := testRouter(t, seededRepo(25))

	w, body := doJSON(t, router, http.MethodGet, "/forms?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["currentPage"])
	assert.Equal(t, float64(3), pagination["totalPages"])
	assert.Equal(t, float64(25), pagination["totalRecords"])
	assert.Equal(t, true, pagination["hasNext"])
	assert.Equal(t, true, pagination["hasPrev"])

	data := body["data"].([]interface{})
	assert.Len(t, data, 10)
}

func TestListCandidatesAppliesFilters(t *testing.T) {
	router := testRouter(t, seededRepo(10))

	w, body := doJSON(t, router, http.MethodGet, "/forms?currentState=Karnataka", nil)
	require.Equal(t, http.StatusOK, w.Code)

	filters := body["filters"].(map[string]interface{})
	assert.Equal(t, float64(5), filters["totalFilteredResults"])
	applied := filters["appliedFilters"].(map[string]interface{})
	assert.Equal(t, "Karnataka", applied["currentState"])

	// Options always reflect the full collection, not the filtered set.
	options := filters["filterOptions"].(map[string]interface{})
	states := options["currentStates"].([]interface{})
	assert.Contains(t, states, "Maharashtra")
	assert.Equal(t, filter.SentinelCurrentState, states[0])
}

func TestListCandidatesSentinelIsNoOp(t *testing.T) {
	router := testRouter(t, seededRepo(10))

	w, body := doJSON(t, router, http.MethodGet, "/forms?gender=All+Genders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	filters := body["filters"].(map[string]interface{})
	assert.Equal(t, float64(10), filters["totalFilteredResults"])
}

func TestGetCandidateNotFound(t *testing.T) {
	router := testRouter(t, seededRepo(3))

	w, body := doJSON(t, router, http.MethodGet, "/forms/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestGetCandidateBadID(t *testing.T) {
	router := testRouter(t, seededRepo(3))

	w, _ := doJSON(t, router, http.MethodGet, "/forms/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCommentValidation(t *testing.T) {
	router := testRouter(t, seededRepo(3))

	w, _ := doJSON(t, router, http.MethodPost, "/forms/1/comments", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := doJSON(t, router, http.MethodPost, "/forms/1/comments", map[string]string{"comment": "shortlisted"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "shortlisted", data["text"])
	assert.Equal(t, "unknown", data["addedBy"])
}

func TestAddCommentUnknownCandidate(t *testing.T) {
	router := testRouter(t, seededRepo(3))

	w, _ := doJSON(t, router, http.MethodPost, "/forms/999/comments", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportNoMatchesIsNotFound(t *testing.T) {
	router := testRouter(t, seededRepo(5))

	w, _ := doJSON(t, router, http.MethodGet, "/forms/download/export-excel?currentState=Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportFilteredWorkbook(t *testing.T) {
	router := testRouter(t, seededRepo(6))

	req := httptest.NewRequest(http.MethodGet, "/forms/download/export-excel?currentState=Karnataka", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Filtered_3_Candidates_Data.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestExportSingleCandidate(t *testing.T) {
	router := testRouter(t, seededRepo(3))

	req := httptest.NewRequest(http.MethodGet, "/forms/2/export-excel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "candidate_Candidate2_2.xlsx")
}

func TestDownloadResumeWithoutAttachment(t *testing.T) {
	router := testRouter(t, seededRepo(1))

	w, body := doJSON(t, router, http.MethodGet, "/forms/1/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No resume uploaded for this candidate", body["message"])
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("pdfFile", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 test content"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestCreateWithAttachmentStoresObject(t *testing.T) {
	env := newTestEnv(t, &fakeCandidateRepo{})

	req := multipartRequest(t, http.MethodPost, "/forms", map[string]string{"firstName": "Asha"}, "resume.pdf")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, env.repo.records, 1)
	att := env.repo.records[0].Attachment
	require.NotNil(t, att)
	assert.True(t, strings.HasPrefix(att.Key, "resumes/"))
	assert.Equal(t, "resume.pdf", att.OriginalName)

	// The object is in the store and nothing was queued for cleanup.
	has, err := env.store.Exists(context.Background(), att.Key)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Empty(t, env.producer.jobs)
}

func TestCreateRejectsUnknownExtension(t *testing.T) {
	env := newTestEnv(t, &fakeCandidateRepo{})

	req := multipartRequest(t, http.MethodPost, "/forms", nil, "malware.exe")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.repo.records)
	assert.Empty(t, env.store.objects)
}

func TestDeleteCandidateEnqueuesCleanup(t *testing.T) {
	repo := seededRepo(1)
	repo.records[0].Attachment = &model.Attachment{Key: "resumes/old.pdf", FileName: "old.pdf"}
	env := newTestEnv(t, repo)

	w, _ := doJSON(t, env.router, http.MethodDelete, "/forms/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, env.repo.records)
	assert.Equal(t, []string{"resumes/old.pdf"}, env.producer.keys())
}

func TestDeleteCandidateWithoutAttachmentQueuesNothing(t *testing.T) {
	env := newTestEnv(t, seededRepo(1))

	w, _ := doJSON(t, env.router, http.MethodDelete, "/forms/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.producer.jobs)
}

func TestUpdateReplacingAttachmentEnqueuesOldKey(t *testing.T) {
	repo := seededRepo(1)
	repo.records[0].Attachment = &model.Attachment{Key: "resumes/old.pdf", FileName: "old.pdf"}
	env := newTestEnv(t, repo)

	req := multipartRequest(t, http.MethodPut, "/forms/1", map[string]string{"firstName": "Asha"}, "new.pdf")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	att := env.repo.records[0].Attachment
	require.NotNil(t, att)
	assert.NotEqual(t, "resumes/old.pdf", att.Key)

	// Only the replaced object is released.
	assert.Equal(t, []string{"resumes/old.pdf"}, env.producer.keys())

	has, err := env.store.Exists(context.Background(), att.Key)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestUpdateWithoutFileKeepsAttachment(t *testing.T) {
	repo := seededRepo(1)
	repo.records[0].Attachment = &model.Attachment{Key: "resumes/keep.pdf", FileName: "keep.pdf"}
	env := newTestEnv(t, repo)

	req := multipartRequest(t, http.MethodPut, "/forms/1", map[string]string{"firstName": "Renamed"}, "")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, env.repo.records[0].Attachment)
	assert.Equal(t, "resumes/keep.pdf", env.repo.records[0].Attachment.Key)
	assert.Equal(t, "Renamed", env.repo.records[0].FirstName)
	assert.Empty(t, env.producer.jobs)
}

func TestAttachmentRoundTrip(t *testing.T) {
	env := newTestEnv(t, &fakeCandidateRepo{})

	req := multipartRequest(t, http.MethodPost, "/forms", map[string]string{"firstName": "Asha"}, "resume.pdf")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	key := env.repo.records[0].Attachment.Key

	w2, _ := doJSON(t, env.router, http.MethodDelete, "/forms/1", nil)
	require.Equal(t, http.StatusOK, w2.Code)

	// The stored object's key is what reaches the cleanup queue.
	assert.Equal(t, []string{key}, env.producer.keys())
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t, &fakeCandidateRepo{})

	w, body := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}
