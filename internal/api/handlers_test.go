package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/impulso-stone/webhook-service/internal/ingest"
	"github.com/impulso-stone/webhook-service/internal/storage/memory"
	"github.com/impulso-stone/webhook-service/internal/store"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestServer(t *testing.T) (*Server, *memory.EntrepreneurStore) {
	t.Helper()
	clock := fixedClock{now: time.Unix(1700000000, 0).UTC()}
	repo := memory.NewEntrepreneurStore(clock)
	srv := NewServer(
		repo,
		ingest.NewMapper(nil),
		ingest.NewNormalizer(clock, nil),
		nil,
		nil,
		time.Minute,
	)
	return srv, repo
}

func postJSON(t *testing.T, srv *Server, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestIngestWebhookCreates(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform", `{
		"Nome": {"first": "Ana", "last": "Souza"},
		"Telefone": {"area": "11", "phone": "987654321"},
		"E-mail": "Ana@Example.com",
		"CPF": "123.456.789-00"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.NotNil(t, body["tempo_processamento_ms"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Ana Souza", data["nome"])
	require.Equal(t, "(11) 987654321", data["telefone"])
	require.Equal(t, "ana@example.com", data["email"])
	require.Equal(t, "12345678900", data["cpf"])

	stored, err := repo.GetByTelefone(context.Background(), "(11) 987654321")
	require.NoError(t, err)
	require.Equal(t, "Ana Souza", stored.Nome)
	require.NotNil(t, stored.ComunidadeOriginadora)
	require.Equal(t, ingest.DefaultComunidade, *stored.ComunidadeOriginadora)
}

func TestIngestWebhookRawRequestWrapper(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	nested := `{"q2_nome":{"first":"Carla","last":"Mendes"},"q4_telefone":{"area":"21","phone":"998877665"}}`
	payload, err := json.Marshal(map[string]any{
		"rawRequest":   nested,
		"submissionID": "6334",
		"formID":       "2527",
	})
	require.NoError(t, err)

	rec := postJSON(t, srv, "/api/v1/webhook/jotform", string(payload))
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "Carla Mendes", data["nome"])
}

func TestIngestWebhookFormEncoded(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	form := "nome=Bruno+Lima&telefone=11+91234-5678"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/jotform", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "Bruno Lima", data["nome"])
	require.Equal(t, "11 91234-5678", data["telefone"])
}

func TestIngestWebhookEmptyBody(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform", "   ")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	headers, ok := body["headers"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "application/json", headers["Content-Type"])
}

func TestIngestWebhookUnsupportedBody(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/jotform", strings.NewReader("%zz"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "unsupported body format", body["message"])
	require.Equal(t, "%zz", body["body_recebido"])
	headers, ok := body["headers"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "text/plain", headers["Content-Type"])
}

func TestIngestWebhookNullPhoneReportsEmptyField(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform", `{"nome": "Ana", "telefone": null}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "telefone is required", body["message"])
}

func TestIngestWebhookMissingPhone(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform", `{"nome": "Ana", "email": "a@b.c"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.NotNil(t, body["raw_payload"])
	keys, ok := body["campos_disponiveis"].([]any)
	require.True(t, ok)
	require.Contains(t, keys, "nome")
	require.Contains(t, keys, "email")
}

func TestIngestWebhookEmptyArray(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform", `[]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestWebhookDuplicateRejected(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	payload := `{"nome": "Ana", "telefone": "11 987654321", "email": "ana@example.com"}`

	first := postJSON(t, srv, "/api/v1/webhook/jotform", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, srv, "/api/v1/webhook/jotform", payload)
	require.Equal(t, http.StatusBadRequest, second.Code)
	body := decodeBody(t, second)
	require.Equal(t, false, body["success"])
	require.NotNil(t, body["empreendedor_id"])
}

func TestIngestBulkIsolatesFailures(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform/bulk", `[
		{"nome": "Ana", "telefone": "11 1"},
		{"nome": "Sem Telefone"},
		{"nome": "Bia", "telefone": "11 2"}
	]`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BulkWebhookResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Equal(t, 3, resp.TotalProcessados)
	require.Equal(t, 2, resp.TotalSucesso)
	require.Equal(t, 1, resp.TotalErros)
	require.Len(t, resp.Resultados, 3)
	require.True(t, resp.Resultados[0].Success)
	require.False(t, resp.Resultados[1].Success)
	require.True(t, resp.Resultados[2].Success)
}

func TestIngestBulkRejectsNonArray(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postJSON(t, srv, "/api/v1/webhook/jotform/bulk", `{"nome": "Ana"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEmpreendedor(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), store.CreateEmpreendedor{
		Nome: "Ana", Telefone: "(11) 9",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/webhook/empreendedores/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EmpreendedorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, created.ID, resp.ID)
	require.Equal(t, "Ana", resp.Nome)
}

func TestGetEmpreendedorNotFound(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/webhook/empreendedores/99", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEmpreendedorBadID(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/webhook/empreendedores/abc", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEmpreendedor(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), store.CreateEmpreendedor{
		Nome: "Ana", Telefone: "(11) 9",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/webhook/empreendedores/1",
		bytes.NewReader([]byte(`{"nome": "Ana Lima", "ativo_na_ludos": true}`)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Lima", got.Nome)
	require.True(t, got.AtivoNaLudos)
}

func TestUpdateEmpreendedorNotFound(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/webhook/empreendedores/99",
		bytes.NewReader([]byte(`{"nome": "x"}`)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEmpreendedor(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), store.CreateEmpreendedor{
		Nome: "Ana", Telefone: "(11) 9",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/webhook/empreendedores/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = repo.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/webhook/empreendedores/1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	sp := "SP"
	rj := "RJ"
	_, err := repo.Create(context.Background(), store.CreateEmpreendedor{
		Nome: "Ana", Telefone: "(11) 1", Estado: &sp,
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), store.CreateEmpreendedor{
		Nome: "Bia", Telefone: "(21) 2", Estado: &rj,
	})
	require.NoError(t, err)

	rec := postJSON(t, srv, "/api/v1/webhook/empreendedores/search",
		`{"estado": "SP", "page": 1, "page_size": 20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, int64(1), resp.Total)
	require.Equal(t, int64(1), resp.TotalPages)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Ana", resp.Data[0].Nome)
}

func TestStatsEndpointEmptyStore(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/webhook/empreendedores/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, float64(0), body["total_empreendedores"])
	require.Nil(t, body["media_nps_geral"])
	require.Nil(t, body["media_nps_mentoria"])
	require.Nil(t, body["media_nps_ludos"])
}

func TestHealthHealthy(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, float64(0), body["total_empreendedores"])
}

type failingStatsRepo struct {
	store.Repository
}

func (failingStatsRepo) Stats(context.Context) (store.Stats, error) {
	return store.Stats{}, errors.New("db down")
}

func TestHealthUnhealthy(t *testing.T) {
	t.Parallel()

	clock := fixedClock{now: time.Now()}
	repo := failingStatsRepo{Repository: memory.NewEntrepreneurStore(clock)}
	srv := NewServer(repo, ingest.NewMapper(nil), ingest.NewNormalizer(clock, nil), nil, nil, time.Minute)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "unhealthy", decodeBody(t, rec)["status"])
}

func TestRootBanner(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "webhook-service", decodeBody(t, rec)["service"])
}

func TestRequestIDHeaderSet(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
