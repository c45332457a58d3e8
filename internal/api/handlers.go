package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/impulso-stone/webhook-service/internal/ingest"
	"github.com/impulso-stone/webhook-service/internal/store"
	"github.com/impulso-stone/webhook-service/internal/telemetry"
)

const maxBodyBytes = 1 << 20

// bodySnippetLen caps how much of an unparseable body is echoed back.
const bodySnippetLen = 500

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "webhook-service",
		"status":  "ok",
		"endpoints": []string{
			"POST /api/v1/webhook/jotform",
			"POST /api/v1/webhook/jotform/bulk",
			"GET /api/v1/webhook/empreendedores/{id}",
			"POST /api/v1/webhook/empreendedores/search",
			"GET /api/v1/webhook/empreendedores/stats",
			"GET /health",
			"GET /metrics",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repo.Stats(r.Context())
	if err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"service":   "webhook-service",
			"timestamp": time.Now().UTC(),
			"error":     err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "healthy",
		"service":              "webhook-service",
		"timestamp":            time.Now().UTC(),
		"database":             "connected",
		"total_empreendedores": stats.TotalEmpreendedores,
	})
}

// ingestWebhook accepts a submission in any of the producer's shapes: a JSON
// object, a JSON array, the rawRequest wrapper, or a form-encoded body.
func (s *Server) ingestWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		s.logger.Warn("empty webhook body received")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "empty body received, check the webhook configuration",
			"headers": headerEcho(r.Header),
		})
		return
	}

	fs, err := s.mapper.Map(body)
	if errors.Is(err, ingest.ErrMalformedBody) {
		obj, formErr := parseFormBody(body)
		if formErr != nil {
			s.logger.Warn("webhook body is neither JSON nor form-encoded",
				zap.Error(err))
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success":       false,
				"message":       "unsupported body format",
				"headers":       headerEcho(r.Header),
				"body_recebido": snippet(body),
			})
			return
		}
		fs = s.mapper.MapObject(obj)
		err = nil
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":     false,
			"message":     err.Error(),
			"raw_payload": rawEcho(body),
		})
		return
	}

	s.logger.Info("webhook payload mapped",
		zap.Strings("keys", fs.SourceKeys),
		zap.Stringp("submission_id", fs.SubmissionID),
		zap.Stringp("form_id", fs.FormID),
	)

	if err := s.normalizer.Validate(fs); err != nil {
		telemetry.ObserveSubmission("invalid")
		var available []string
		var invalid *ingest.InvalidPayloadError
		if errors.As(err, &invalid) {
			available = invalid.Keys
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":            false,
			"message":            "payload inválido: campos obrigatórios ausentes (Nome e Telefone)",
			"raw_payload":        rawEcho(body),
			"campos_disponiveis": available,
			"campos_esperados": map[string]string{
				"nome":     "Nome, nome, ou objeto {first, last}",
				"telefone": "Telefone, telefone, ou objeto {area, phone}",
			},
		})
		return
	}

	req, err := s.normalizer.Normalize(fs)
	if err != nil {
		telemetry.ObserveSubmission("invalid")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":     false,
			"message":     err.Error(),
			"raw_payload": rawEcho(body),
		})
		return
	}

	created, err := s.repo.Create(r.Context(), req)
	if err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			telemetry.ObserveDuplicate()
			telemetry.ObserveSubmission("duplicate")
			s.logger.Warn("duplicate submission rejected",
				zap.Int64("existing_id", dup.ExistingID))
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success":         false,
				"message":         err.Error(),
				"empreendedor_id": dup.ExistingID,
			})
			return
		}
		telemetry.ObserveSubmission("error")
		s.logger.Error("create empreendedor failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":     false,
			"message":     "erro ao criar empreendedor",
			"raw_payload": rawEcho(body),
		})
		return
	}

	telemetry.ObserveSubmission("created")
	s.logger.Info("empreendedor created",
		zap.Int64("id", created.ID),
		zap.String("nome", created.Nome),
		zap.String("telefone", created.Telefone),
	)
	s.forwardAsync(created)

	resp := toResponse(created)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":                true,
		"message":                "empreendedor cadastrado com sucesso",
		"empreendedor_id":        created.ID,
		"data":                   resp,
		"tempo_processamento_ms": elapsedMs(start),
	})
}

// ingestBulk processes a list of canonical-shaped payloads, isolating item
// failures from each other.
func (s *Server) ingestBulk(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var payloads []map[string]any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&payloads); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON array of objects")
		return
	}

	results := make([]WebhookResult, 0, len(payloads))
	succeeded, failed := 0, 0
	for idx, payload := range payloads {
		result := s.ingestOne(r, payload, idx+1)
		if result.Success {
			succeeded++
		} else {
			failed++
		}
		results = append(results, result)
	}

	s.logger.Info("bulk webhook processed",
		zap.Int("total", len(payloads)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)
	writeJSON(w, http.StatusOK, BulkWebhookResponse{
		Success:              failed == 0,
		TotalProcessados:     len(payloads),
		TotalSucesso:         succeeded,
		TotalErros:           failed,
		Resultados:           results,
		TempoProcessamentoMs: elapsedMs(start),
	})
}

func (s *Server) ingestOne(r *http.Request, payload map[string]any, position int) WebhookResult {
	prefix := "registro " + strconv.Itoa(position)

	fs := s.mapper.MapObject(payload)
	if err := s.normalizer.Validate(fs); err != nil {
		telemetry.ObserveSubmission("invalid")
		return WebhookResult{
			Success: false,
			Message: prefix + ": payload inválido",
			Errors:  []string{err.Error()},
		}
	}
	req, err := s.normalizer.Normalize(fs)
	if err != nil {
		telemetry.ObserveSubmission("invalid")
		return WebhookResult{
			Success: false,
			Message: prefix + ": payload inválido",
			Errors:  []string{err.Error()},
		}
	}
	created, err := s.repo.Create(r.Context(), req)
	if err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			telemetry.ObserveDuplicate()
			telemetry.ObserveSubmission("duplicate")
		} else {
			telemetry.ObserveSubmission("error")
		}
		return WebhookResult{
			Success: false,
			Message: prefix + ": erro",
			Errors:  []string{err.Error()},
		}
	}

	telemetry.ObserveSubmission("created")
	s.forwardAsync(created)
	resp := toResponse(created)
	return WebhookResult{
		Success:        true,
		Message:        prefix + ": sucesso",
		EmpreendedorID: &created.ID,
		Data:           &resp,
	}
}

func (s *Server) getEmpreendedor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	e, err := s.repo.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "empreendedor não encontrado")
		return
	}
	if err != nil {
		s.logger.Error("get empreendedor failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erro ao buscar empreendedor")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(e))
}

func (s *Server) updateEmpreendedor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var updates store.UpdateEmpreendedor
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	err := s.repo.Update(r.Context(), id, updates)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "empreendedor não encontrado")
		return
	}
	if err != nil {
		s.logger.Error("update empreendedor failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erro ao atualizar empreendedor")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "empreendedor " + strconv.FormatInt(id, 10) + " atualizado com sucesso",
	})
}

func (s *Server) deleteEmpreendedor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := s.repo.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "empreendedor não encontrado")
		return
	}
	if err != nil {
		s.logger.Error("delete empreendedor failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erro ao deletar empreendedor")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "empreendedor " + strconv.FormatInt(id, 10) + " deletado com sucesso",
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var filter store.SearchFilter
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&filter); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	filter.Normalize()

	records, total, err := s.repo.Search(r.Context(), filter)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erro ao buscar empreendedores")
		return
	}

	data := make([]EmpreendedorResponse, 0, len(records))
	for _, e := range records {
		data = append(data, toResponse(e))
	}
	totalPages := (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	writeJSON(w, http.StatusOK, SearchResponse{
		Success:    true,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
		Data:       data,
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repo.Stats(r.Context())
	if err != nil {
		s.logger.Error("stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "erro ao obter estatísticas")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// forwardAsync hands the record to the sheets forwarder without blocking the
// response. The request context is not reused: the forward should outlive it.
func (s *Server) forwardAsync(record store.Empreendedor) {
	if s.forwarder == nil || !s.forwarder.Enabled() {
		return
	}
	go s.forwarder.Forward(context.Background(), record)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// parseFormBody decodes a form-encoded body into the object shape the mapper
// understands, keeping the first value of each key.
func parseFormBody(body []byte) (map[string]any, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, errors.New("empty form body")
	}
	obj := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			obj[key] = vals[0]
		}
	}
	return obj, nil
}

// headerEcho flattens the request headers for the unparseable-body
// diagnostics, keeping the first value of each header.
func headerEcho(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, vals := range h {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out
}

// rawEcho returns the body for error responses: verbatim when it is valid
// JSON, otherwise a truncated string.
func rawEcho(body []byte) any {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return snippet(body)
}

func snippet(body []byte) string {
	s := string(body)
	if len(s) > bodySnippetLen {
		return s[:bodySnippetLen]
	}
	return s
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
