package api

import (
	"time"

	"github.com/impulso-stone/webhook-service/internal/store"
)

// EmpreendedorResponse is the public projection of a record returned by the
// ingestion and CRUD endpoints.
type EmpreendedorResponse struct {
	ID             int64      `json:"id"`
	Nome           string     `json:"nome"`
	Telefone       string     `json:"telefone"`
	Email          *string    `json:"email"`
	CPF            *string    `json:"cpf"`
	Cidade         *string    `json:"cidade"`
	Estado         *string    `json:"estado"`
	DataInscricao  *time.Time `json:"data_inscricao"`
	FormularioTipo *string    `json:"formulario_tipo"`
}

func toResponse(e store.Empreendedor) EmpreendedorResponse {
	return EmpreendedorResponse{
		ID:             e.ID,
		Nome:           e.Nome,
		Telefone:       e.Telefone,
		Email:          e.Email,
		CPF:            e.CPF,
		Cidade:         e.Cidade,
		Estado:         e.Estado,
		DataInscricao:  e.DataInscricao,
		FormularioTipo: e.FormularioTipo,
	}
}

// WebhookResult is the per-submission outcome, used standalone by the single
// ingestion endpoint and per item by the bulk endpoint.
type WebhookResult struct {
	Success        bool                  `json:"success"`
	Message        string                `json:"message"`
	EmpreendedorID *int64                `json:"empreendedor_id,omitempty"`
	Data           *EmpreendedorResponse `json:"data,omitempty"`
	Errors         []string              `json:"errors,omitempty"`
}

// BulkWebhookResponse aggregates the per-item results of a bulk ingestion.
type BulkWebhookResponse struct {
	Success              bool            `json:"success"`
	TotalProcessados     int             `json:"total_processados"`
	TotalSucesso         int             `json:"total_sucesso"`
	TotalErros           int             `json:"total_erros"`
	Resultados           []WebhookResult `json:"resultados"`
	TempoProcessamentoMs float64         `json:"tempo_processamento_ms"`
}

// SearchResponse wraps a search page with pagination metadata.
type SearchResponse struct {
	Success    bool                   `json:"success"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int64                  `json:"total_pages"`
	Data       []EmpreendedorResponse `json:"data"`
}
