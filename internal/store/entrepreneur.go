// Package store defines the entrepreneur domain model and the persistence
// contract implemented by the storage backends.
package store

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Column length budgets enforced at the storage boundary. Values longer than
// the budget are truncated, not rejected.
const (
	MaxNome               = 100
	MaxTelefone           = 20
	MaxEmail              = 100
	MaxComunidade         = 50
	MaxApelido            = 100
	MaxCPF                = 14
	MaxCidade             = 100
	MaxEstado             = 50
	MaxIdade              = 20
	MaxGenero             = 50
	MaxRacaCor            = 50
	MaxEscolaridade       = 100
	MaxFaixaRenda         = 100
	MaxTempoFuncionamento = 50
	MaxSegmentoAtuacao    = 100
	MaxSegmentoOutros     = 100
	MaxOrganizacaoStone   = 100
	MaxFormularioTipo     = 50
	MaxLudosLogin         = 100
	MaxLudosStatus        = 20
	MaxMGMUserName        = 100
	MaxMGMWhatsapp        = 20

	// TelefoneBase caps the phone prefix kept when a collision suffix is
	// appended, leaving room for "_N" within MaxTelefone.
	TelefoneBase = 17
)

// RecencyWindow is the lookback used to detect accidental resubmission.
const RecencyWindow = 2 * time.Minute

// Empreendedor is the persisted entrepreneur record.
type Empreendedor struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`

	Email                 *string    `json:"email"`
	ComunidadeOriginadora *string    `json:"comunidade_originadora"`
	DataInscricao         *time.Time `json:"data_inscricao"`

	Apelido            *string `json:"apelido"`
	CPF                *string `json:"cpf"`
	Cidade             *string `json:"cidade"`
	Estado             *string `json:"estado"`
	Idade              *string `json:"idade"`
	Genero             *string `json:"genero"`
	RacaCor            *string `json:"raca_cor"`
	Escolaridade       *string `json:"escolaridade"`
	FaixaRenda         *string `json:"faixa_renda"`
	FonteRenda         *string `json:"fonte_renda"`
	TempoFuncionamento *string `json:"tempo_funcionamento"`
	SegmentoAtuacao    *string `json:"segmento_atuacao"`
	SegmentoOutros     *string `json:"segmento_outros"`
	OrganizacaoStone   *string `json:"organizacao_stone"`
	FormularioTipo     *string `json:"formulario_tipo"`

	LudosID            *int64     `json:"ludos_id"`
	LudosLogin         *string    `json:"ludos_login"`
	LudosStatus        *string    `json:"ludos_status"`
	LudosPontos        int        `json:"ludos_pontos"`
	LudosMoedas        int        `json:"ludos_moedas"`
	LudosNivel         int        `json:"ludos_nivel"`
	LudosPrimeiroLogin *time.Time `json:"ludos_primeiro_login"`
	LudosUltimoLogin   *time.Time `json:"ludos_ultimo_login"`

	MGMUserName         *string    `json:"mgm_user_name"`
	MGMWhatsapp         *string    `json:"mgm_whatsapp"`
	MGMTotalMensagens   int        `json:"mgm_total_mensagens"`
	MGMTotalReacoes     int        `json:"mgm_total_reacoes"`
	MGMTotalInteracoes  int        `json:"mgm_total_interacoes"`
	MGMUltimaMensagem   *time.Time `json:"mgm_ultima_mensagem"`
	MGMUltimaReacao     *time.Time `json:"mgm_ultima_reacao"`
	MGMEngajamentoPerct float64    `json:"mgm_engajamento_percent"`

	EstaNaComunidade    bool `json:"esta_na_comunidade"`
	EstaNoGrupoMentoria bool `json:"esta_no_grupo_mentoria"`
	EstaNoPapoImpulso   bool `json:"esta_no_papo_impulso"`
	InteracaoNosGrupos  int  `json:"interacao_nos_grupos"`
	AtivoNaLudos        bool `json:"ativo_na_ludos"`
	FazendoMentoria     bool `json:"fazendo_mentoria"`
	SolicitouCredito    bool `json:"solicitou_credito"`

	NPSGeral    *int `json:"nps_geral"`
	NPSMentoria *int `json:"nps_mentoria"`
	NPSLudos    *int `json:"nps_ludos"`
}

// CreateEmpreendedor is the normalized create request handed to the store.
type CreateEmpreendedor struct {
	Nome     string
	Telefone string

	Email                 *string
	ComunidadeOriginadora *string
	DataInscricao         *time.Time

	Apelido            *string
	CPF                *string
	Cidade             *string
	Estado             *string
	Idade              *string
	Genero             *string
	RacaCor            *string
	Escolaridade       *string
	FaixaRenda         *string
	FonteRenda         *string
	TempoFuncionamento *string
	SegmentoAtuacao    *string
	SegmentoOutros     *string
	OrganizacaoStone   *string
	FormularioTipo     *string

	LudosID            *int64
	LudosLogin         *string
	LudosStatus        *string
	LudosPontos        int
	LudosMoedas        int
	LudosNivel         int
	LudosPrimeiroLogin *time.Time
	LudosUltimoLogin   *time.Time

	MGMUserName         *string
	MGMWhatsapp         *string
	MGMTotalMensagens   int
	MGMTotalReacoes     int
	MGMTotalInteracoes  int
	MGMUltimaMensagem   *time.Time
	MGMUltimaReacao     *time.Time
	MGMEngajamentoPerct float64

	EstaNaComunidade    bool
	EstaNoGrupoMentoria bool
	EstaNoPapoImpulso   bool
	InteracaoNosGrupos  int
	AtivoNaLudos        bool
	FazendoMentoria     bool
	SolicitouCredito    bool

	NPSGeral    *int
	NPSMentoria *int
	NPSLudos    *int
}

// UpdateEmpreendedor is a partial update: nil means "leave unchanged".
type UpdateEmpreendedor struct {
	Nome     *string `json:"nome"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
	Apelido  *string `json:"apelido"`
	Cidade   *string `json:"cidade"`
	Estado   *string `json:"estado"`

	EstaNaComunidade    *bool `json:"esta_na_comunidade"`
	EstaNoGrupoMentoria *bool `json:"esta_no_grupo_mentoria"`
	EstaNoPapoImpulso   *bool `json:"esta_no_papo_impulso"`
	AtivoNaLudos        *bool `json:"ativo_na_ludos"`
	FazendoMentoria     *bool `json:"fazendo_mentoria"`
	SolicitouCredito    *bool `json:"solicitou_credito"`

	NPSGeral    *int `json:"nps_geral"`
	NPSMentoria *int `json:"nps_mentoria"`
	NPSLudos    *int `json:"nps_ludos"`
}

// SearchFilter holds the conjunctive search predicates. Zero values mean
// "no filter" except the booleans, which use pointers.
type SearchFilter struct {
	Nome                  string     `json:"nome"`
	Telefone              string     `json:"telefone"`
	Email                 string     `json:"email"`
	CPF                   string     `json:"cpf"`
	Cidade                string     `json:"cidade"`
	Estado                string     `json:"estado"`
	ComunidadeOriginadora string     `json:"comunidade_originadora"`
	FormularioTipo        string     `json:"formulario_tipo"`
	DataInscricaoInicio   *time.Time `json:"data_inscricao_inicio"`
	DataInscricaoFim      *time.Time `json:"data_inscricao_fim"`
	AtivoNaLudos          *bool      `json:"ativo_na_ludos"`
	FazendoMentoria       *bool      `json:"fazendo_mentoria"`
	Page                  int        `json:"page"`
	PageSize              int        `json:"page_size"`
}

// Normalize clamps pagination to a 1-indexed page and a page size in [1,100].
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Stats is the aggregate snapshot over all records. The three NPS means are
// independent averages over the non-null subset of each score; they are nil
// when no record carries that score.
type Stats struct {
	TotalEmpreendedores int64            `json:"total_empreendedores"`
	TotalPorComunidade  map[string]int64 `json:"total_por_comunidade"`
	TotalPorEstado      map[string]int64 `json:"total_por_estado"`
	TotalPorSegmento    map[string]int64 `json:"total_por_segmento"`
	TotalAtivosLudos    int64            `json:"total_ativos_ludos"`
	TotalEmMentoria     int64            `json:"total_em_mentoria"`
	MediaNPSGeral       *float64         `json:"media_nps_geral"`
	MediaNPSMentoria    *float64         `json:"media_nps_mentoria"`
	MediaNPSLudos       *float64         `json:"media_nps_ludos"`
}

// Truncate trims a string and cuts it at max bytes without splitting a
// multi-byte rune, so truncated values stay valid UTF-8. Empty after
// trimming yields the empty string.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	end := max
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}

// TruncatePtr applies Truncate to an optional string, mapping empty results
// to nil so blank form answers stay NULL in storage.
func TruncatePtr(s *string, max int) *string {
	if s == nil {
		return nil
	}
	t := Truncate(*s, max)
	if t == "" {
		return nil
	}
	return &t
}
