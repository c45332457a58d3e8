// Package memory provides an in-memory store implementation for
// development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/impulso-stone/webhook-service/internal/store"
)

// EntrepreneurStore implements store.Repository on a mutex-guarded map. It
// applies the same duplicate policies as the Postgres store so handler tests
// exercise the full create semantics.
type EntrepreneurStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]store.Empreendedor
	clock   interface{ Now() time.Time }
}

// NewEntrepreneurStore constructs an EntrepreneurStore.
func NewEntrepreneurStore(clock interface{ Now() time.Time }) *EntrepreneurStore {
	return &EntrepreneurStore{
		nextID:  1,
		records: make(map[int64]store.Empreendedor),
		clock:   clock,
	}
}

// Create inserts a record, enforcing the recency guard and the phone
// collision renamer.
func (s *EntrepreneurStore) Create(_ context.Context, req store.CreateEmpreendedor) (store.Empreendedor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.Nome = store.Truncate(req.Nome, store.MaxNome)
	req.Telefone = store.Truncate(req.Telefone, store.MaxTelefone)

	if req.CPF != nil || req.Email != nil {
		since := s.clock.Now().Add(-store.RecencyWindow)
		for _, e := range s.sorted() {
			if e.Telefone != req.Telefone {
				continue
			}
			if e.DataInscricao == nil || e.DataInscricao.Before(since) {
				continue
			}
			if matchPtr(req.CPF, e.CPF) || matchPtr(req.Email, e.Email) {
				return store.Empreendedor{}, &store.DuplicateError{ExistingID: e.ID}
			}
		}
	}

	telefone := req.Telefone
	if s.telefoneTaken(telefone) {
		base := store.Truncate(telefone, store.TelefoneBase)
		resolved := ""
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s_%d", base, n)
			if len(candidate) > store.MaxTelefone {
				return store.Empreendedor{}, store.ErrTelefoneExhausted
			}
			if !s.telefoneTaken(candidate) {
				resolved = candidate
				break
			}
		}
		telefone = resolved
	}
	req.Telefone = telefone

	e := recordFromCreate(s.nextID, req)
	s.records[e.ID] = e
	s.nextID++
	return e, nil
}

// GetByID fetches a record by primary key.
func (s *EntrepreneurStore) GetByID(_ context.Context, id int64) (store.Empreendedor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return store.Empreendedor{}, store.ErrNotFound
	}
	return e, nil
}

// GetByTelefone fetches a record by exact phone match.
func (s *EntrepreneurStore) GetByTelefone(_ context.Context, telefone string) (store.Empreendedor, error) {
	return s.findFirst(func(e store.Empreendedor) bool { return e.Telefone == telefone })
}

// GetByEmail fetches a record by exact email match.
func (s *EntrepreneurStore) GetByEmail(_ context.Context, email string) (store.Empreendedor, error) {
	return s.findFirst(func(e store.Empreendedor) bool {
		return e.Email != nil && *e.Email == email
	})
}

// GetByCPF fetches a record by exact tax id match.
func (s *EntrepreneurStore) GetByCPF(_ context.Context, cpf string) (store.Empreendedor, error) {
	return s.findFirst(func(e store.Empreendedor) bool {
		return e.CPF != nil && *e.CPF == cpf
	})
}

// Search applies the conjunctive filters and returns the requested page plus
// the total match count.
func (s *EntrepreneurStore) Search(_ context.Context, filter store.SearchFilter) ([]store.Empreendedor, int64, error) {
	filter.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]store.Empreendedor, 0)
	for _, e := range s.sorted() {
		if matchesFilter(e, filter) {
			matches = append(matches, e)
		}
	}
	total := int64(len(matches))

	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matches) {
		return []store.Empreendedor{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

// Update applies a partial update; nil fields are left unchanged.
func (s *EntrepreneurStore) Update(_ context.Context, id int64, updates store.UpdateEmpreendedor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[id]
	if !ok {
		return store.ErrNotFound
	}
	if updates.Nome != nil {
		e.Nome = store.Truncate(*updates.Nome, store.MaxNome)
	}
	if updates.Telefone != nil {
		e.Telefone = store.Truncate(*updates.Telefone, store.MaxTelefone)
	}
	if updates.Email != nil {
		e.Email = store.TruncatePtr(updates.Email, store.MaxEmail)
	}
	if updates.Apelido != nil {
		e.Apelido = store.TruncatePtr(updates.Apelido, store.MaxApelido)
	}
	if updates.Cidade != nil {
		e.Cidade = store.TruncatePtr(updates.Cidade, store.MaxCidade)
	}
	if updates.Estado != nil {
		e.Estado = store.TruncatePtr(updates.Estado, store.MaxEstado)
	}
	if updates.EstaNaComunidade != nil {
		e.EstaNaComunidade = *updates.EstaNaComunidade
	}
	if updates.EstaNoGrupoMentoria != nil {
		e.EstaNoGrupoMentoria = *updates.EstaNoGrupoMentoria
	}
	if updates.EstaNoPapoImpulso != nil {
		e.EstaNoPapoImpulso = *updates.EstaNoPapoImpulso
	}
	if updates.AtivoNaLudos != nil {
		e.AtivoNaLudos = *updates.AtivoNaLudos
	}
	if updates.FazendoMentoria != nil {
		e.FazendoMentoria = *updates.FazendoMentoria
	}
	if updates.SolicitouCredito != nil {
		e.SolicitouCredito = *updates.SolicitouCredito
	}
	if updates.NPSGeral != nil {
		e.NPSGeral = updates.NPSGeral
	}
	if updates.NPSMentoria != nil {
		e.NPSMentoria = updates.NPSMentoria
	}
	if updates.NPSLudos != nil {
		e.NPSLudos = updates.NPSLudos
	}
	s.records[id] = e
	return nil
}

// Delete removes a record by primary key.
func (s *EntrepreneurStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Stats computes the aggregate snapshot over the current records.
func (s *EntrepreneurStore) Stats(_ context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := store.Stats{
		TotalPorComunidade: map[string]int64{},
		TotalPorEstado:     map[string]int64{},
		TotalPorSegmento:   map[string]int64{},
	}
	var (
		geralN, mentoriaN, ludosN       int
		geralSum, mentoriaSum, ludosSum int
	)
	for _, e := range s.records {
		stats.TotalEmpreendedores++
		if e.AtivoNaLudos {
			stats.TotalAtivosLudos++
		}
		if e.FazendoMentoria {
			stats.TotalEmMentoria++
		}
		if e.ComunidadeOriginadora != nil {
			stats.TotalPorComunidade[*e.ComunidadeOriginadora]++
		}
		if e.Estado != nil {
			stats.TotalPorEstado[*e.Estado]++
		}
		if e.SegmentoAtuacao != nil {
			stats.TotalPorSegmento[*e.SegmentoAtuacao]++
		}
		if e.NPSGeral != nil {
			geralN++
			geralSum += *e.NPSGeral
		}
		if e.NPSMentoria != nil {
			mentoriaN++
			mentoriaSum += *e.NPSMentoria
		}
		if e.NPSLudos != nil {
			ludosN++
			ludosSum += *e.NPSLudos
		}
	}
	stats.MediaNPSGeral = mean(geralSum, geralN)
	stats.MediaNPSMentoria = mean(mentoriaSum, mentoriaN)
	stats.MediaNPSLudos = mean(ludosSum, ludosN)
	return stats, nil
}

func (s *EntrepreneurStore) findFirst(match func(store.Empreendedor) bool) (store.Empreendedor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sorted() {
		if match(e) {
			return e, nil
		}
	}
	return store.Empreendedor{}, store.ErrNotFound
}

// sorted returns the records ordered by id. Callers hold the lock.
func (s *EntrepreneurStore) sorted() []store.Empreendedor {
	out := make([]store.Empreendedor, 0, len(s.records))
	for _, e := range s.records {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *EntrepreneurStore) telefoneTaken(telefone string) bool {
	for _, e := range s.records {
		if e.Telefone == telefone {
			return true
		}
	}
	return false
}

func matchesFilter(e store.Empreendedor, f store.SearchFilter) bool {
	if f.Nome != "" && !containsFold(e.Nome, f.Nome) {
		return false
	}
	if f.Telefone != "" && !strings.Contains(e.Telefone, f.Telefone) {
		return false
	}
	if f.Email != "" && (e.Email == nil || !containsFold(*e.Email, f.Email)) {
		return false
	}
	if f.CPF != "" && (e.CPF == nil || *e.CPF != f.CPF) {
		return false
	}
	if f.Cidade != "" && (e.Cidade == nil || !containsFold(*e.Cidade, f.Cidade)) {
		return false
	}
	if f.Estado != "" && (e.Estado == nil || *e.Estado != f.Estado) {
		return false
	}
	if f.ComunidadeOriginadora != "" &&
		(e.ComunidadeOriginadora == nil || *e.ComunidadeOriginadora != f.ComunidadeOriginadora) {
		return false
	}
	if f.FormularioTipo != "" && (e.FormularioTipo == nil || *e.FormularioTipo != f.FormularioTipo) {
		return false
	}
	if f.DataInscricaoInicio != nil &&
		(e.DataInscricao == nil || e.DataInscricao.Before(*f.DataInscricaoInicio)) {
		return false
	}
	if f.DataInscricaoFim != nil &&
		(e.DataInscricao == nil || e.DataInscricao.After(*f.DataInscricaoFim)) {
		return false
	}
	if f.AtivoNaLudos != nil && e.AtivoNaLudos != *f.AtivoNaLudos {
		return false
	}
	if f.FazendoMentoria != nil && e.FazendoMentoria != *f.FazendoMentoria {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matchPtr(want, got *string) bool {
	return want != nil && got != nil && *want == *got
}

func mean(sum, n int) *float64 {
	if n == 0 {
		return nil
	}
	m := float64(sum) / float64(n)
	return &m
}

func recordFromCreate(id int64, req store.CreateEmpreendedor) store.Empreendedor {
	return store.Empreendedor{
		ID:                    id,
		Nome:                  req.Nome,
		Telefone:              req.Telefone,
		Email:                 req.Email,
		ComunidadeOriginadora: req.ComunidadeOriginadora,
		DataInscricao:         req.DataInscricao,
		Apelido:               req.Apelido,
		CPF:                   req.CPF,
		Cidade:                req.Cidade,
		Estado:                req.Estado,
		Idade:                 req.Idade,
		Genero:                req.Genero,
		RacaCor:               req.RacaCor,
		Escolaridade:          req.Escolaridade,
		FaixaRenda:            req.FaixaRenda,
		FonteRenda:            req.FonteRenda,
		TempoFuncionamento:    req.TempoFuncionamento,
		SegmentoAtuacao:       req.SegmentoAtuacao,
		SegmentoOutros:        req.SegmentoOutros,
		OrganizacaoStone:      req.OrganizacaoStone,
		FormularioTipo:        req.FormularioTipo,
		LudosID:               req.LudosID,
		LudosLogin:            req.LudosLogin,
		LudosStatus:           req.LudosStatus,
		LudosPontos:           req.LudosPontos,
		LudosMoedas:           req.LudosMoedas,
		LudosNivel:            req.LudosNivel,
		LudosPrimeiroLogin:    req.LudosPrimeiroLogin,
		LudosUltimoLogin:      req.LudosUltimoLogin,
		MGMUserName:           req.MGMUserName,
		MGMWhatsapp:           req.MGMWhatsapp,
		MGMTotalMensagens:     req.MGMTotalMensagens,
		MGMTotalReacoes:       req.MGMTotalReacoes,
		MGMTotalInteracoes:    req.MGMTotalInteracoes,
		MGMUltimaMensagem:     req.MGMUltimaMensagem,
		MGMUltimaReacao:       req.MGMUltimaReacao,
		MGMEngajamentoPerct:   req.MGMEngajamentoPerct,
		EstaNaComunidade:      req.EstaNaComunidade,
		EstaNoGrupoMentoria:   req.EstaNoGrupoMentoria,
		EstaNoPapoImpulso:     req.EstaNoPapoImpulso,
		InteracaoNosGrupos:    req.InteracaoNosGrupos,
		AtivoNaLudos:          req.AtivoNaLudos,
		FazendoMentoria:       req.FazendoMentoria,
		SolicitouCredito:      req.SolicitouCredito,
		NPSGeral:              req.NPSGeral,
		NPSMentoria:           req.NPSMentoria,
		NPSLudos:              req.NPSLudos,
	}
}
