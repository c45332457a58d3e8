// Package postgres provides Postgres-backed persistence implementations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impulso-stone/webhook-service/internal/store"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// EntrepreneurStoreConfig controls the Postgres connection pool used for
// entrepreneur rows.
type EntrepreneurStoreConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type clock interface {
	Now() time.Time
}

// EntrepreneurStore implements store.Repository on Postgres.
type EntrepreneurStore struct {
	pool  pgxPool
	table string
	clock clock
}

// columns lists every column after id, in the order the scan helpers expect.
const columns = `nome, telefone, email, comunidade_originadora, data_inscricao,
	apelido, cpf, cidade, estado, idade, genero, raca_cor, escolaridade,
	faixa_renda, fonte_renda, tempo_funcionamento, segmento_atuacao,
	segmento_outros, organizacao_stone, formulario_tipo,
	ludos_id, ludos_login, ludos_status, ludos_pontos, ludos_moedas,
	ludos_nivel, ludos_primeiro_login, ludos_ultimo_login,
	mgm_user_name, mgm_whatsapp, mgm_total_mensagens, mgm_total_reacoes,
	mgm_total_interacoes, mgm_ultima_mensagem, mgm_ultima_reacao,
	mgm_engajamento_percentual,
	esta_na_comunidade, esta_no_grupo_mentoria, esta_no_papo_impulso,
	interacao_nos_grupos, ativo_na_ludos, fazendo_mentoria, solicitou_credito,
	nps_geral, nps_mentoria, nps_ludos`

const placeholders = `$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,
	$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,
	$35,$36,$37,$38,$39,$40,$41,$42,$43,$44,$45,$46`

// NewEntrepreneurStore creates a Postgres-backed store using the provided config.
func NewEntrepreneurStore(ctx context.Context, cfg EntrepreneurStoreConfig, clk clock) (*EntrepreneurStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "empreendedores"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &EntrepreneurStore{pool: pool, table: table, clock: clk}, nil
}

// NewEntrepreneurStoreWithPool constructs a store from an existing pool
// (primarily for testing).
func NewEntrepreneurStoreWithPool(pool pgxPool, table string, clk clock) (*EntrepreneurStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "empreendedores"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &EntrepreneurStore{pool: pool, table: table, clock: clk}, nil
}

// Close releases the underlying pool resources.
func (s *EntrepreneurStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// Ping reports whether the database is reachable.
func (s *EntrepreneurStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Create inserts a new entrepreneur row. The duplicate guard and the phone
// collision renamer both run inside a single transaction so concurrent
// submissions against the same phone serialize on the database.
func (s *EntrepreneurStore) Create(ctx context.Context, req store.CreateEmpreendedor) (store.Empreendedor, error) {
	req = applyBudgets(req)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return store.Empreendedor{}, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkRecent(ctx, tx, req); err != nil {
		return store.Empreendedor{}, err
	}
	telefone, err := s.resolveTelefone(ctx, tx, req.Telefone)
	if err != nil {
		return store.Empreendedor{}, err
	}
	req.Telefone = telefone

	query := fmt.Sprintf(`
INSERT INTO %s (%s) VALUES (%s) RETURNING id`, s.table, columns, placeholders)

	var id int64
	if err := tx.QueryRow(ctx, query, createArgs(req)...).Scan(&id); err != nil {
		return store.Empreendedor{}, fmt.Errorf("insert empreendedor: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return store.Empreendedor{}, fmt.Errorf("commit create: %w", err)
	}
	return recordFromCreate(id, req), nil
}

// checkRecent rejects a resubmission of the same phone within the recency
// window when it also repeats the supplied tax id or email.
func (s *EntrepreneurStore) checkRecent(ctx context.Context, tx pgx.Tx, req store.CreateEmpreendedor) error {
	if req.CPF == nil && req.Email == nil {
		return nil
	}
	query := fmt.Sprintf(`
SELECT id, cpf, email FROM %s
WHERE telefone = $1 AND data_inscricao >= $2
ORDER BY id DESC`, s.table)

	since := s.clock.Now().Add(-store.RecencyWindow)
	rows, err := tx.Query(ctx, query, req.Telefone, since)
	if err != nil {
		return fmt.Errorf("query recent submissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			cpf   *string
			email *string
		)
		if err := rows.Scan(&id, &cpf, &email); err != nil {
			return fmt.Errorf("scan recent submission: %w", err)
		}
		if matchPtr(req.CPF, cpf) || matchPtr(req.Email, email) {
			return &store.DuplicateError{ExistingID: id}
		}
	}
	return rows.Err()
}

func matchPtr(want, got *string) bool {
	return want != nil && got != nil && *want == *got
}

// resolveTelefone returns a phone value free of exact collisions, appending a
// numeric suffix to a truncated base when necessary.
func (s *EntrepreneurStore) resolveTelefone(ctx context.Context, tx pgx.Tx, telefone string) (string, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE telefone = $1)`, s.table)

	taken, err := s.telefoneTaken(ctx, tx, query, telefone)
	if err != nil {
		return "", err
	}
	if !taken {
		return telefone, nil
	}

	base := store.Truncate(telefone, store.TelefoneBase)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if len(candidate) > store.MaxTelefone {
			return "", store.ErrTelefoneExhausted
		}
		taken, err := s.telefoneTaken(ctx, tx, query, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func (s *EntrepreneurStore) telefoneTaken(ctx context.Context, tx pgx.Tx, query, telefone string) (bool, error) {
	var taken bool
	if err := tx.QueryRow(ctx, query, telefone).Scan(&taken); err != nil {
		return false, fmt.Errorf("check telefone collision: %w", err)
	}
	return taken, nil
}

// GetByID fetches a single row by primary key.
func (s *EntrepreneurStore) GetByID(ctx context.Context, id int64) (store.Empreendedor, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, columns, s.table)
	return s.getOne(ctx, query, id)
}

// GetByTelefone fetches a single row by exact phone match.
func (s *EntrepreneurStore) GetByTelefone(ctx context.Context, telefone string) (store.Empreendedor, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE telefone = $1`, columns, s.table)
	return s.getOne(ctx, query, telefone)
}

// GetByEmail fetches a single row by exact email match.
func (s *EntrepreneurStore) GetByEmail(ctx context.Context, email string) (store.Empreendedor, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE email = $1`, columns, s.table)
	return s.getOne(ctx, query, email)
}

// GetByCPF fetches a single row by exact tax id match.
func (s *EntrepreneurStore) GetByCPF(ctx context.Context, cpf string) (store.Empreendedor, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE cpf = $1`, columns, s.table)
	return s.getOne(ctx, query, cpf)
}

func (s *EntrepreneurStore) getOne(ctx context.Context, query string, arg any) (store.Empreendedor, error) {
	e, err := scanEmpreendedor(s.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Empreendedor{}, store.ErrNotFound
	}
	if err != nil {
		return store.Empreendedor{}, fmt.Errorf("query empreendedor: %w", err)
	}
	return e, nil
}

// Search runs the conjunctive filter query, returning the matching page and
// the total count across all pages.
func (s *EntrepreneurStore) Search(ctx context.Context, filter store.SearchFilter) ([]store.Empreendedor, int64, error) {
	filter.Normalize()
	where, args := buildWhere(filter)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, s.table, where)
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count empreendedores: %w", err)
	}

	pageQuery := fmt.Sprintf(`SELECT id, %s FROM %s%s ORDER BY id LIMIT $%d OFFSET $%d`,
		columns, s.table, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := s.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search empreendedores: %w", err)
	}
	defer rows.Close()

	results := make([]store.Empreendedor, 0, filter.PageSize)
	for rows.Next() {
		e, err := scanEmpreendedor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan empreendedor: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search empreendedores: %w", err)
	}
	return results, total, nil
}

func buildWhere(filter store.SearchFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Nome != "" {
		add("nome ILIKE $%d", "%"+filter.Nome+"%")
	}
	if filter.Telefone != "" {
		add("telefone LIKE $%d", "%"+filter.Telefone+"%")
	}
	if filter.Email != "" {
		add("email ILIKE $%d", "%"+filter.Email+"%")
	}
	if filter.CPF != "" {
		add("cpf = $%d", filter.CPF)
	}
	if filter.Cidade != "" {
		add("cidade ILIKE $%d", "%"+filter.Cidade+"%")
	}
	if filter.Estado != "" {
		add("estado = $%d", filter.Estado)
	}
	if filter.ComunidadeOriginadora != "" {
		add("comunidade_originadora = $%d", filter.ComunidadeOriginadora)
	}
	if filter.FormularioTipo != "" {
		add("formulario_tipo = $%d", filter.FormularioTipo)
	}
	if filter.DataInscricaoInicio != nil {
		add("data_inscricao >= $%d", *filter.DataInscricaoInicio)
	}
	if filter.DataInscricaoFim != nil {
		add("data_inscricao <= $%d", *filter.DataInscricaoFim)
	}
	if filter.AtivoNaLudos != nil {
		add("ativo_na_ludos = $%d", *filter.AtivoNaLudos)
	}
	if filter.FazendoMentoria != nil {
		add("fazendo_mentoria = $%d", *filter.FazendoMentoria)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update applies a partial update; nil fields are left unchanged.
func (s *EntrepreneurStore) Update(ctx context.Context, id int64, updates store.UpdateEmpreendedor) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, arg any) {
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if updates.Nome != nil {
		set("nome", store.Truncate(*updates.Nome, store.MaxNome))
	}
	if updates.Telefone != nil {
		set("telefone", store.Truncate(*updates.Telefone, store.MaxTelefone))
	}
	if updates.Email != nil {
		set("email", store.TruncatePtr(updates.Email, store.MaxEmail))
	}
	if updates.Apelido != nil {
		set("apelido", store.TruncatePtr(updates.Apelido, store.MaxApelido))
	}
	if updates.Cidade != nil {
		set("cidade", store.TruncatePtr(updates.Cidade, store.MaxCidade))
	}
	if updates.Estado != nil {
		set("estado", store.TruncatePtr(updates.Estado, store.MaxEstado))
	}
	if updates.EstaNaComunidade != nil {
		set("esta_na_comunidade", *updates.EstaNaComunidade)
	}
	if updates.EstaNoGrupoMentoria != nil {
		set("esta_no_grupo_mentoria", *updates.EstaNoGrupoMentoria)
	}
	if updates.EstaNoPapoImpulso != nil {
		set("esta_no_papo_impulso", *updates.EstaNoPapoImpulso)
	}
	if updates.AtivoNaLudos != nil {
		set("ativo_na_ludos", *updates.AtivoNaLudos)
	}
	if updates.FazendoMentoria != nil {
		set("fazendo_mentoria", *updates.FazendoMentoria)
	}
	if updates.SolicitouCredito != nil {
		set("solicitou_credito", *updates.SolicitouCredito)
	}
	if updates.NPSGeral != nil {
		set("nps_geral", *updates.NPSGeral)
	}
	if updates.NPSMentoria != nil {
		set("nps_mentoria", *updates.NPSMentoria)
	}
	if updates.NPSLudos != nil {
		set("nps_ludos", *updates.NPSLudos)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING id`,
		s.table, strings.Join(sets, ", "), len(args))

	var updated int64
	err := s.pool.QueryRow(ctx, query, args...).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update empreendedor: %w", err)
	}
	return nil
}

// Delete removes a row by primary key.
func (s *EntrepreneurStore) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete empreendedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Stats computes the aggregate snapshot. Each NPS mean averages only the rows
// that carry that score and stays nil when none do.
func (s *EntrepreneurStore) Stats(ctx context.Context) (store.Stats, error) {
	stats := store.Stats{
		TotalPorComunidade: map[string]int64{},
		TotalPorEstado:     map[string]int64{},
		TotalPorSegmento:   map[string]int64{},
	}

	query := fmt.Sprintf(`
SELECT COUNT(*),
	COUNT(*) FILTER (WHERE ativo_na_ludos),
	COUNT(*) FILTER (WHERE fazendo_mentoria),
	AVG(nps_geral)::float8,
	AVG(nps_mentoria)::float8,
	AVG(nps_ludos)::float8
FROM %s`, s.table)

	err := s.pool.QueryRow(ctx, query).Scan(
		&stats.TotalEmpreendedores,
		&stats.TotalAtivosLudos,
		&stats.TotalEmMentoria,
		&stats.MediaNPSGeral,
		&stats.MediaNPSMentoria,
		&stats.MediaNPSLudos,
	)
	if err != nil {
		return store.Stats{}, fmt.Errorf("query totals: %w", err)
	}

	groups := []struct {
		column string
		dest   map[string]int64
	}{
		{"comunidade_originadora", stats.TotalPorComunidade},
		{"estado", stats.TotalPorEstado},
		{"segmento_atuacao", stats.TotalPorSegmento},
	}
	for _, g := range groups {
		if err := s.groupCounts(ctx, g.column, g.dest); err != nil {
			return store.Stats{}, err
		}
	}
	return stats, nil
}

func (s *EntrepreneurStore) groupCounts(ctx context.Context, column string, dest map[string]int64) error {
	query := fmt.Sprintf(`
SELECT %s, COUNT(*) FROM %s WHERE %s IS NOT NULL GROUP BY %s`,
		column, s.table, column, column)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("group by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan %s group: %w", column, err)
		}
		dest[key] = count
	}
	return rows.Err()
}

// applyBudgets enforces the column length budgets on a create request.
func applyBudgets(req store.CreateEmpreendedor) store.CreateEmpreendedor {
	req.Nome = store.Truncate(req.Nome, store.MaxNome)
	req.Telefone = store.Truncate(req.Telefone, store.MaxTelefone)
	req.Email = store.TruncatePtr(req.Email, store.MaxEmail)
	req.ComunidadeOriginadora = store.TruncatePtr(req.ComunidadeOriginadora, store.MaxComunidade)
	req.Apelido = store.TruncatePtr(req.Apelido, store.MaxApelido)
	req.CPF = store.TruncatePtr(req.CPF, store.MaxCPF)
	req.Cidade = store.TruncatePtr(req.Cidade, store.MaxCidade)
	req.Estado = store.TruncatePtr(req.Estado, store.MaxEstado)
	req.Idade = store.TruncatePtr(req.Idade, store.MaxIdade)
	req.Genero = store.TruncatePtr(req.Genero, store.MaxGenero)
	req.RacaCor = store.TruncatePtr(req.RacaCor, store.MaxRacaCor)
	req.Escolaridade = store.TruncatePtr(req.Escolaridade, store.MaxEscolaridade)
	req.FaixaRenda = store.TruncatePtr(req.FaixaRenda, store.MaxFaixaRenda)
	req.TempoFuncionamento = store.TruncatePtr(req.TempoFuncionamento, store.MaxTempoFuncionamento)
	req.SegmentoAtuacao = store.TruncatePtr(req.SegmentoAtuacao, store.MaxSegmentoAtuacao)
	req.SegmentoOutros = store.TruncatePtr(req.SegmentoOutros, store.MaxSegmentoOutros)
	req.OrganizacaoStone = store.TruncatePtr(req.OrganizacaoStone, store.MaxOrganizacaoStone)
	req.FormularioTipo = store.TruncatePtr(req.FormularioTipo, store.MaxFormularioTipo)
	req.LudosLogin = store.TruncatePtr(req.LudosLogin, store.MaxLudosLogin)
	req.LudosStatus = store.TruncatePtr(req.LudosStatus, store.MaxLudosStatus)
	req.MGMUserName = store.TruncatePtr(req.MGMUserName, store.MaxMGMUserName)
	req.MGMWhatsapp = store.TruncatePtr(req.MGMWhatsapp, store.MaxMGMWhatsapp)
	return req
}

func createArgs(req store.CreateEmpreendedor) []any {
	return []any{
		req.Nome,
		req.Telefone,
		req.Email,
		req.ComunidadeOriginadora,
		req.DataInscricao,
		req.Apelido,
		req.CPF,
		req.Cidade,
		req.Estado,
		req.Idade,
		req.Genero,
		req.RacaCor,
		req.Escolaridade,
		req.FaixaRenda,
		req.FonteRenda,
		req.TempoFuncionamento,
		req.SegmentoAtuacao,
		req.SegmentoOutros,
		req.OrganizacaoStone,
		req.FormularioTipo,
		req.LudosID,
		req.LudosLogin,
		req.LudosStatus,
		req.LudosPontos,
		req.LudosMoedas,
		req.LudosNivel,
		req.LudosPrimeiroLogin,
		req.LudosUltimoLogin,
		req.MGMUserName,
		req.MGMWhatsapp,
		req.MGMTotalMensagens,
		req.MGMTotalReacoes,
		req.MGMTotalInteracoes,
		req.MGMUltimaMensagem,
		req.MGMUltimaReacao,
		req.MGMEngajamentoPerct,
		req.EstaNaComunidade,
		req.EstaNoGrupoMentoria,
		req.EstaNoPapoImpulso,
		req.InteracaoNosGrupos,
		req.AtivoNaLudos,
		req.FazendoMentoria,
		req.SolicitouCredito,
		req.NPSGeral,
		req.NPSMentoria,
		req.NPSLudos,
	}
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

func scanEmpreendedor(row pgx.Row) (store.Empreendedor, error) {
	var e store.Empreendedor
	err := row.Scan(
		&e.ID,
		&e.Nome,
		&e.Telefone,
		&e.Email,
		&e.ComunidadeOriginadora,
		&e.DataInscricao,
		&e.Apelido,
		&e.CPF,
		&e.Cidade,
		&e.Estado,
		&e.Idade,
		&e.Genero,
		&e.RacaCor,
		&e.Escolaridade,
		&e.FaixaRenda,
		&e.FonteRenda,
		&e.TempoFuncionamento,
		&e.SegmentoAtuacao,
		&e.SegmentoOutros,
		&e.OrganizacaoStone,
		&e.FormularioTipo,
		&e.LudosID,
		&e.LudosLogin,
		&e.LudosStatus,
		&e.LudosPontos,
		&e.LudosMoedas,
		&e.LudosNivel,
		&e.LudosPrimeiroLogin,
		&e.LudosUltimoLogin,
		&e.MGMUserName,
		&e.MGMWhatsapp,
		&e.MGMTotalMensagens,
		&e.MGMTotalReacoes,
		&e.MGMTotalInteracoes,
		&e.MGMUltimaMensagem,
		&e.MGMUltimaReacao,
		&e.MGMEngajamentoPerct,
		&e.EstaNaComunidade,
		&e.EstaNoGrupoMentoria,
		&e.EstaNoPapoImpulso,
		&e.InteracaoNosGrupos,
		&e.AtivoNaLudos,
		&e.FazendoMentoria,
		&e.SolicitouCredito,
		&e.NPSGeral,
		&e.NPSMentoria,
		&e.NPSLudos,
	)
	if err != nil {
		return store.Empreendedor{}, err
	}
	return e, nil
}
