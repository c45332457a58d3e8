package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/impulso-stone/webhook-service/internal/store"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestCreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	s := NewEntrepreneurStore(fixedClock{now: time.Now()})
	ctx := context.Background()

	a, err := s.Create(ctx, store.CreateEmpreendedor{Nome: "Ana", Telefone: "(11) 1"})
	require.NoError(t, err)
	b, err := s.Create(ctx, store.CreateEmpreendedor{Nome: "Bia", Telefone: "(11) 2"})
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)
}

func TestCreateRejectsRecentDuplicate(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0).UTC()
	s := NewEntrepreneurStore(fixedClock{now: now})
	ctx := context.Background()

	recent := now.Add(-time.Minute)
	first, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome:          "Ana",
		Telefone:      "(11) 987654321",
		Email:         strPtr("ana@example.com"),
		DataInscricao: &recent,
	})
	require.NoError(t, err)

	_, err = s.Create(ctx, store.CreateEmpreendedor{
		Nome:          "Ana",
		Telefone:      "(11) 987654321",
		Email:         strPtr("ana@example.com"),
		DataInscricao: &now,
	})
	var dup *store.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, first.ID, dup.ExistingID)
}

func TestCreateOldSubmissionGetsSuffixNotRejected(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0).UTC()
	s := NewEntrepreneurStore(fixedClock{now: now})
	ctx := context.Background()

	old := now.Add(-time.Hour)
	_, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome:          "Ana",
		Telefone:      "(11) 987654321",
		Email:         strPtr("ana@example.com"),
		DataInscricao: &old,
	})
	require.NoError(t, err)

	second, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome:          "Ana",
		Telefone:      "(11) 987654321",
		Email:         strPtr("ana@example.com"),
		DataInscricao: &now,
	})
	require.NoError(t, err)
	require.Equal(t, "(11) 987654321_1", second.Telefone)
}

func TestCreateWithoutIdentifiersNeverDuplicate(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0).UTC()
	s := NewEntrepreneurStore(fixedClock{now: now})
	ctx := context.Background()

	_, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome: "Ana", Telefone: "(11) 9", DataInscricao: &now,
	})
	require.NoError(t, err)

	second, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome: "Bia", Telefone: "(11) 9", DataInscricao: &now,
	})
	require.NoError(t, err)
	require.Equal(t, "(11) 9_1", second.Telefone)
}

func TestCreateTelefoneExhausted(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0).UTC()
	s := NewEntrepreneurStore(fixedClock{now: now})
	ctx := context.Background()

	telefone := "(11) 987654321-9999"
	base := telefone[:store.TelefoneBase]

	_, err := s.Create(ctx, store.CreateEmpreendedor{Nome: "Ana", Telefone: telefone})
	require.NoError(t, err)
	for n := 1; n <= 99; n++ {
		_, err := s.Create(ctx, store.CreateEmpreendedor{
			Nome:     "Ana",
			Telefone: fmt.Sprintf("%s_%d", base, n),
		})
		require.NoError(t, err)
	}

	_, err = s.Create(ctx, store.CreateEmpreendedor{Nome: "Ana", Telefone: telefone})
	require.ErrorIs(t, err, store.ErrTelefoneExhausted)
}

func TestGetBy(t *testing.T) {
	t.Parallel()

	s := NewEntrepreneurStore(fixedClock{now: time.Now()})
	ctx := context.Background()

	created, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome:     "Ana",
		Telefone: "(11) 987654321",
		Email:    strPtr("ana@example.com"),
		CPF:      strPtr("12345678900"),
	})
	require.NoError(t, err)

	byID, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, byID)

	byTel, err := s.GetByTelefone(ctx, "(11) 987654321")
	require.NoError(t, err)
	require.Equal(t, created.ID, byTel.ID)

	byEmail, err := s.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byCPF, err := s.GetByCPF(ctx, "12345678900")
	require.NoError(t, err)
	require.Equal(t, created.ID, byCPF.ID)

	_, err = s.GetByID(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearchFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	s := NewEntrepreneurStore(fixedClock{now: time.Now()})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, store.CreateEmpreendedor{
			Nome:     fmt.Sprintf("Ana %d", i),
			Telefone: fmt.Sprintf("(11) 90000000%d", i),
			Estado:   strPtr("SP"),
		})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome:     "Bruno",
		Telefone: "(21) 900000000",
		Estado:   strPtr("RJ"),
	})
	require.NoError(t, err)

	results, total, err := s.Search(ctx, store.SearchFilter{
		Nome:     "ana",
		Estado:   "SP",
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, results, 2)
	require.Equal(t, "Ana 2", results[0].Nome)
	require.Equal(t, "Ana 3", results[1].Nome)

	results, total, err = s.Search(ctx, store.SearchFilter{Page: 99, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.Empty(t, results)
}

func TestUpdatePartial(t *testing.T) {
	t.Parallel()

	s := NewEntrepreneurStore(fixedClock{now: time.Now()})
	ctx := context.Background()

	created, err := s.Create(ctx, store.CreateEmpreendedor{Nome: "Ana", Telefone: "(11) 9"})
	require.NoError(t, err)

	active := true
	err = s.Update(ctx, created.ID, store.UpdateEmpreendedor{
		Nome:         strPtr("Ana Lima"),
		AtivoNaLudos: &active,
		NPSGeral:     intPtr(9),
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Lima", got.Nome)
	require.True(t, got.AtivoNaLudos)
	require.NotNil(t, got.NPSGeral)
	require.Equal(t, 9, *got.NPSGeral)
	require.Equal(t, "(11) 9", got.Telefone, "untouched fields stay put")

	err = s.Update(ctx, 999, store.UpdateEmpreendedor{Nome: strPtr("x")})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := NewEntrepreneurStore(fixedClock{now: time.Now()})
	ctx := context.Background()

	created, err := s.Create(ctx, store.CreateEmpreendedor{Nome: "Ana", Telefone: "(11) 9"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, created.ID), store.ErrNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()

	s := NewEntrepreneurStore(fixedClock{now: time.Now()})
	ctx := context.Background()

	comunidade := "Impulso Stone"
	_, err := s.Create(ctx, store.CreateEmpreendedor{
		Nome: "Ana", Telefone: "(11) 1",
		ComunidadeOriginadora: &comunidade,
		Estado:                strPtr("SP"),
		SegmentoAtuacao:       strPtr("Alimentação"),
		AtivoNaLudos:          true,
		NPSGeral:              intPtr(10),
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, store.CreateEmpreendedor{
		Nome: "Bia", Telefone: "(11) 2",
		ComunidadeOriginadora: &comunidade,
		Estado:                strPtr("RJ"),
		FazendoMentoria:       true,
		NPSGeral:              intPtr(7),
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, store.CreateEmpreendedor{Nome: "Caio", Telefone: "(11) 3"})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalEmpreendedores)
	require.Equal(t, int64(1), stats.TotalAtivosLudos)
	require.Equal(t, int64(1), stats.TotalEmMentoria)
	require.Equal(t, int64(2), stats.TotalPorComunidade["Impulso Stone"])
	require.Equal(t, int64(1), stats.TotalPorEstado["SP"])
	require.Equal(t, int64(1), stats.TotalPorSegmento["Alimentação"])
	require.NotNil(t, stats.MediaNPSGeral)
	require.InDelta(t, 8.5, *stats.MediaNPSGeral, 0.0001)
	require.Nil(t, stats.MediaNPSMentoria)
	require.Nil(t, stats.MediaNPSLudos)
}
