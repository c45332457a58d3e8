package ingest

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/impulso-stone/webhook-service/internal/store"
)

// Defaults stamped onto every record created through the webhook path.
const (
	DefaultComunidade     = "Impulso Stone"
	DefaultFormularioTipo = "Webhook Jotform"
)

// enrollmentLayouts are tried in order when an explicit enrollment date
// string is supplied (administrative import path). The last layout covers
// the form builder's textual format, e.g. "Oct. 10, 2025".
var enrollmentLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"Jan. 2, 2006",
}

// Clock supplies the time used to stamp enrollment dates.
type Clock interface {
	Now() time.Time
}

// Normalizer derives a create request from a canonical FieldSet.
type Normalizer struct {
	clock  Clock
	logger *zap.Logger
}

// NewNormalizer constructs a Normalizer.
func NewNormalizer(clock Clock, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{clock: clock, logger: logger}
}

// Validate is the fast-reject gate: a payload is minimally valid iff some
// name-bearing key and some phone-bearing key were present, regardless of
// value quality. A key carrying an unusable value passes here and is caught
// during normalization instead. The returned error carries the producer's
// key list.
func (n *Normalizer) Validate(fs FieldSet) error {
	missingName := !fs.NameKeySeen && fs.NameParts == nil && fs.Name == nil
	missingPhone := !fs.PhoneKeySeen && fs.PhoneParts == nil && fs.Phone == nil
	if missingName || missingPhone {
		return &InvalidPayloadError{
			MissingName:  missingName,
			MissingPhone: missingPhone,
			Keys:         fs.SourceKeys,
		}
	}
	return nil
}

// Normalize extracts the mandatory fields, derives the optional ones and
// returns a create request with the webhook-path defaults applied.
func (n *Normalizer) Normalize(fs FieldSet) (store.CreateEmpreendedor, error) {
	nome, err := n.fullName(fs)
	if err != nil {
		return store.CreateEmpreendedor{}, err
	}
	telefone, err := n.phone(fs)
	if err != nil {
		return store.CreateEmpreendedor{}, err
	}

	now := n.clock.Now()
	comunidade := DefaultComunidade
	formularioTipo := DefaultFormularioTipo

	req := store.CreateEmpreendedor{
		Nome:                  nome,
		Telefone:              telefone,
		Email:                 normalizeEmail(fs.Email),
		ComunidadeOriginadora: &comunidade,
		DataInscricao:         &now,
		Apelido:               trimPtr(fs.Apelido),
		CPF:                   CleanCPF(fs.CPF),
		Cidade:                trimPtr(fs.Cidade),
		Estado:                trimPtr(fs.Estado),
		Idade:                 trimPtr(fs.Idade),
		Genero:                trimPtr(fs.Genero),
		RacaCor:               trimPtr(fs.RacaCor),
		Escolaridade:          trimPtr(fs.Escolaridade),
		FaixaRenda:            trimPtr(fs.FaixaRenda),
		FonteRenda:            incomeSources(fs),
		TempoFuncionamento:    trimPtr(fs.TempoFuncionamento),
		SegmentoAtuacao:       trimPtr(fs.SegmentoAtuacao),
		SegmentoOutros:        trimPtr(fs.SegmentoOutros),
		OrganizacaoStone:      trimPtr(fs.OrganizacaoStone),
		FormularioTipo:        &formularioTipo,
		LudosNivel:            1,
	}
	return req, nil
}

// ParseEnrollmentDate parses an explicit enrollment date string, trying the
// known layouts in order and falling back to the current time with a warning
// when none match.
func (n *Normalizer) ParseEnrollmentDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return n.clock.Now()
	}
	for _, layout := range enrollmentLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	n.logger.Warn("could not parse enrollment date, using current time",
		zap.String("value", value))
	return n.clock.Now()
}

// fullName resolves the nested first/last object first, then the flat string.
func (n *Normalizer) fullName(fs FieldSet) (string, error) {
	if fs.NameParts != nil {
		first := strings.TrimSpace(fs.NameParts.First)
		last := strings.TrimSpace(fs.NameParts.Last)
		full := strings.TrimSpace(fmt.Sprintf("%s %s", first, last))
		if full != "" {
			return full, nil
		}
	}
	if fs.Name != nil {
		if trimmed := strings.TrimSpace(*fs.Name); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", &MissingFieldError{Field: "nome"}
}

// phone resolves the nested area/number object first, then the flat string.
func (n *Normalizer) phone(fs FieldSet) (string, error) {
	if fs.PhoneParts != nil {
		area := strings.TrimSpace(fs.PhoneParts.Area)
		number := strings.TrimSpace(fs.PhoneParts.Phone)
		if area != "" || number != "" {
			return fmt.Sprintf("(%s) %s", area, number), nil
		}
	}
	if fs.Phone != nil {
		if trimmed := strings.TrimSpace(*fs.Phone); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", &MissingFieldError{Field: "telefone"}
}

// CleanCPF strips every non-digit character and truncates to 14 characters.
// An input that is empty after stripping yields nil. Cleaning an already
// clean value returns it unchanged.
func CleanCPF(cpf *string) *string {
	if cpf == nil {
		return nil
	}
	var b strings.Builder
	for _, r := range *cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return nil
	}
	if len(digits) > store.MaxCPF {
		digits = digits[:store.MaxCPF]
	}
	return &digits
}

// incomeSources joins a list-shaped answer with "; "; a string-shaped answer
// passes through trimmed.
func incomeSources(fs FieldSet) *string {
	if fs.FontesRenda != nil {
		items := make([]string, 0, len(fs.FontesRenda))
		for _, item := range fs.FontesRenda {
			items = append(items, strings.TrimSpace(item))
		}
		joined := strings.Join(items, "; ")
		return &joined
	}
	return trimPtr(fs.FonteRenda)
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
