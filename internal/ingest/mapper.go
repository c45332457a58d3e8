// Package ingest implements the payload normalization core: mapping the form
// builder's unstable payload shapes onto a canonical field set and deriving a
// create request from it.
package ingest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// rawRequestKey is the wrapper key under which the form builder nests the
// actual question/answer pairs as a JSON-encoded string.
const rawRequestKey = "rawRequest"

// rule maps a normalized-key predicate onto a FieldSet slot. Rules run in
// order and the first match wins; a key matching no rule is dropped.
type rule struct {
	slot  string
	match func(key string) bool
	apply func(fs *FieldSet, value any)
}

// Mapper translates an arbitrary submission payload into a FieldSet.
type Mapper struct {
	logger *zap.Logger
	rules  []rule
}

// NewMapper constructs a Mapper.
func NewMapper(logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{logger: logger, rules: buildRules()}
}

// Map decodes a JSON body (object or array) and maps it onto a FieldSet.
// Array payloads contribute their first element; an empty array yields
// ErrEmptyPayload. A body that is not JSON at all yields ErrMalformedBody so
// the caller can retry with a form-encoded parse.
func (m *Mapper) Map(body []byte) (FieldSet, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return FieldSet{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return FieldSet{}, ErrEmptyPayload
		}
		raw = list[0]
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return FieldSet{}, fmt.Errorf("%w: payload is not an object", ErrMalformedBody)
	}
	return m.MapObject(obj), nil
}

// MapObject maps an already-decoded payload object onto a FieldSet. When the
// object carries a rawRequest wrapper its nested pairs are used instead of
// the outer keys; a wrapper that fails to decode is logged and the outer keys
// are used as a fallback.
func (m *Mapper) MapObject(obj map[string]any) FieldSet {
	effective := obj
	if wrapped, ok := obj[rawRequestKey].(string); ok {
		var nested map[string]any
		if err := json.Unmarshal([]byte(wrapped), &nested); err != nil {
			m.logger.Warn("rawRequest decode failed, using outer keys",
				zap.Error(err))
		} else {
			effective = nested
		}
	}

	keys := make([]string, 0, len(effective))
	for k := range effective {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fs FieldSet
	fs.SourceKeys = keys
	for _, key := range keys {
		norm := normalizeKey(key)
		for _, r := range m.rules {
			if r.match(norm) {
				r.apply(&fs, effective[key])
				break
			}
		}
	}

	// Submission metadata lives on the wrapper itself, never on question keys.
	if id, ok := asString(obj["submissionID"]); ok {
		fs.SubmissionID = &id
	}
	if id, ok := asString(obj["formID"]); ok {
		fs.FormID = &id
	}
	return fs
}

// buildRules returns the ordered alias table. More specific substrings run
// before generic ones: "escolaridade" and "cidade" both contain "idade", and
// the segment-other question contains "segmentode".
func buildRules() []rule {
	return []rule{
		{slot: "nome", match: contains("nome"), apply: applyName},
		{slot: "email", match: contains("email"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Email })},
		{slot: "telefone", match: contains("telefone"), apply: applyPhone},
		{slot: "cpf", match: containsAny("cpf", "aqui"), apply: applyTo(func(fs *FieldSet) **string { return &fs.CPF })},
		{slot: "cidade", match: contains("cidade"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Cidade })},
		{slot: "estado", match: contains("estado"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Estado })},
		{slot: "escolaridade", match: contains("escolaridade"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Escolaridade })},
		{slot: "idade", match: contains("idade"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Idade })},
		{slot: "genero", match: contains("genero"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Genero })},
		{slot: "raca_cor", match: containsAny("raca", "cor"), apply: applyTo(func(fs *FieldSet) **string { return &fs.RacaCor })},
		{slot: "faixa_renda", match: allOf(contains("renda"), containsAny("insira", "faixa")), apply: applyTo(func(fs *FieldSet) **string { return &fs.FaixaRenda })},
		{slot: "fontes_renda", match: anyPred(contains("quaissao"), allOf(contains("fonte"), contains("renda"))), apply: applyIncomeSources},
		{slot: "tempo_funcionamento", match: contains("tempode"), apply: applyTo(func(fs *FieldSet) **string { return &fs.TempoFuncionamento })},
		{slot: "segmento_outros", match: contains("seoutros"), apply: applyTo(func(fs *FieldSet) **string { return &fs.SegmentoOutros })},
		{slot: "segmento_atuacao", match: contains("segmentode"), apply: applyTo(func(fs *FieldSet) **string { return &fs.SegmentoAtuacao })},
		{slot: "organizacao_stone", match: containsAny("organizacao", "insirauma58"), apply: applyTo(func(fs *FieldSet) **string { return &fs.OrganizacaoStone })},
		{slot: "apelido", match: contains("apelido"), apply: applyTo(func(fs *FieldSet) **string { return &fs.Apelido })},
	}
}

func contains(token string) func(string) bool {
	return func(key string) bool { return strings.Contains(key, token) }
}

func containsAny(tokens ...string) func(string) bool {
	return func(key string) bool {
		for _, t := range tokens {
			if strings.Contains(key, t) {
				return true
			}
		}
		return false
	}
}

func anyPred(preds ...func(string) bool) func(string) bool {
	return func(key string) bool {
		for _, p := range preds {
			if p(key) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(string) bool) func(string) bool {
	return func(key string) bool {
		for _, p := range preds {
			if !p(key) {
				return false
			}
		}
		return true
	}
}

func applyName(fs *FieldSet, value any) {
	fs.NameKeySeen = true
	if parts, ok := value.(map[string]any); ok {
		if _, hasFirst := parts["first"]; hasFirst && fs.NameParts == nil {
			first, _ := asString(parts["first"])
			last, _ := asString(parts["last"])
			fs.NameParts = &NameParts{First: first, Last: last}
		}
		return
	}
	if s, ok := asString(value); ok && fs.Name == nil {
		fs.Name = &s
	}
}

func applyPhone(fs *FieldSet, value any) {
	fs.PhoneKeySeen = true
	if parts, ok := value.(map[string]any); ok {
		area, hasArea := asString(parts["area"])
		number, hasNumber := asString(parts["phone"])
		if hasArea && hasNumber && fs.PhoneParts == nil {
			fs.PhoneParts = &PhoneParts{Area: area, Phone: number}
		}
		return
	}
	if s, ok := asString(value); ok && fs.Phone == nil {
		fs.Phone = &s
	}
}

func applyIncomeSources(fs *FieldSet, value any) {
	if list, ok := value.([]any); ok {
		if fs.FontesRenda != nil {
			return
		}
		items := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := asString(v); ok {
				items = append(items, s)
			}
		}
		fs.FontesRenda = items
		return
	}
	if s, ok := asString(value); ok && fs.FonteRenda == nil {
		fs.FonteRenda = &s
	}
}

// applyTo builds an apply func that fills a plain string slot, keeping the
// first value seen for that slot.
func applyTo(slot func(fs *FieldSet) **string) func(fs *FieldSet, value any) {
	return func(fs *FieldSet, value any) {
		dst := slot(fs)
		if *dst != nil {
			return
		}
		if s, ok := asString(value); ok {
			*dst = &s
		}
	}
}

var accentFolder = strings.NewReplacer(
	"ã", "a", "á", "a", "â", "a", "à", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

var separatorStripper = strings.NewReplacer("_", "", " ", "", "-", "")

// normalizeKey lowercases a producer key, folds Portuguese accents and strips
// separators so that accented, spaced and snake_case aliases collapse onto
// one spelling ("Gênero" -> "genero", "E-mail" -> "email").
func normalizeKey(key string) string {
	return separatorStripper.Replace(accentFolder.Replace(strings.ToLower(key)))
}

// asString coerces JSON scalar values into a string.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}
