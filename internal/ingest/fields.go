package ingest

// NameParts is the nested first/last shape the form builder emits for its
// full-name question type.
type NameParts struct {
	First string
	Last  string
}

// PhoneParts is the nested area/number shape for the phone question type.
type PhoneParts struct {
	Area  string
	Phone string
}

// FieldSet is the canonical mapping produced by the Mapper. Every attribute
// the pipeline understands has a slot here; nil means the producer did not
// supply it, which downstream code distinguishes from "supplied but empty".
type FieldSet struct {
	NameParts *NameParts
	Name      *string

	// NameKeySeen and PhoneKeySeen record that a name/phone-bearing key was
	// present at all, even when its value was unusable (null, wrong shape).
	// The validation gate checks key presence; value quality is judged later
	// during normalization.
	NameKeySeen  bool
	PhoneKeySeen bool

	Email      *string
	PhoneParts *PhoneParts
	Phone      *string

	CPF    *string
	Cidade *string
	Estado *string

	Idade        *string
	Genero       *string
	RacaCor      *string
	Escolaridade *string

	FaixaRenda  *string
	FontesRenda []string
	FonteRenda  *string

	TempoFuncionamento *string
	SegmentoAtuacao    *string
	SegmentoOutros     *string
	OrganizacaoStone   *string
	Apelido            *string

	SubmissionID *string
	FormID       *string

	// SourceKeys lists the effective object's original keys, kept for the
	// diagnostic payload returned on validation failure.
	SourceKeys []string
}
