package bill

import (
	"strings"
	"unicode"
)

// RawRecord 는 스크래핑된 원본 JSON 한 건.
type RawRecord struct {
	BillID      string `json:"bill_id"`
	Session     string `json:"session"`
	Title       string `json:"title"`
	Committee   string `json:"committee"`
	Field       string `json:"field"`
	GenSummary  string `json:"gen_summary"`
	Enactment   string `json:"enactment"`
	Amendment   string `json:"amendment"`
	Terminology string `json:"terminology"`
	Disposal    string `json:"disposal"`
	Date        string `json:"date"`
}

// Record 는 법률안 검토 보고서 한 단락.
type Record struct {
	ID            string `json:"id"`
	Session       string `json:"session"`
	Title         string `json:"title"`
	Committee     string `json:"committee"`
	Field         string `json:"field"`
	Paragraph     string `json:"paragraph"`
	Enactment     string `json:"enactment"`
	Amendment     string `json:"amendment"`
	Terminology   string `json:"terminology"`
	TerminologyEN string `json:"terminology_en,omitempty"`
	Disposal      string `json:"disposal"`
	Date          string `json:"date"`
}

// TermSeparator separates entries of the terminology fields.
const TermSeparator = ", "

// metadata keys stored alongside each indexed paragraph
const (
	KeyID            = "id"
	KeySession       = "session"
	KeyTitle         = "title"
	KeyCommittee     = "committee"
	KeyField         = "field"
	KeyParagraph     = "paragraph"
	KeyEnactment     = "enactment"
	KeyAmendment     = "amendment"
	KeyTerminology   = "terminology"
	KeyTerminologyEN = "terminology_en"
	KeyDisposal      = "disposal"
	KeyDate          = "date"
)

// FromRaw 원본 필드명을 Record 필드로 매핑
func FromRaw(r RawRecord) Record {
	return Record{
		ID:          r.BillID,
		Session:     r.Session,
		Title:       r.Title,
		Committee:   r.Committee,
		Field:       r.Field,
		Paragraph:   r.GenSummary,
		Enactment:   r.Enactment,
		Amendment:   r.Amendment,
		Terminology: r.Terminology,
		Disposal:    r.Disposal,
		Date:        r.Date,
	}
}

// Metadata flattens the record into the string mapping kept by the vector store.
func (r Record) Metadata() map[string]string {
	return map[string]string{
		KeyID:            r.ID,
		KeySession:       r.Session,
		KeyTitle:         r.Title,
		KeyCommittee:     r.Committee,
		KeyField:         r.Field,
		KeyParagraph:     r.Paragraph,
		KeyEnactment:     r.Enactment,
		KeyAmendment:     r.Amendment,
		KeyTerminology:   r.Terminology,
		KeyTerminologyEN: r.TerminologyEN,
		KeyDisposal:      r.Disposal,
		KeyDate:          r.Date,
	}
}

// FromMetadata rebuilds a record from vector-store metadata. Missing keys are "".
func FromMetadata(m map[string]string) Record {
	return Record{
		ID:            m[KeyID],
		Session:       m[KeySession],
		Title:         m[KeyTitle],
		Committee:     m[KeyCommittee],
		Field:         m[KeyField],
		Paragraph:     m[KeyParagraph],
		Enactment:     m[KeyEnactment],
		Amendment:     m[KeyAmendment],
		Terminology:   m[KeyTerminology],
		TerminologyEN: m[KeyTerminologyEN],
		Disposal:      m[KeyDisposal],
		Date:          m[KeyDate],
	}
}

// SplitTitle 제목에서 발의자 표기를 분리한다.
// "법률안(홍길동 의원 등 10인)" -> ("법률안", "홍길동 의원 등 10인")
func (r Record) SplitTitle() (title, proposer string) {
	open := strings.Index(r.Title, "(")
	if open < 0 {
		return r.Title, ""
	}
	closing := strings.Index(r.Title[open+1:], ")")
	if closing < 0 {
		return r.Title, ""
	}
	proposer = r.Title[open+1 : open+1+closing]
	title = strings.TrimRightFunc(r.Title[:open], unicode.IsSpace)
	return title, proposer
}

// Terms returns the Korean terminology entries.
func (r Record) Terms() []string {
	return splitTerms(r.Terminology)
}

// TermsEN returns the English terminology entries.
func (r Record) TermsEN() []string {
	return splitTerms(r.TerminologyEN)
}

func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, TermSeparator)
}
