package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawbot/billrag/internal/bill"
)

func sampleRecord() bill.Record {
	return bill.Record{
		Title:         "성폭력범죄의 처벌 등에 관한 특례법 일부개정법률안(고용진 의원 등 10인)",
		Session:       "21",
		Committee:     "법제사법위원회",
		Date:          "2020-05-29",
		Amendment:     "개정",
		Terminology:   "성폭력범죄, 특례법",
		TerminologyEN: "Special Act, sexual violence crime",
	}
}

func TestFirstSentence(t *testing.T) {
	want := "의안정보시스템에 2020-05-29에 게시된 법률안 검토 보고서에 따르면, " +
		"'성폭력범죄의 처벌 등에 관한 특례법 일부개정법률안'은 고용진 의원 등 10인이 발의하였으며, " +
		"법제사법위원회에서 소관하는 법률안으로 21대 국회에서 공개되었습니다."
	assert.Equal(t, want, FirstSentence(sampleRecord()))
}

func TestFirstSentenceWithoutProposer(t *testing.T) {
	r := bill.Record{Title: "주택법 일부개정법률안", Committee: "국토교통위원회", Date: "2019-03-01", Session: "20"}
	got := FirstSentence(r)
	assert.NotContains(t, got, "발의하였으며")
	assert.Contains(t, got, "'주택법 일부개정법률안'은 국토교통위원회에서")
	assert.Contains(t, got, "20대 국회에서 공개되었습니다.")
}

func TestFirstSentenceMissingFields(t *testing.T) {
	got := FirstSentence(bill.Record{Title: "법안"})
	assert.Contains(t, got, "의안정보시스템에 N/A에 게시된")
	assert.Contains(t, got, "N/A에서 소관하는 법률안으로 국회 회기 정보 없음에서 공개되었습니다.")
}

func TestPickTerms(t *testing.T) {
	ko, en := PickTerms(sampleRecord())
	assert.Equal(t, "성폭력범죄", ko)
	assert.Equal(t, "Special Act", en)

	ko, en = PickTerms(bill.Record{})
	assert.Equal(t, "N/A", ko)
	assert.Equal(t, "N/A", en)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("처벌이 강화되었나요?", "문맥 A 문맥 B", sampleRecord())

	sections := []string{"Metadata:\n", "Instruction:\n", "Context:\n문맥 A 문맥 B", "Question:\n처벌이 강화되었나요?", "Answer:\n"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(p, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}

	assert.Contains(t, p, "Title: 성폭력범죄의 처벌 등에 관한 특례법 일부개정법률안(고용진 의원 등 10인)\n")
	assert.Contains(t, p, "Enactment: N/A\n")
	assert.Contains(t, p, FirstSentence(sampleRecord()))
	assert.Contains(t, p, "'성폭력범죄'과(와) 'Special Act'를 검색해 보시기 바랍니다.")
	assert.Contains(t, p, searchSite)
}

type fakeModel struct {
	reply  string
	err    error
	system string
	user   string
}

func (f *fakeModel) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestGenerate(t *testing.T) {
	m := &fakeModel{reply: "  네, 강화되었습니다.\n"}
	got := NewGenerator(m).Generate(context.Background(), "질문", "문맥", sampleRecord())

	assert.Equal(t, Answer{Text: "네, 강화되었습니다."}, got)
	assert.Equal(t, SystemInstruction, m.system)
	assert.Contains(t, m.user, "Question:\n질문")
}

func TestGenerateFailure(t *testing.T) {
	boom := errors.New("401 unauthorized")
	got := NewGenerator(&fakeModel{err: boom}).Generate(context.Background(), "질문", "문맥", sampleRecord())

	assert.True(t, got.Failed)
	assert.Equal(t, "", got.Text)
	assert.ErrorIs(t, got.Err, boom)
}

func TestGenerateBlankReply(t *testing.T) {
	got := NewGenerator(&fakeModel{reply: "   "}).Generate(context.Background(), "질문", "문맥", sampleRecord())
	assert.True(t, got.Failed)
	assert.Empty(t, got.Text)
}
