package bill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRaw(t *testing.T) {
	r := FromRaw(RawRecord{
		BillID:     "2100123",
		Session:    "21",
		Title:      "민법 일부개정법률안",
		GenSummary: "요약 본문",
		Committee:  "법제사법위원회",
	})

	assert.Equal(t, "2100123", r.ID)
	assert.Equal(t, "요약 본문", r.Paragraph)
	assert.Equal(t, "법제사법위원회", r.Committee)
	assert.Empty(t, r.TerminologyEN)
	assert.Empty(t, r.Disposal)
}

func TestMetadataRoundTrip(t *testing.T) {
	r := Record{
		ID:            "1",
		Session:       "20",
		Title:         "t",
		Terminology:   "가, 나",
		TerminologyEN: "a, b",
		Date:          "2019-01-02",
	}
	m := r.Metadata()
	assert.Len(t, m, 12)
	assert.Equal(t, "가, 나", m[KeyTerminology])
	assert.Equal(t, r, FromMetadata(m))
}

func TestFromMetadataMissingKeys(t *testing.T) {
	r := FromMetadata(map[string]string{KeyTitle: "제목"})
	assert.Equal(t, Record{Title: "제목"}, r)
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		want     string
		proposer string
	}{
		{
			name:     "with proposer",
			title:    "성폭력범죄의 처벌 등에 관한 특례법 일부개정법률안(고용진 의원 등 10인)",
			want:     "성폭력범죄의 처벌 등에 관한 특례법 일부개정법률안",
			proposer: "고용진 의원 등 10인",
		},
		{
			name:     "trailing space before paren",
			title:    "도로교통법 일부개정법률안 (정부)",
			want:     "도로교통법 일부개정법률안",
			proposer: "정부",
		},
		{
			name:     "nested parens stop at first close",
			title:    "법안(대안)(위원장)",
			want:     "법안",
			proposer: "대안",
		},
		{
			name:     "carriage return and ideographic space",
			title:    "주택임대차보호법 일부개정법률안\r\u3000(정부)",
			want:     "주택임대차보호법 일부개정법률안",
			proposer: "정부",
		},
		{name: "no parens", title: "주택법 일부개정법률안", want: "주택법 일부개정법률안"},
		{name: "open only", title: "법안(미완", want: "법안(미완"},
		{name: "close before open", title: "법안)x(", want: "법안)x("},
		{name: "empty", title: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, proposer := Record{Title: tt.title}.SplitTitle()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.proposer, proposer)
		})
	}
}

func TestTerms(t *testing.T) {
	r := Record{Terminology: "성폭력, 특례법", TerminologyEN: ""}
	assert.Equal(t, []string{"성폭력", "특례법"}, r.Terms())
	assert.Nil(t, r.TermsEN())
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	records := []Record{{ID: "1", Title: "<가정폭력> 법안", Session: "21"}}

	require.NoError(t, WriteFile(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "<가정폭력> 법안"), "korean and markup written unescaped")
	assert.True(t, strings.Contains(string(raw), "\n        \"id\": \"1\""), "four space indent")

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteFileNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, WriteFile(path, nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}
