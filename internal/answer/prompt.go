package answer

import (
	"fmt"
	"strings"

	"github.com/lawbot/billrag/internal/bill"
)

const (
	notAvailable = "N/A"
	searchSite   = "https://likms.assembly.go.kr/bill/main.do"
)

// SystemInstruction 고정 시스템 지시문
const SystemInstruction = "메타데이터와 컨텍스트를 기반으로 사용자가 이해하기 쉬운 답변을 작성하십시오. 최종적으로 논리적인 흐름을 가진 답변을 제공하십시오"

const firstSentenceExample = "의안정보시스템에 2020년 5월 29일 게시된 법률안 검토 보고서에 따르면, '성폭력범죄의 처벌 등에 관한 특례법 일부개정법률안'은 고용진 의원 등 10인이 발의하였으며, 법제사법위원회에서 소관하는 법률안으로 21대 국회에서 공개되었습니다."

// FirstSentence 답변 첫 문장을 메타데이터로 만든다.
func FirstSentence(r bill.Record) string {
	title, proposer := r.SplitTitle()

	var b strings.Builder
	fmt.Fprintf(&b, "의안정보시스템에 %s에 게시된 법률안 검토 보고서에 따르면, '%s'은 ", orNA(r.Date), title)
	if proposer != "" {
		fmt.Fprintf(&b, "%s이 발의하였으며, ", proposer)
	}
	fmt.Fprintf(&b, "%s에서 소관하는 법률안으로 %s에서 공개되었습니다.", orNA(r.Committee), sessionInfo(r.Session))
	return b.String()
}

// PickTerms returns the first Korean and first English terminology entry.
// TODO: rank terms against the question instead of taking the first entry.
func PickTerms(r bill.Record) (ko, en string) {
	ko, en = notAvailable, notAvailable
	if terms := r.Terms(); len(terms) > 0 {
		ko = terms[0]
	}
	if terms := r.TermsEN(); len(terms) > 0 {
		en = terms[0]
	}
	return ko, en
}

// BuildPrompt 메타데이터, 지시사항, 컨텍스트, 질문을 하나의 프롬프트로 조립한다
func BuildPrompt(query, retrieved string, r bill.Record) string {
	ko, en := PickTerms(r)
	var b strings.Builder

	b.WriteString("Metadata:\n")
	fmt.Fprintf(&b, "Title: %s\n", orNA(r.Title))
	fmt.Fprintf(&b, "Session: %s\n", orNA(r.Session))
	fmt.Fprintf(&b, "Committee: %s\n", orNA(r.Committee))
	fmt.Fprintf(&b, "Date: %s\n", orNA(r.Date))
	fmt.Fprintf(&b, "Amendment: %s\n", orNA(r.Amendment))
	fmt.Fprintf(&b, "Enactment: %s\n", orNA(r.Enactment))
	fmt.Fprintf(&b, "Terminology: %s\n", orNA(r.Terminology))
	fmt.Fprintf(&b, "Terminology_en: %s\n\n", orNA(r.TerminologyEN))

	b.WriteString("Instruction:\n")
	b.WriteString("1. 아래 첫 문장을 기반으로 예시와 같이 답변을 시작하십시오:\n")
	fmt.Fprintf(&b, "   \"%s\"\n", FirstSentence(r))
	fmt.Fprintf(&b, "- 예시: \"%s\"\n", firstSentenceExample)
	b.WriteString("2. 질문에 충실히 답변하며, 질문에 대한 답변은 Context의 핵심 내용을 간결히 참고하여 제공합니다.\n")
	b.WriteString("3. 질문에 대한 답변 이후에, Amendment와 Enactment 값을 활용하여, 이 법안이 개정되었다면, 해당 발의로 개정되었음만 언급합니다. ")
	b.WriteString("마찬가지로 제정되었으면, 해당 발의로 제정되었음만 언급합니다. 개정되지 않거나 제정되지 않았다면 생략합니다.\n")
	b.WriteString("- 예시: \"최종적으로 이 법안은 해당 발의로 개정되었습니다.\"\n")
	b.WriteString("4. 마지막으로 Terminology와 Terminology_en에서 관련 키워드를 하나씩 선택하여, 추가 검색을 유도하는 문장을 작성하십시오.\n")
	fmt.Fprintf(&b, "   - 예: \"이 법안에 대해 더 자세히 알아보시려면, 의안정보시스템에서 '%s'과(와) '%s'를 검색해 보시기 바랍니다. ► 의안정보시스템 바로가기 : %s\"\n\n",
		ko, en, searchSite)

	fmt.Fprintf(&b, "Context:\n%s\n\n", retrieved)
	fmt.Fprintf(&b, "Question:\n%s\n\n", query)
	b.WriteString("Answer:\n")
	return b.String()
}

func sessionInfo(session string) string {
	if session == "" || session == notAvailable {
		return "국회 회기 정보 없음"
	}
	return session + "대 국회"
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
