package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawbot/billrag/internal/bill"
	"github.com/lawbot/billrag/internal/catalog"
	"github.com/lawbot/billrag/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type askFunc func(question string) (service.Result, error)

func (f askFunc) Ask(_ context.Context, question string) (service.Result, error) {
	return f(question)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{Committee: "법제사법위원회", Session: "20", Field: "형사법", Title: "형법 일부개정법률안", Date: "2019-02-01"},
		{Committee: "법제사법위원회", Session: "21", Field: "형사법", Title: "성폭력처벌법 일부개정법률안", Date: "2020-05-29"},
		{Committee: "법제사법위원회", Session: "21", Field: "형사법", Title: "스토킹처벌법 제정법률안", Date: "2021-03-24"},
		{Committee: "법제사법위원회", Session: "21", Field: "민사법", Title: "민법 일부개정법률안", Date: "2021-01-01"},
		{Committee: "보건복지위원회", Session: "21", Field: "의료", Title: "의료법 일부개정법률안", Date: "2021-06-01"},
	})
}

func newTestServer(t *testing.T, asker Asker) *Server {
	t.Helper()
	s, err := New(testCatalog(), asker, func() int { return 42 })
	require.NoError(t, err)
	return s
}

func doc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return d
}

func postAsk(s *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexDefaults(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	d := doc(t, rec)
	assert.Equal(t, "법제사법위원회", d.Find(`select[name=committee] option[selected]`).Text())
	assert.Equal(t, "형사법", d.Find(`select[name=field] option[selected]`).Text())
	assert.Equal(t, 2, d.Find(`select[name=field] option`).Length())

	sessions := d.Find("details.session")
	require.Equal(t, 2, sessions.Length())
	assert.Equal(t, "20", sessions.Eq(0).AttrOr("data-session", ""))

	var titles []string
	sessions.Eq(1).Find(".title").Each(func(_ int, sel *goquery.Selection) {
		titles = append(titles, sel.Text())
	})
	assert.Equal(t, []string{"스토킹처벌법 제정법률안", "성폭력처벌법 일부개정법률안"}, titles)
	assert.Zero(t, d.Find("#answer").Length())
}

func TestIndexCascadingSelection(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?committee="+url.QueryEscape("보건복지위원회")+"&field="+url.QueryEscape("형사법"), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	d := doc(t, rec)
	assert.Equal(t, "의료", d.Find(`select[name=field] option[selected]`).Text(), "field outside committee resets")
	assert.Equal(t, "의료법 일부개정법률안", d.Find(".title").Text())
}

func TestAskAnswered(t *testing.T) {
	s := newTestServer(t, askFunc(func(q string) (service.Result, error) {
		return service.Result{
			Status:  service.StatusAnswered,
			Answer:  "<b>답변</b> 입니다",
			Context: "참고 문맥",
			Source:  bill.Record{Title: "성폭력처벌법", Committee: "법제사법위원회", TerminologyEN: "sexual violence"},
		}, nil
	}))

	rec := postAsk(s, url.Values{"question": {"처벌이 강화되나요?"}, "committee": {"법제사법위원회"}, "field": {"민사법"}})
	require.Equal(t, http.StatusOK, rec.Code)

	d := doc(t, rec)
	assert.Equal(t, "<b>답변</b> 입니다", d.Find("#answer").Text(), "answer is escaped")
	assert.Contains(t, d.Find("#context-panel").Text(), "참고 문맥")
	assert.Contains(t, d.Find("#source-panel").Text(), "sexual violence")
	assert.Contains(t, d.Find("#source-panel").Text(), "의안 처리결과: N/A")
	assert.Equal(t, "민사법", d.Find(`select[name=field] option[selected]`).Text())
	assert.Equal(t, "처벌이 강화되나요?", d.Find("textarea[name=question]").Text())
}

func TestAskNoContext(t *testing.T) {
	s := newTestServer(t, askFunc(func(string) (service.Result, error) {
		return service.Result{Status: service.StatusNoContext}, nil
	}))

	d := doc(t, postAsk(s, url.Values{"question": {"질문"}}))
	assert.Equal(t, "No relevant context found.", d.Find("#warning").Text())
	assert.Zero(t, d.Find("#answer").Length())
	assert.Zero(t, d.Find("#context-panel").Length())
}

func TestAskGenerationFailedIsDistinct(t *testing.T) {
	s := newTestServer(t, askFunc(func(string) (service.Result, error) {
		return service.Result{Status: service.StatusGenerationFailed, Context: "문맥"}, nil
	}))

	rec := postAsk(s, url.Values{"question": {"질문"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	d := doc(t, rec)
	assert.Equal(t, 1, d.Find("#generation-failed").Length())
	assert.Zero(t, d.Find("#answer").Length(), "no empty success box")
	assert.Equal(t, 1, d.Find("#context-panel").Length())
}

func TestAskUnexpectedError(t *testing.T) {
	s := newTestServer(t, askFunc(func(string) (service.Result, error) {
		return service.Result{}, errors.New("vector db corrupted")
	}))

	rec := postAsk(s, url.Values{"question": {"질문"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, doc(t, rec).Find("#error").Text(), "vector db corrupted")
}

func TestAskEmptyQuestion(t *testing.T) {
	s := newTestServer(t, askFunc(func(string) (service.Result, error) {
		return service.Result{}, service.ErrEmptyQuestion
	}))

	rec := postAsk(s, url.Values{"question": {"  "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "질문을 입력해주세요.", doc(t, rec).Find("#warning").Text())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","documents":42}`, rec.Body.String())
}
