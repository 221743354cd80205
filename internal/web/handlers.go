package web

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/lawbot/billrag/internal/catalog"
	"github.com/lawbot/billrag/internal/service"
)

const (
	outcomeAnswered         = "answered"
	outcomeNoContext        = "no_context"
	outcomeGenerationFailed = "generation_failed"
	outcomeInvalid          = "invalid"
	outcomeError            = "error"
)

type pageData struct {
	Committees []string
	Committee  string
	Fields     []string
	Field      string
	Groups     []catalog.SessionGroup

	Question string
	Outcome  string
	Message  string
	Result   *service.Result
}

// selection 위원회 -> 법 분야 순서로 선택값을 확정한다. 목록에 없는 값은 첫 항목으로 대체.
func (s *Server) selection(committee, field string) pageData {
	d := pageData{Committees: s.catalog.Committees()}
	if len(d.Committees) == 0 {
		return d
	}
	if !slices.Contains(d.Committees, committee) {
		committee = d.Committees[0]
	}
	d.Committee = committee

	d.Fields = s.catalog.Fields(committee)
	if !slices.Contains(d.Fields, field) && len(d.Fields) > 0 {
		field = d.Fields[0]
	}
	d.Field = field
	d.Groups = s.catalog.Sessions(committee, field)
	return d
}

// index handles GET /
func (s *Server) index(c *gin.Context) {
	d := s.selection(c.Query("committee"), c.Query("field"))
	c.HTML(http.StatusOK, "index.html", d)
}

// ask handles POST /ask
func (s *Server) ask(c *gin.Context) {
	d := s.selection(c.PostForm("committee"), c.PostForm("field"))
	d.Question = c.PostForm("question")

	res, err := s.asker.Ask(c.Request.Context(), d.Question)
	switch {
	case errors.Is(err, service.ErrEmptyQuestion):
		d.Outcome = outcomeInvalid
		d.Message = "질문을 입력해주세요."
		c.HTML(http.StatusBadRequest, "index.html", d)
		return
	case err != nil:
		slog.Error("ask failed", "error", err)
		d.Outcome = outcomeError
		d.Message = err.Error()
		c.HTML(http.StatusInternalServerError, "index.html", d)
		return
	}

	d.Result = &res
	switch res.Status {
	case service.StatusAnswered:
		d.Outcome = outcomeAnswered
	case service.StatusNoContext:
		d.Outcome = outcomeNoContext
	case service.StatusGenerationFailed:
		d.Outcome = outcomeGenerationFailed
	}
	c.HTML(http.StatusOK, "index.html", d)
}

// health handles GET /healthz
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"documents": s.count(),
	})
}
