package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

const (
	maxBatch            = 50
	defaultArchiveLimit = 100
)

type verifyRequest struct {
	Inputs []string `json:"inputs" binding:"required,min=1"`
}

type verifyResponse struct {
	Results  []views.Inspection `json:"results"`
	Tampered int                `json:"tampered"`
}

type recordRequest struct {
	Record views.Record `json:"record"`
}

type startCaptureRequest struct {
	PostID       string `json:"post_id" binding:"required"`
	ExpectedText string `json:"expected_text"`
}

type confirmRequest struct {
	VisualText string `json:"visual_text"`
}

func (s *Server) inspect(c *gin.Context) {
	result, err := s.ports.Inspection.Inspect(c.Request.Context(), c.Param("input"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(statusForInspection(result.Status), views.FromInspection(result, s.ports.ExplorerLink))
}

func (s *Server) verifyBatch(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if len(req.Inputs) > maxBatch {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: "too many inputs"})
		return
	}

	results, err := s.ports.Inspection.InspectMany(c.Request.Context(), req.Inputs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := verifyResponse{Results: make([]views.Inspection, len(results))}
	for i, r := range results {
		resp.Results[i] = views.FromInspection(r, s.ports.ExplorerLink)
		if r.Status == domain.StatusTampered {
			resp.Tampered++
		}
	}

	code := http.StatusOK
	if resp.Tampered > 0 {
		code = http.StatusConflict
	}
	c.JSON(code, resp)
}

func (s *Server) verifyRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	rec, err := req.Record.ToDomain()
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := s.ports.Inspection.VerifyRecord(c.Request.Context(), rec)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(statusForInspection(result.Status), views.FromInspection(result, s.ports.ExplorerLink))
}

func (s *Server) lookup(c *gin.Context) {
	rec, err := s.ports.Lookup.Resolve(c.Request.Context(), c.Param("input"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.FromRecord(rec))
}

// resolve maps an evidence ID to its ledger reference or the reverse.
func (s *Server) resolve(c *gin.Context) {
	res, err := views.Resolve(c.Request.Context(), s.ports.Lookup, c.Param("input"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) startCapture(c *gin.Context) {
	var req startCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	capture, err := s.ports.Capture.Start(c.Request.Context(), req.PostID, req.ExpectedText)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, views.FromCapture(capture))
}

func (s *Server) listCaptures(c *gin.Context) {
	captures, err := s.ports.Capture.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]views.Capture, len(captures))
	for i := range captures {
		out[i] = views.FromCapture(&captures[i])
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getCapture(c *gin.Context) {
	capture, err := s.ports.Capture.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.FromCapture(capture))
}

func (s *Server) confirmCapture(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	capture, err := s.ports.Capture.Confirm(c.Request.Context(), c.Param("id"), req.VisualText)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.FromCapture(capture))
}

func (s *Server) prepareCapture(c *gin.Context) {
	prepared, err := s.ports.Capture.Prepare(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.FromPrepared(prepared))
}

func (s *Server) discardCapture(c *gin.Context) {
	if err := s.ports.Capture.Discard(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listArchive(c *gin.Context) {
	limit := defaultArchiveLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := s.ports.Archive.List(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]*views.Record, len(records))
	for i := range records {
		out[i] = views.FromRecord(&records[i])
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) importArchive(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	rec, err := req.Record.ToDomain()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := s.ports.Archive.Import(c.Request.Context(), rec); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, views.FromRecord(rec))
}
