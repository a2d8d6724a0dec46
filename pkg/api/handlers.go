package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/getmockd/mockmaster/pkg/api/types"
	"github.com/getmockd/mockmaster/pkg/auth"
	"github.com/getmockd/mockmaster/pkg/export"
	"github.com/getmockd/mockmaster/pkg/generator"
	"github.com/getmockd/mockmaster/pkg/metrics"
	"github.com/getmockd/mockmaster/pkg/schema"
)

func errorJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, types.ErrorResponse{Error: msg})
}

// GET /healthz
func (s *Server) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{Status: "ok"})
	}
}

// GET /api/types
func (s *Server) typesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		all := schema.AllFieldTypes()
		out := make([]types.FieldTypeInfo, 0, len(all))
		for _, t := range all {
			out = append(out, types.FieldTypeInfo{Type: t, Description: t.Description()})
		}
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) schemaResponse(fields schema.Schema) types.SchemaResponse {
	if fields == nil {
		fields = schema.Schema{}
	}
	return types.SchemaResponse{
		Fields:   fields,
		Version:  s.store.Version(),
		Warnings: schema.Lint(fields),
	}
}

// GET /api/schema
func (s *Server) getSchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.schemaResponse(s.store.Get()))
	}
}

// PUT /api/schema
// Accepts a bare list of fields or {"fields": [...]}.
func (s *Server) putSchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "could not read body")
			return
		}
		issues, err := schema.ValidateDocument(body)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		if len(issues) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid schema", Issues: issues})
			return
		}
		next, err := schema.Parse(body)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, s.schemaResponse(s.store.Set(next)))
	}
}

// POST /api/schema/reset
func (s *Server) resetSchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.schemaResponse(s.store.Reset()))
	}
}

// GET /api/schema/openapi
func (s *Server) openAPIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, schema.ToOpenAPI(s.store.Get()))
	}
}

// POST /api/schema/fields
func (s *Server) addFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, s.schemaResponse(s.store.AddField()))
	}
}

// PATCH /api/schema/fields/:index
func (s *Server) updateFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := fieldIndex(c)
		if !ok {
			return
		}
		var patch schema.FieldPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			errorJSON(c, http.StatusBadRequest, "Invalid JSON")
			return
		}
		out, err := s.store.UpdateField(index, patch)
		if err != nil {
			errorJSON(c, http.StatusNotFound, err.Error())
			return
		}
		c.JSON(http.StatusOK, s.schemaResponse(out))
	}
}

// DELETE /api/schema/fields/:index
func (s *Server) removeFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := fieldIndex(c)
		if !ok {
			return
		}
		out, err := s.store.RemoveField(index)
		if err != nil {
			errorJSON(c, http.StatusNotFound, err.Error())
			return
		}
		c.JSON(http.StatusOK, s.schemaResponse(out))
	}
}

func fieldIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "field index must be an integer")
		return 0, false
	}
	return index, true
}

// bindGenerateRequest reads an optional types.GenerateRequest. An empty body is
// the zero request.
func bindGenerateRequest(c *gin.Context) (types.GenerateRequest, bool) {
	var req types.GenerateRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(c, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	return req, true
}

func (s *Server) run(req types.GenerateRequest) generator.Result {
	fields := req.Schema
	if fields == nil {
		fields = s.store.Get()
	}
	eng := s.engine
	if req.Seed != nil {
		eng = s.newEngine(req.Seed)
	}
	return eng.Run(fields, s.cfg.ClampCount(req.Count))
}

// POST /api/generate
func (s *Server) generateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindGenerateRequest(c)
		if !ok {
			return
		}
		res := s.run(req)
		_ = s.metrics.RowsGenerated.Add(float64(res.Count), "generate")
		rows := res.Rows
		if rows == nil {
			rows = generator.Dataset{}
		}
		c.JSON(http.StatusOK, types.GenerateResponse{
			ID:         s.newID(),
			Count:      res.Count,
			DurationMs: float64(res.Duration.Microseconds()) / 1000,
			Rows:       rows,
		})
	}
}

// POST /api/export/:format
func (s *Server) exportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		format := export.ParseFormat(c.Param("format"))
		if format == export.FormatUnknown {
			errorJSON(c, http.StatusBadRequest, "unsupported format "+strconv.Quote(c.Param("format")))
			return
		}

		session, err := s.session(c)
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, err.Error())
			return
		}

		// Check the gate before generating anything.
		if format.RequiresAuth() && !session.Authenticated() {
			_ = s.metrics.ExportsTotal.Inc(format.String(), metrics.OutcomeUnauthorized)
			c.Header("WWW-Authenticate", `Bearer realm="mockmaster"`)
			errorJSON(c, http.StatusUnauthorized, "sign in to export "+format.String())
			return
		}

		req, ok := bindGenerateRequest(c)
		if !ok {
			return
		}
		res := s.run(req)
		_ = s.metrics.RowsGenerated.Add(float64(res.Count), "export")

		out, err := export.Export(res.Rows, &export.Options{
			Format:        format,
			Authenticated: session.Authenticated(),
		})
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, export.ErrAuthRequired):
				status = http.StatusUnauthorized
			case errors.Is(err, export.ErrUnknownFormat):
				status = http.StatusBadRequest
			}
			_ = s.metrics.ExportsTotal.Inc(format.String(), metrics.OutcomeError)
			errorJSON(c, status, err.Error())
			return
		}

		_ = s.metrics.ExportsTotal.Inc(format.String(), metrics.OutcomeOK)
		s.log.Debug("exported dataset", "format", format, "rows", out.Rows, "user", sessionSubject(session))
		c.Header("Content-Disposition", "attachment; filename="+out.Filename)
		c.Data(http.StatusOK, out.ContentType, out.Data)
	}
}

// session resolves the request's bearer token. A request without one is
// anonymous (nil session, nil error); a bad token is an error.
func (s *Server) session(c *gin.Context) (*auth.Session, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}
	if s.verifier == nil {
		return nil, auth.ErrNoSecret
	}
	return s.verifier.VerifyHeader(header)
}

func sessionSubject(s *auth.Session) string {
	if s == nil {
		return ""
	}
	return s.Subject
}
