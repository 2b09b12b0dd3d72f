package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
	"github.com/reoring/bylawkit/middleware"
	echomw "github.com/reoring/bylawkit/middleware/echo"
	"github.com/reoring/bylawkit/store"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

const ctxRequestID = "request_id"

// writeResult is the body of a successful create, update or dry run.
type writeResult struct {
	Record   bylaw.Record    `json:"record"`
	Warnings bylawkit.Issues `json:"warnings"`
}

func (s *Server) requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Response().Header().Set(HeaderRequestID, id)
		return next(c)
	}
}

func (s *Server) accessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		elapsed := time.Since(start)
		status := c.Response().Status
		s.metrics.observeRequest(c.Request().Method, c.Path(), status, elapsed)
		s.log.Info("request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("request_id", requestIDOf(c)),
		)
		return nil
	}
}

func requestIDOf(c echo.Context) string {
	id, _ := c.Get(ctxRequestID).(string)
	return id
}

// handleError renders errors that escaped a handler, including echo's own
// 404/405, in the {error, issues} shape.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, map[string]any{"error": msg, "issues": bylawkit.Issues{}})
		return
	}
	_ = s.fail(c, err)
}

func (s *Server) logPanic(c echo.Context, err error, stack []byte) error {
	s.log.Error("handler panicked",
		zap.Error(err),
		zap.String("request_id", requestIDOf(c)),
		zap.ByteString("stack", stack),
	)
	return err
}

// fail maps err to a status and error body.
func (s *Server) fail(c echo.Context, err error) error {
	status := middleware.StatusFor(err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrExists), errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err), zap.String("request_id", requestIDOf(c)))
		return c.JSON(status, middleware.ErrorPayload(nil))
	}
	return c.JSON(status, middleware.ErrorPayload(err))
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) enums(c echo.Context) error {
	return c.JSON(http.StatusOK, bylaw.Enums())
}

func (s *Server) schema(c echo.Context) error {
	return c.JSON(http.StatusOK, bylaw.JSONSchema())
}

func (s *Server) listBylaws(c echo.Context) error {
	ids, err := s.store.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"municipality_ids": ids})
}

func (s *Server) getBylaw(c echo.Context) error {
	rec, err := s.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) createBylaw(c echo.Context) error {
	ctx := c.Request().Context()
	out, err := s.validate(c, bylawkit.ModeCreate, c.Param("id"), nil)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.store.Create(ctx, out.Record); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, writeResult{Record: out.Record, Warnings: out.Warnings})
}

func (s *Server) updateBylaw(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	existing, err := s.lookup(c, id)
	if err != nil {
		return s.fail(c, err)
	}
	out, err := s.validate(c, bylawkit.ModeUpdate, id, existing)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.store.Update(ctx, out.Record, existing.UpdatedAt); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, writeResult{Record: out.Record, Warnings: out.Warnings})
}

// dryRun validates without persisting. In update mode the existing record is
// looked up by the municipality_id query parameter.
func (s *Server) dryRun(c echo.Context) error {
	param := c.QueryParam("mode")
	if param == "" {
		param = bylawkit.ModeCreate.String()
	}
	mode, ok := bylawkit.ParseMode(param)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "mode must be create or update",
			"issues": bylawkit.Issues{},
		})
	}
	id := c.QueryParam("municipality_id")
	var existing *bylaw.Record
	if mode == bylawkit.ModeUpdate && id != "" {
		rec, err := s.lookup(c, id)
		if err != nil {
			return s.fail(c, err)
		}
		existing = rec
	}
	out, err := s.validate(c, mode, id, existing)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, writeResult{Record: out.Record, Warnings: out.Warnings})
}

// lookup loads the record for id. A missing record is not an error: the
// validator reports an update without one as precondition_failed.
func (s *Server) lookup(c echo.Context, id string) (*bylaw.Record, error) {
	rec, err := s.store.Get(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// validate runs the decoded body through the validator. id, when set, is
// the municipality the request addresses: it is injected into a create
// payload that omits municipality_id, and a differing value is rejected.
func (s *Server) validate(c echo.Context, mode bylawkit.Mode, id string, existing *bylaw.Record) (bylaw.Normalized, error) {
	d, ok := echomw.GetDecoded(c)
	if !ok {
		return bylaw.Normalized{}, errors.New("server: request body was not decoded")
	}
	var pre bylawkit.Issues
	if id != "" && mode == bylawkit.ModeCreate {
		pre = bindPathID(d.Payload, id)
	}
	out, err := s.validator.Validate(c.Request().Context(), d.Payload, mode, existing)
	if len(pre) > 0 {
		if iss, ok := bylawkit.AsIssues(err); ok {
			err = append(pre, iss...)
		} else if err == nil {
			err = pre
		}
	}
	if err == nil && len(d.Warnings) > 0 {
		out.Warnings = bylawkit.AppendIssues(d.Warnings, out.Warnings...)
	}
	if out.Warnings == nil {
		out.Warnings = bylawkit.Issues{}
	}
	s.metrics.observeValidation(mode, out.Warnings, err)
	return out, err
}

// bindPathID injects id as municipality_id when payload has none and reports
// a mismatch otherwise.
func bindPathID(payload map[string]any, id string) bylawkit.Issues {
	raw, ok := payload[bylaw.KeyMunicipalityID]
	if !ok || raw == nil {
		payload[bylaw.KeyMunicipalityID] = id
		return nil
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == id {
		return nil
	}
	p := bylawkit.Root().Field(bylaw.KeyMunicipalityID)
	return bylawkit.Issues{bylawkit.NewIssue(p, bylawkit.CodePreconditionFailed, map[string]any{"value": s, "expected": id, "constraint": "matches request path"})}
}
