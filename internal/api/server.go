// Package api serves header checks over HTTP for files below a fixed root.
package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/ggmlcheck/internal/batch"
	"github.com/samcharles93/ggmlcheck/internal/ggml"
	"github.com/samcharles93/ggmlcheck/internal/logger"
	"github.com/samcharles93/ggmlcheck/internal/report"
	"github.com/samcharles93/ggmlcheck/internal/resolve"
	"github.com/samcharles93/ggmlcheck/internal/version"
)

// maxBatch caps the number of paths accepted by one POST /v1/check.
const maxBatch = 1024

type Config struct {
	// Root is the directory request paths are resolved against.
	Root   string
	Jobs   int
	Logger logger.Logger
}

type Server struct {
	root string
	jobs int
	log  logger.Logger
}

func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		root: filepath.Clean(cfg.Root),
		jobs: cfg.Jobs,
		log:  log.With("component", "api"),
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/version", s.handleVersion)
	e.GET("/v1/check", s.handleCheckOne)
	e.POST("/v1/check", s.handleCheckBatch)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(c *echo.Context) error {
	return c.JSON(http.StatusOK, version.Resolve())
}

func (s *Server) handleCheckOne(c *echo.Context) error {
	rel := c.QueryParam("path")
	if rel == "" {
		return writeBadRequest(c, "path is required", "path")
	}
	extended := false
	if raw := c.QueryParam("extended"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return writeBadRequest(c, "extended must be a boolean", "extended")
		}
		extended = v
	}

	results, errs := s.check(c, []string{rel}, extended)
	if errs[0] != nil {
		status, typ := classifyError(errs[0])
		return writeError(c, status, typ, results[0].Error.Message, "path")
	}
	return c.JSON(http.StatusOK, results[0])
}

func (s *Server) handleCheckBatch(c *echo.Context) error {
	req, err := decodeJSON[CheckRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error(), "")
	}
	if len(req.Paths) == 0 {
		return writeBadRequest(c, "paths must not be empty", "paths")
	}
	if len(req.Paths) > maxBatch {
		return writeBadRequest(c, "too many paths (max "+strconv.Itoa(maxBatch)+")", "paths")
	}

	results, _ := s.check(c, req.Paths, req.Extended)
	resp := CheckResponse{
		RequestID: requestIDFrom(c),
		Results:   results,
	}
	for _, r := range results {
		if r.Error != nil {
			resp.Failed++
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// check runs rel paths through the batch checker. Paths that would escape
// the root are rejected without touching the filesystem. errs is parallel to
// the results.
func (s *Server) check(c *echo.Context, rels []string, extended bool) ([]CheckResult, []error) {
	log := s.log.With("request_id", requestIDFrom(c))

	out := make([]CheckResult, len(rels))
	errs := make([]error, len(rels))
	fail := func(i int, err error) {
		errs[i] = err
		out[i].Error = toResponseError(rels[i], err)
	}
	abs := make([]string, 0, len(rels))
	idx := make([]int, 0, len(rels))
	for i, rel := range rels {
		out[i].Path = rel
		local := filepath.FromSlash(rel)
		if !filepath.IsLocal(local) {
			fail(i, errOutsideRoot)
			continue
		}
		abs = append(abs, filepath.Join(s.root, local))
		idx = append(idx, i)
	}

	checker := &batch.Checker{Jobs: s.jobs, Extended: extended, Logger: log}
	for j, r := range checker.Run(c.Request().Context(), abs) {
		i := idx[j]
		if r.Err != nil {
			log.Warn("check failed", "path", rels[i], "error", r.Err)
			fail(i, r.Err)
			continue
		}
		rec := report.FromHeader(r.Header)
		rec.Filename = rels[i]
		out[i].Header = &rec
	}
	return out, errs
}

// toResponseError hides server-side paths from clients.
func toResponseError(rel string, err error) *ResponseError {
	_, typ := classifyError(err)
	var (
		pe  *resolve.PathError
		fe  *ggml.FieldError
		msg string
	)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		msg = err.Error()
	case errors.As(err, &pe):
		msg = rel + ": " + pe.Reason
	case errors.As(err, &fe):
		msg = rel + ": " + fe.Error()
	case errors.Is(err, ggml.ErrTruncated):
		msg = rel + ": truncated header"
	default:
		msg = rel + ": cannot read file"
	}
	return &ResponseError{Message: msg, Type: typ}
}
