package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leengari/labdb/internal/domain/data"
	domainerrors "github.com/leengari/labdb/internal/domain/errors"
	"github.com/leengari/labdb/internal/engine"
)

// Server exposes a Database over HTTP. The database is not safe for
// concurrent use, so every handler runs under one mutex.
type Server struct {
	Echo *echo.Echo

	mu sync.Mutex
	db *engine.Database
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type (
	InsertRequest struct {
		Raw string `json:"raw" validate:"required"`
	}

	SelectRequest struct {
		Args []string `json:"args"`
	}

	JoinRequest struct {
		Left      string `json:"left" validate:"required"`
		Right     string `json:"right" validate:"required"`
		LeftAttr  string `json:"left_attr" validate:"required"`
		RightAttr string `json:"right_attr" validate:"required"`
	}

	MultiJoinRequest struct {
		Tables []string `json:"tables" validate:"len=3,dive,required"`
		First  []string `json:"first"`
		Second []string `json:"second"`
	}

	AggregateRequest struct {
		Table  string `json:"table" validate:"required"`
		Method string `json:"method" validate:"required"`
		Column string `json:"column" validate:"required"`
	}

	RecordsResponse struct {
		Count   int           `json:"count"`
		Records []data.Record `json:"records"`
	}

	AggregateResponse struct {
		Method string  `json:"method"`
		Column string  `json:"column"`
		Value  float64 `json:"value"`
	}
)

// NewServer builds the HTTP routes for db
func NewServer(db *engine.Database) *Server {
	s := &Server{
		Echo: echo.New(),
		db:   db,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Validator = &CustomValidator{validator: validator.New()}

	s.Echo.Use(RequestLogger)

	s.Echo.GET("/hc", s.HealthCheck)
	s.Echo.GET("/tables", s.ListTables)
	s.Echo.POST("/tables/:name/records", s.Insert)
	s.Echo.POST("/tables/:name/select", s.Select)
	s.Echo.POST("/join", s.Join)
	s.Echo.POST("/multijoin", s.MultiJoin)
	s.Echo.POST("/aggregate", s.Aggregate)

	return s
}

// Start listens on port until the server is shut down
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	slog.Info("Running on port", "port", port)
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func ValidateRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Validate(req)
}

func (*Server) HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) ListTables(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.db.Tables())
}

func (s *Server) Insert(c echo.Context) error {
	var req InsertRequest
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := c.Param("name")
	if err := s.db.Insert(name, req.Raw); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) Select(c echo.Context) error {
	var req SelectRequest
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.SelectArgs(c.Param("name"), req.Args...)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, RecordsResponse{Count: len(rows), Records: rows})
}

func (s *Server) Join(c echo.Context) error {
	var req JoinRequest
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Join(req.Left, req.Right, req.LeftAttr, req.RightAttr)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, RecordsResponse{Count: len(rows), Records: rows})
}

func (s *Server) MultiJoin(c echo.Context) error {
	var req MultiJoinRequest
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.MultiJoin(req.Tables[0], req.Tables[1], req.Tables[2], req.First, req.Second)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, RecordsResponse{Count: len(rows), Records: rows})
}

func (s *Server) Aggregate(c echo.Context) error {
	var req AggregateRequest
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.db.Aggregate(req.Table, req.Method, req.Column)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, AggregateResponse{Method: req.Method, Column: req.Column, Value: v})
}

// toHTTPError maps domain errors onto status codes
func toHTTPError(err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainerrors.ErrTableNotFound),
		errors.Is(err, domainerrors.ErrTablesMissing):
		status = http.StatusNotFound
	case errors.Is(err, domainerrors.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, domainerrors.ErrInvalidArguments),
		errors.Is(err, domainerrors.ErrMalformedRecord),
		errors.Is(err, domainerrors.ErrNoValidData),
		errors.Is(err, domainerrors.ErrUnknownMethod):
		status = http.StatusBadRequest
	}
	return echo.NewHTTPError(status, err.Error())
}

// RequestLogger tags each request with an id and logs it once handled
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		reqID := uuid.NewString()
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)

		if err := next(c); err != nil {
			c.Error(err)
		}

		req := c.Request()
		slog.Debug("request handled",
			slog.String("req_id", reqID),
			slog.String("method", req.Method),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().Status),
			slog.Duration("latency", time.Since(start)),
		)
		return nil
	}
}
