package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/date"
	"github.com/etnz/bondbook/renderer"
	"github.com/labstack/echo/v4"
)

// on returns the day the report is computed for: the "on" query parameter,
// today otherwise, moved to the month of the "month" parameter if any.
func (s *Server) on(c echo.Context) (date.Date, error) {
	on := s.today()
	if v := c.QueryParam("on"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return date.Date{}, err
		}
		on = d
	}
	if v := c.QueryParam("month"); v != "" {
		m, err := bondbook.ParseMonth(v)
		if err != nil {
			return date.Date{}, err
		}
		on = date.New(on.Year(), time.Month(m), 1)
	}
	return on, nil
}

// hover reads the element under the pointer from the query parameters, with
// the given prefix.
func hover(c echo.Context, prefix string) (bondbook.Hover, error) {
	h := bondbook.Hover{
		Row:         bondbook.ID(c.QueryParam(prefix + "row")),
		Recommended: bondbook.ID(c.QueryParam(prefix + "recommended")),
	}
	if v := c.QueryParam(prefix + "month"); v != "" {
		m, err := bondbook.ParseMonth(v)
		if err != nil {
			return bondbook.Hover{}, err
		}
		h.Month = m
	}
	return h, nil
}

// report computes the report for the request.
func (s *Server) report(c echo.Context) (*bondbook.Report, error) {
	on, err := s.on(c)
	if err != nil {
		return nil, err
	}
	h, err := hover(c, "hover_")
	if err != nil {
		return nil, err
	}
	return bondbook.NewReport(s.session.Book(), s.currency, on, h), nil
}

// mutationError sends the response matching an error returned by a session
// mutation.
func mutationError(c echo.Context, err error) error {
	var verr *bondbook.ValidationError
	switch {
	case errors.As(err, &verr):
		return ValidationResponse(c, verr.Error(), verr.Fields)
	case errors.Is(err, bondbook.ErrNotFound):
		return ErrorResponse(c, http.StatusNotFound, NotFoundException, err.Error())
	default:
		return ErrorResponse(c, http.StatusInternalServerError, ServerException, err.Error())
	}
}

// Report returns the full report of the book.
func (s *Server) Report(c echo.Context) error {
	r, err := s.report(c)
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, InputException, err.Error())
	}
	return SuccessResponse(c, r)
}

// Highlight returns the rows and months to highlight for the "month", "row"
// or "recommended" query parameter.
func (s *Server) Highlight(c echo.Context) error {
	h, err := hover(c, "")
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, InputException, err.Error())
	}
	return SuccessResponse(c, bondbook.HighlightOf(s.session.Book().Instruments(), h))
}

// Instruments returns the instruments in display order.
func (s *Server) Instruments(c echo.Context) error {
	return SuccessResponse(c, s.session.Book().Instruments())
}

// Get returns one instrument.
func (s *Server) Get(c echo.Context) error {
	i, ok := s.session.Book().Get(bondbook.ID(c.Param("id")))
	if !ok {
		return ErrorResponse(c, http.StatusNotFound, NotFoundException, "instrument not found")
	}
	return SuccessResponse(c, i)
}

// Add appends a placeholder instrument and returns it. It is being edited.
func (s *Server) Add(c echo.Context) error {
	i, err := s.session.Add(c.Request().Context())
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, Response{Status: "success", Data: i})
}

// BeginEdit marks an instrument as being edited.
func (s *Server) BeginEdit(c echo.Context) error {
	i, err := s.session.BeginEdit(bondbook.ID(c.Param("id")))
	if err != nil {
		return mutationError(c, err)
	}
	return SuccessResponse(c, i)
}

// Edit replaces an instrument with the draft in the request body.
func (s *Server) Edit(c echo.Context) error {
	var d bondbook.Draft
	if err := c.Bind(&d); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, InputException, "Invalid request body")
	}
	i, err := s.session.Edit(c.Request().Context(), bondbook.ID(c.Param("id")), d)
	if err != nil {
		return mutationError(c, err)
	}
	return SuccessResponse(c, i)
}

// Cancel stops editing.
func (s *Server) Cancel(c echo.Context) error {
	s.session.Cancel()
	return SuccessResponse(c, nil)
}

// Delete removes an instrument.
func (s *Server) Delete(c echo.Context) error {
	if err := s.session.Delete(c.Request().Context(), bondbook.ID(c.Param("id"))); err != nil {
		return mutationError(c, err)
	}
	return SuccessResponse(c, s.session.Book().Instruments())
}

// MoveUp moves an instrument one position up.
func (s *Server) MoveUp(c echo.Context) error {
	if err := s.session.MoveUp(c.Request().Context(), bondbook.ID(c.Param("id"))); err != nil {
		return mutationError(c, err)
	}
	return SuccessResponse(c, s.session.Book().Instruments())
}

// MoveDown moves an instrument one position down.
func (s *Server) MoveDown(c echo.Context) error {
	if err := s.session.MoveDown(c.Request().Context(), bondbook.ID(c.Param("id"))); err != nil {
		return mutationError(c, err)
	}
	return SuccessResponse(c, s.session.Book().Instruments())
}

// MoveRequest is the body of a drag and drop.
type MoveRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// Move relocates the instrument at position from to position to.
func (s *Server) Move(c echo.Context) error {
	var req MoveRequest
	if err := c.Bind(&req); err != nil || req.From == nil || req.To == nil {
		return ErrorResponse(c, http.StatusBadRequest, InputException, "Invalid request body, want {\"from\":i,\"to\":j}")
	}
	if err := s.session.Move(c.Request().Context(), *req.From, *req.To); err != nil {
		return mutationError(c, err)
	}
	return SuccessResponse(c, s.session.Book().Instruments())
}

// ReportMarkdown returns the report as a markdown document.
func (s *Server) ReportMarkdown(c echo.Context) error {
	r, err := s.report(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(renderer.RenderReport(r, renderer.ReportOptions{})))
}

// ReportHTML returns the report as an HTML page.
func (s *Server) ReportHTML(c echo.Context) error {
	r, err := s.report(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	page, err := renderer.HTML("Bond Income on "+r.On.String(), renderer.RenderReport(r, renderer.ReportOptions{}))
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}
