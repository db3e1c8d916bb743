package desk

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/etnz/invest"
	"github.com/go-chi/chi/v5"
)

// draftResponse is returned by every draft route.
type draftResponse struct {
	ID    string          `json:"id"`
	Draft invest.Snapshot `json:"draft"`
}

// submitResponse is returned by a successful submission.
type submitResponse struct {
	ID    string          `json:"id"`
	Order invest.Order    `json:"order"`
	Draft invest.Snapshot `json:"draft"`
}

type openRequest struct {
	Symbol string `json:"symbol"`
}

type modeRequest struct {
	Mode invest.Mode `json:"mode"`
}

type valueRequest struct {
	Value   string `json:"value"`
	Confirm bool   `json:"confirm,omitempty"`
}

type submitRequest struct {
	Balance *string `json:"balance,omitempty"`
}

func (s *Server) listQuotes(w http.ResponseWriter, r *http.Request) {
	quotes := s.catalog.Search(r.URL.Query().Get("q"))
	if quotes == nil {
		quotes = []invest.Quote{}
	}
	WriteJSON(w, http.StatusOK, quotes)
}

func (s *Server) getQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	q, ok := s.catalog.Get(symbol)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "unknown instrument "+symbol)
		return
	}
	WriteJSON(w, http.StatusOK, q)
}

func (s *Server) openDraft(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	q, ok := s.catalog.Get(symbol)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "unknown instrument "+symbol)
		return
	}
	if s.currency != "" && q.Currency() != s.currency {
		WriteError(w, http.StatusUnprocessableEntity, "currency_mismatch", "instrument "+symbol+" is not traded in "+s.currency)
		return
	}
	id := s.sessions.Open(q)
	var snap invest.Snapshot
	s.sessions.With(id, func(d *invest.Draft) { snap = d.Snapshot() })
	log.Printf("draft %s opened for %s", id, symbol)
	WriteJSON(w, http.StatusCreated, draftResponse{ID: id, Draft: snap})
}

// withDraft runs f on the draft named in the URL, and writes the resulting
// snapshot. f's error, if any, is written instead with the snapshot attached.
func (s *Server) withDraft(w http.ResponseWriter, r *http.Request, f func(d *invest.Draft) error) {
	id := chi.URLParam(r, "id")
	var (
		snap invest.Snapshot
		err  error
	)
	found := s.sessions.With(id, func(d *invest.Draft) {
		err = f(d)
		snap = d.Snapshot()
	})
	if !found {
		WriteError(w, http.StatusNotFound, "not_found", "no such draft "+id)
		return
	}
	if err != nil {
		writeDraftError(w, err, snap)
		return
	}
	WriteJSON(w, http.StatusOK, draftResponse{ID: id, Draft: snap})
}

func writeDraftError(w http.ResponseWriter, err error, snap invest.Snapshot) {
	status := http.StatusInternalServerError
	var verr *invest.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, invest.ErrSharesNotSupported), errors.Is(err, invest.ErrWrongMode):
		status = http.StatusConflict
	}
	WriteJSON(w, status, errorResponse{Error: errorCode(err), Message: err.Error(), Draft: &snap})
}

func (s *Server) getDraft(w http.ResponseWriter, r *http.Request) {
	s.withDraft(w, r, func(d *invest.Draft) error { return nil })
}

func (s *Server) closeDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.Close(id) {
		WriteError(w, http.StatusNotFound, "not_found", "no such draft "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	s.withDraft(w, r, func(d *invest.Draft) error { return d.SetMode(req.Mode) })
}

func (s *Server) editShares(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	s.withDraft(w, r, func(d *invest.Draft) error { return d.EditShares(req.Value) })
}

func (s *Server) editAmount(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	s.withDraft(w, r, func(d *invest.Draft) error {
		if err := d.EditAmount(req.Value); err != nil {
			return err
		}
		if req.Confirm {
			d.ConfirmAmount()
		}
		return nil
	})
}

func (s *Server) confirmAmount(w http.ResponseWriter, r *http.Request) {
	s.withDraft(w, r, func(d *invest.Draft) error {
		d.ConfirmAmount()
		return nil
	})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if r.ContentLength != 0 {
		if err := ParseJSON(w, r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
	}
	id := chi.URLParam(r, "id")
	var (
		order  invest.Order
		snap   invest.Snapshot
		err    error
		balErr error
	)
	found := s.sessions.With(id, func(d *invest.Draft) {
		var balance *invest.Money
		if req.Balance != nil {
			b, err := invest.ParseBalance(*req.Balance, d.Quote().Currency())
			if err != nil {
				balErr = err
				return
			}
			balance = &b
		}
		order, err = d.Submit(r.Context(), balance, s.executor)
		snap = d.Snapshot()
	})
	if !found {
		WriteError(w, http.StatusNotFound, "not_found", "no such draft "+id)
		return
	}
	if balErr != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", balErr.Error())
		return
	}
	var verr *invest.ValidationError
	switch {
	case errors.As(err, &verr):
		writeDraftError(w, err, snap)
		return
	case err != nil:
		log.Printf("draft %s: %v", id, err)
		WriteJSON(w, http.StatusBadGateway, errorResponse{Error: "execution_failed", Message: err.Error(), Draft: &snap})
		return
	}
	log.Printf("draft %s submitted: order %s %s %s", id, order.ID, order.Symbol, order.Amount)
	WriteJSON(w, http.StatusOK, submitResponse{ID: id, Order: order, Draft: snap})
}
