// Package desk serves purchase drafts over HTTP.
//
// A draft lives on the server between the moment the purchase form opens and
// the moment it is submitted or closed. Every edit returns the new snapshot
// of the draft, for display.
package desk

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/etnz/invest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Server holds what the handlers need.
type Server struct {
	catalog  *invest.Catalog
	sessions *Sessions
	executor invest.Executor
	currency string
}

// NewServer returns a server selling the catalog's instruments. Drafts can only
// be opened on instruments in 'currency', any currency if empty.
func NewServer(catalog *invest.Catalog, sessions *Sessions, executor invest.Executor, currency string) *Server {
	return &Server{catalog: catalog, sessions: sessions, executor: executor, currency: currency}
}

// Router creates a chi router with all routes registered. A nil limiter
// disables rate limiting.
func (s *Server) Router(limiter *rate.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogging)
	if limiter != nil {
		r.Use(rateLimit(limiter))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/quotes", s.listQuotes)
	r.Get("/quotes/{symbol}", s.getQuote)

	r.Post("/drafts", s.openDraft)
	r.Route("/drafts/{id}", func(r chi.Router) {
		r.Get("/", s.getDraft)
		r.Delete("/", s.closeDraft)
		r.Put("/mode", s.setMode)
		r.Put("/shares", s.editShares)
		r.Put("/amount", s.editAmount)
		r.Post("/confirm", s.confirmAmount)
		r.Post("/submit", s.submit)
	})
	return r
}

// requestLogging logs each request's method, path, status code, and duration.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Printf("rate limit exceeded for %s", r.URL.Path)
				WriteError(w, http.StatusTooManyRequests, "rate_limited", http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewLimiter returns a limiter allowing 'perSecond' requests per second.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("desk listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down desk")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
