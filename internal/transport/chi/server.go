// Package chi exposes the search pipelines over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/politylink/polisearch/internal/domain"
	billuc "github.com/politylink/polisearch/internal/usecase/bill"
	memberuc "github.com/politylink/polisearch/internal/usecase/member"
	speechuc "github.com/politylink/polisearch/internal/usecase/speech"
	wordclouduc "github.com/politylink/polisearch/internal/usecase/wordcloud"
)

// Consumer interfaces over the use-case services (ISP).
type (
	billSearcher interface {
		Search(ctx context.Context, p billuc.Params) (billuc.Envelope, error)
	}
	memberSearcher interface {
		Search(ctx context.Context, p memberuc.Params) (memberuc.Envelope, error)
	}
	speechSearcher interface {
		Search(ctx context.Context, p speechuc.Params) (speechuc.Envelope, error)
	}
	tfidfCalculator interface {
		Calc(ctx context.Context, p wordclouduc.Params) ([]wordclouduc.Window, error)
	}
	statsReloader interface {
		Reload(path string) error
	}
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers for the search API.
type Server struct {
	bills         billSearcher
	members       memberSearcher
	speeches      speechSearcher
	wordcloud     tfidfCalculator
	stats         statsReloader
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	bills billSearcher,
	members memberSearcher,
	speeches speechSearcher,
	wordcloud tfidfCalculator,
	stats statsReloader,
	logger *zap.Logger,
) *Server {
	s := &Server{
		bills:     bills,
		members:   members,
		speeches:  speeches,
		wordcloud: wordcloud,
		stats:     stats,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, "invalid_page"),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, "invalid_query"),
		sentinelHandler(domain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"),
		sentinelHandler(domain.ErrMalformedBillNumber, http.StatusBadRequest, "malformed_bill_number"),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, "backend_unavailable"),
	}
	return s
}

// Routes registers all API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/bills", s.getBills)
	r.Get("/members", s.getMembers)
	r.Post("/search", s.postSearch)
	r.Post("/tf_idf", s.postTFIDF)
	r.Post("/load", s.postLoad)
	r.Get("/healthz", s.getHealthz)
}

func (s *Server) getBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q, "page", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	numItems, err := intParam(q, "items", 3)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	fragment, err := intParam(q, "fragment", 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	params := billuc.Params{
		Query:           q.Get("q"),
		Categories:      q["category"],
		Statuses:        q["status"],
		BelongedToDiets: q["belonged"],
		SubmittedDiets:  q["submitted_diet"],
		SubmittedGroups: q["submitted_group"],
		SupportedGroups: q["supported_group"],
		OpposedGroups:   q["opposed_group"],
		FullText:        boolParam(q, "full"),
		Page:            page,
		NumItems:        numItems,
		FragmentSize:    fragment,
	}

	envelope, err := s.bills.Search(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

func (s *Server) getMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q, "page", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	numItems, err := intParam(q, "items", 3)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	fragment, err := intParam(q, "fragment", 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	params := memberuc.Params{
		Query:        q.Get("q"),
		Groups:       q["group"],
		Houses:       q["house"],
		Page:         page,
		NumItems:     numItems,
		FragmentSize: fragment,
	}

	envelope, err := s.members.Search(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

type searchRequest struct {
	Term      string `json:"term"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Committee string `json:"committee"`
	Items     int    `json:"items"`
	Fragment  int    `json:"fragment"`
}

func (s *Server) postSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	params := speechuc.Params{
		Term:         req.Term,
		Start:        req.Start,
		End:          req.End,
		Committee:    req.Committee,
		NumItems:     req.Items,
		FragmentSize: req.Fragment,
	}

	envelope, err := s.speeches.Search(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

type tfidfRequest struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Committee string `json:"committee"`
	Diet      int    `json:"diet"`
	Interval  int    `json:"interval"`
	Items     int    `json:"items"`
}

func (s *Server) postTFIDF(w http.ResponseWriter, r *http.Request) {
	var req tfidfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	params := wordclouduc.Params{
		Start:      req.Start,
		End:        req.End,
		Committee:  req.Committee,
		DietNumber: req.Diet,
		Interval:   req.Interval,
		NumItems:   req.Items,
	}

	result, err := s.wordcloud.Calc(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if result == nil {
		result = []wordclouduc.Window{}
	}
	writeJSON(w, http.StatusOK, result)
}

type loadRequest struct {
	File string `json:"file"`
}

func (s *Server) postLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	if err := s.stats.Reload(req.File); err != nil {
		s.logger.Error("reload term stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reload_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) getHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDomainError maps a use-case error onto an HTTP response via the
// ordered handler chain; unmatched errors are internal.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}
	s.logger.Error("internal error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
