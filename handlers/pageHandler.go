package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wikiquiz/db"
	"wikiquiz/services"
	"wikiquiz/session"
	"wikiquiz/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/style.css
var assets embed.FS

const (
	pageGenerate = "generate"
	pageHistory  = "history"
	pageNotFound = "notfound"
)

// questionBlock pairs a question with the path its forms post to.
type questionBlock struct {
	Base     string
	Question views.QuestionSnapshot
}

type quizBlock struct {
	Base string
	Quiz *views.QuizSnapshot
}

var templateFuncs = template.FuncMap{
	"quizBlock": func(base string, quiz *views.QuizSnapshot) quizBlock {
		return quizBlock{Base: base, Quiz: quiz}
	},
	"question": func(base string, q views.QuestionSnapshot) questionBlock {
		return questionBlock{Base: base, Question: q}
	},
	"date": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006 at 3:04 PM")
	},
}

type pageData struct {
	Title    string
	Shell    views.Shell
	Generate *views.GenerateSnapshot
	History  *views.HistorySnapshot
}

// PageHandler serves the server-rendered generate and history pages.
type PageHandler struct {
	sessions *session.Store
	pages    map[string]*template.Template
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewPageHandler(sessions *session.Store, logger *zap.SugaredLogger) (*PageHandler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageGenerate, pageHistory, pageNotFound} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(assets,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &PageHandler{
		sessions: sessions,
		pages:    pages,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (h *PageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.GeneratePage).Methods("GET")
	router.HandleFunc("/generate", h.SubmitGenerate).Methods("POST")
	router.HandleFunc("/generate/events", h.GenerateEvents).Methods("GET")
	router.HandleFunc("/generate/questions/{index:[0-9]+}/answer", h.AnswerGenerated).Methods("POST")
	router.HandleFunc("/generate/questions/{index:[0-9]+}/explanation", h.ToggleGeneratedExplanation).Methods("POST")

	router.HandleFunc("/history", h.HistoryPage).Methods("GET")
	router.HandleFunc("/history/dismiss", h.DismissHistory).Methods("POST")
	router.HandleFunc("/history/questions/{index:[0-9]+}/answer", h.AnswerHistory).Methods("POST")
	router.HandleFunc("/history/questions/{index:[0-9]+}/explanation", h.ToggleHistoryExplanation).Methods("POST")
	router.HandleFunc("/history/{id}/select", h.SelectHistory).Methods("POST")

	router.HandleFunc("/static/style.css", h.Stylesheet).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
}

func (h *PageHandler) GeneratePage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.renderGenerate(w, r, sess, http.StatusOK)
}

func (h *PageHandler) SubmitGenerate(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	err := sess.Generate.Submit(r.FormValue("url"))
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderGenerate(w, r, sess, http.StatusUnprocessableEntity)
		case errors.Is(err, views.ErrSubmissionInFlight):
			h.renderGenerate(w, r, sess, http.StatusConflict)
		default:
			h.logger.Errorf("Failed to submit quiz generation: %v", err)
			h.renderGenerate(w, r, sess, http.StatusInternalServerError)
		}
		return
	}

	h.logger.Infof("Session %s started quiz generation", sess.ID)
	http.Redirect(w, r, views.GeneratePath, http.StatusSeeOther)
}

// GenerateEvents reports the loading state over server-sent events and ends
// the stream once the submission has settled.
func (h *PageHandler) GenerateEvents(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if sess.Generate.Loading() {
		fmt.Fprint(w, "event: loading\ndata: {}\n\n")
		flusher.Flush()
	}

	if err := sess.Generate.Wait(r.Context()); err != nil {
		return
	}

	fmt.Fprint(w, "event: done\ndata: {}\n\n")
	flusher.Flush()
}

func (h *PageHandler) AnswerGenerated(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	index := questionIndex(r)

	if _, err := sess.Generate.Answer(index, r.FormValue("option")); err != nil {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("%s#q%d", views.GeneratePath, index), http.StatusSeeOther)
}

func (h *PageHandler) ToggleGeneratedExplanation(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	index := questionIndex(r)

	if _, err := sess.Generate.ToggleExplanation(index); err != nil {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("%s#q%d", views.GeneratePath, index), http.StatusSeeOther)
}

func (h *PageHandler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	if err := sess.History.Load(r.Context(), r.URL.Query().Get("q")); err != nil {
		h.logger.Errorf("Failed to load history page: %v", err)
		h.renderHistory(w, r, sess, http.StatusInternalServerError)
		return
	}
	h.renderHistory(w, r, sess, http.StatusOK)
}

func (h *PageHandler) SelectHistory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	id := mux.Vars(r)["id"]

	if err := sess.History.Select(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, db.ErrQuizNotFound) {
			status = http.StatusNotFound
		} else {
			h.logger.Errorf("Failed to open quiz %s: %v", id, err)
		}
		h.renderHistory(w, r, sess, status)
		return
	}
	http.Redirect(w, r, historyLocation(sess, ""), http.StatusSeeOther)
}

func (h *PageHandler) DismissHistory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.History.Dismiss()
	http.Redirect(w, r, historyLocation(sess, ""), http.StatusSeeOther)
}

func (h *PageHandler) AnswerHistory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	index := questionIndex(r)

	if _, err := sess.History.Answer(index, r.FormValue("option")); err != nil {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, historyLocation(sess, fmt.Sprintf("q%d", index)), http.StatusSeeOther)
}

func (h *PageHandler) ToggleHistoryExplanation(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	index := questionIndex(r)

	if _, err := sess.History.ToggleExplanation(index); err != nil {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, historyLocation(sess, fmt.Sprintf("q%d", index)), http.StatusSeeOther)
}

func (h *PageHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := assets.ReadFile("static/style.css")
	if err != nil {
		http.Error(w, "stylesheet missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(css)
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageNotFound, http.StatusNotFound, pageData{
		Title: "Page Not Found",
		Shell: views.NewShell(r.URL.Path, h.now()),
	})
}

func (h *PageHandler) renderGenerate(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	snapshot := sess.Generate.Snapshot()
	h.render(w, pageGenerate, status, pageData{
		Title:    "Generate Quiz",
		Shell:    views.NewShell(views.GeneratePath, h.now()),
		Generate: &snapshot,
	})
}

func (h *PageHandler) renderHistory(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	snapshot := sess.History.Snapshot()
	h.render(w, pageHistory, status, pageData{
		Title:   "Past Quizzes",
		Shell:   views.NewShell(views.HistoryPath, h.now()),
		History: &snapshot,
	})
}

func (h *PageHandler) render(w http.ResponseWriter, page string, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Errorf("Failed to render %s page: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func questionIndex(r *http.Request) int {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return -1
	}
	return index
}

func historyLocation(sess *session.Session, fragment string) string {
	location := views.HistoryPath
	if query := sess.History.Snapshot().Query; query != "" {
		location += "?q=" + url.QueryEscape(query)
	}
	if fragment != "" {
		location += "#" + fragment
	}
	return location
}
