package api

import (
	"errors"
	"net/http"

	"github.com/samber/lo"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
)

type eraView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func localizeEra(e catalog.Era, lang i18n.Language) eraView {
	return eraView{
		ID:          e.ID,
		Title:       e.Title.Get(lang),
		Period:      e.Period.Get(lang),
		Description: e.Description.Get(lang),
		Image:       e.Image,
	}
}

type questionView struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// requestLanguage reads ?lang=, defaulting to the machine's language.
func (s *Server) requestLanguage(r *http.Request) (i18n.Language, error) {
	code := r.URL.Query().Get("lang")
	if code == "" {
		return s.opts.Machine.Language(), nil
	}
	return i18n.Parse(code)
}

func (s *Server) listLanguages(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, i18n.Languages())
}

func (s *Server) listEras(w http.ResponseWriter, r *http.Request) {
	lang, err := s.requestLanguage(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	eras := s.opts.Catalog.Search(r.URL.Query().Get("q"), lang)
	JSON(w, http.StatusOK, lo.Map(eras, func(e catalog.Era, _ int) eraView { return localizeEra(e, lang) }))
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	lang, err := s.requestLanguage(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	questions := lo.Map(s.opts.Catalog.Questions(), func(q catalog.Question, _ int) questionView {
		return questionView{
			ID:       q.ID,
			Question: q.Question.Get(lang),
			Options:  lo.Map(q.Options, func(o i18n.Text, _ int) string { return o.Get(lang) }),
		}
	})
	JSON(w, http.StatusOK, questions)
}

func isUnsupportedLanguage(err error) bool {
	return errors.Is(err, i18n.ErrUnsupportedLanguage)
}
