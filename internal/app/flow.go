package app

import (
	"github.com/kellen/chronos/internal/appstate"
	convo "github.com/kellen/chronos/internal/chat"
	"github.com/kellen/chronos/internal/i18n"
	qz "github.com/kellen/chronos/internal/quiz"
	"github.com/kellen/chronos/internal/screen"
	chatscreen "github.com/kellen/chronos/internal/screens/chat"
	"github.com/kellen/chronos/internal/screens/cover"
	"github.com/kellen/chronos/internal/screens/instructions"
	"github.com/kellen/chronos/internal/screens/placeholder"
	quizscreen "github.com/kellen/chronos/internal/screens/quiz"
	"github.com/kellen/chronos/internal/screens/results"
)

// flows builds screens. It is the only place that knows how screens chain.
type flows struct {
	opts     Options
	identity *qz.Identity
}

// root returns the top-level screen for the machine's current state.
func (f *flows) root() screen.Screen {
	if f.opts.Machine.Screen() == appstate.Chat {
		session := convo.New(f.opts.Opener, convo.WithLogger(f.opts.Logger))
		return chatscreen.New(f.opts.Machine, session)
	}
	return cover.New(f.opts.Machine, f.opts.Catalog, f.instructions)
}

func (f *flows) instructions() screen.Screen {
	if len(f.opts.Catalog.Questions()) == 0 {
		lang := f.opts.Machine.Language()
		return placeholder.New(i18n.T(lang, i18n.QuizTitle), i18n.T(lang, i18n.NoQuestions))
	}
	return instructions.New(f.opts.Machine, f.quiz)
}

func (f *flows) quiz() screen.Screen {
	return f.quizFor(qz.NewAttempt(f.opts.Catalog.Questions()))
}

func (f *flows) quizFor(attempt *qz.Attempt) screen.Screen {
	return quizscreen.New(f.opts.Machine, attempt, f.opts.QuizDuration, f.results)
}

func (f *flows) results(attempt *qz.Attempt) screen.Screen {
	return results.New(f.opts.Machine, attempt, results.Deps{
		Identity:   f.identity,
		Downloader: f.opts.Downloader,
		Events:     f.opts.Events,
		Logger:     f.opts.Logger,
		Restart:    f.quizFor,
	})
}
