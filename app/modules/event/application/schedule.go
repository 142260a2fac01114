package eventservice

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// parseScheduleText turns a human schedule phrase into a concrete time,
// relative to the clock's now.
func (s *Service) parseScheduleText(text string) (*time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(text, s.clock.Now())
	if err != nil || r == nil {
		return nil, &InvalidProgramError{Reason: "could not understand schedule text " + quoted(text)}
	}
	t := r.Time
	return &t, nil
}

func quoted(s string) string { return `"` + s + `"` }
