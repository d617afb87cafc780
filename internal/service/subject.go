package service

import (
	"fmt"

	"github.com/tcfprep/backend/internal/model"
)

// ListeningAdapter serves the listening paper: audio media, transcript
// as supporting text.
type ListeningAdapter struct {
	MediaBaseURL string
}

func (a ListeningAdapter) Skill() model.Skill {
	return model.SkillListening
}

func (a ListeningAdapter) MediaURL(q *model.Question) string {
	if q.MediaRef == "" {
		return ""
	}
	return fmt.Sprintf("%s/audio/%s", a.MediaBaseURL, q.MediaRef)
}

func (a ListeningAdapter) SupportText(q *model.Question) string {
	return q.Passage
}

// ReadingAdapter serves the reading paper: document images when
// present, passage as the primary text.
type ReadingAdapter struct {
	MediaBaseURL string
}

func (a ReadingAdapter) Skill() model.Skill {
	return model.SkillReading
}

func (a ReadingAdapter) MediaURL(q *model.Question) string {
	if q.MediaRef == "" {
		return ""
	}
	return fmt.Sprintf("%s/images/%s", a.MediaBaseURL, q.MediaRef)
}

func (a ReadingAdapter) SupportText(q *model.Question) string {
	return q.Passage
}
