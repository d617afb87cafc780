package model

import "testing"

func TestParseSkill(t *testing.T) {
	tests := []struct {
		raw  string
		want Skill
		ok   bool
	}{
		{"listening", SkillListening, true},
		{"reading", SkillReading, true},
		{"writing", "", false},
		{"", "", false},
		{"Listening", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSkill(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSkill(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDeriveID(t *testing.T) {
	if got := DeriveID("blanc-2019", 7); got != "blanc-2019-07" {
		t.Errorf("DeriveID = %q, want %q", got, "blanc-2019-07")
	}
	if got := DeriveID("blanc-2019", 12); got != "blanc-2019-12" {
		t.Errorf("DeriveID = %q, want %q", got, "blanc-2019-12")
	}
}

func TestQuestionValidate(t *testing.T) {
	base := func() Question {
		return Question{
			ID:     "t-01",
			Skill:  SkillReading,
			Weight: 9,
			Alternatives: []Alternative{
				{Label: "A", Correct: true},
				{Label: "B"},
				{Label: "C"},
			},
		}
	}

	q := base()
	if err := q.Validate(); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	q = base()
	q.Alternatives[1].Correct = true
	if err := q.Validate(); err == nil {
		t.Error("two correct alternatives accepted")
	}

	q = base()
	q.Alternatives[0].Correct = false
	if err := q.Validate(); err == nil {
		t.Error("no correct alternative accepted")
	}

	q = base()
	q.Weight = 0
	if err := q.Validate(); err == nil {
		t.Error("zero weight accepted")
	}
}

func TestCorrectIndex(t *testing.T) {
	q := Question{Alternatives: []Alternative{
		{Label: "A"},
		{Label: "B", Correct: true},
		{Label: "C"},
	}}
	if got := q.CorrectIndex(); got != 1 {
		t.Errorf("CorrectIndex = %d, want 1", got)
	}

	malformed := Question{Alternatives: []Alternative{{Label: "A"}}}
	if got := malformed.CorrectIndex(); got != -1 {
		t.Errorf("CorrectIndex on malformed question = %d, want -1", got)
	}
}

func TestSanitizeStripsCorrectness(t *testing.T) {
	q := Question{
		ID:     "t-01",
		Weight: 15,
		Alternatives: []Alternative{
			{Label: "oui", Correct: true},
			{Label: "non"},
		},
		MediaRef: "clip.mp3",
		Passage:  "transcript",
	}

	client := q.Sanitize()
	if client.ID != q.ID || client.Weight != q.Weight {
		t.Errorf("Sanitize lost identity fields")
	}
	if len(client.Labels) != 2 || client.Labels[0] != "oui" || client.Labels[1] != "non" {
		t.Errorf("Labels = %v, want labels in order", client.Labels)
	}
	if client.MediaRef != "clip.mp3" || client.Passage != "transcript" {
		t.Errorf("Sanitize lost media fields")
	}
}

func TestAnswerRecordAttempts(t *testing.T) {
	var zero AnswerRecord
	if zero.Attempts() != 0 {
		t.Errorf("zero record attempts = %d", zero.Attempts())
	}
	rec := AnswerRecord{Correct: 3, Wrong: 2}
	if rec.Attempts() != 5 {
		t.Errorf("Attempts = %d, want 5", rec.Attempts())
	}
}
