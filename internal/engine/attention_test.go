package engine

import (
	"testing"

	"github.com/tcfprep/backend/internal/model"
)

func TestDeservesAttention(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		wrong   int
		want    bool
	}{
		{"never attempted", 0, 0, false},
		{"single correct", 1, 0, true},
		{"single wrong", 0, 1, true},
		{"contested 3-2", 3, 2, true},
		{"contested 2-3", 2, 3, true},
		{"even split", 4, 4, true},
		{"mastered 5-0", 5, 0, false},
		{"mastered 4-2", 4, 2, false},
		{"decisively wrong 0-5", 0, 5, false},
		{"edge diff exactly 2", 3, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.AnswerRecord{Correct: tt.correct, Wrong: tt.wrong}
			if got := DeservesAttention(rec); got != tt.want {
				t.Errorf("DeservesAttention(%d/%d) = %v, want %v", tt.correct, tt.wrong, got, tt.want)
			}
		})
	}
}
