package repository

import (
	"testing"

	"examprep_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMergePracticeResult(t *testing.T) {
	cases := []struct {
		name         string
		existing     model.UserPracticeProgress
		correct      bool
		wantCorrect  bool
		wantAttempts int
	}{
		{"首次答对后答错仍保持已掌握", model.UserPracticeProgress{Correct: true, Attempts: 1}, false, true, 2},
		{"未掌握时答对转为已掌握", model.UserPracticeProgress{Correct: false, Attempts: 2}, true, true, 3},
		{"连续答错保持未掌握", model.UserPracticeProgress{Correct: false, Attempts: 1}, false, false, 2},
		{"已掌握再答对不变", model.UserPracticeProgress{Correct: true, Attempts: 5}, true, true, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotCorrect, gotAttempts := mergePracticeResult(&tc.existing, tc.correct)
			assert.Equal(t, tc.wantCorrect, gotCorrect)
			assert.Equal(t, tc.wantAttempts, gotAttempts)
		})
	}
}
