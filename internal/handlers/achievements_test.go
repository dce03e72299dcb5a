package handlers

import (
	"testing"

	"github.com/Tohidkhan6332/quizbot/internal/models"
)

func TestEvaluateQuizAchievements(t *testing.T) {
	tests := []struct {
		name         string
		totalQuizzes int
		bestStreak   int
		want         []string
	}{
		{
			name:         "first quiz no streak",
			totalQuizzes: 1,
			bestStreak:   2,
			want:         []string{models.AchievementQuizStarter},
		},
		{
			name:         "streak of three",
			totalQuizzes: 5,
			bestStreak:   3,
			want:         []string{models.AchievementQuizStarter, models.AchievementStreak3},
		},
		{
			name:         "perfect run",
			totalQuizzes: 2,
			bestStreak:   10,
			want:         []string{models.AchievementQuizStarter, models.AchievementStreak3, models.AchievementStreak10},
		},
		{
			name:         "nothing earned",
			totalQuizzes: 0,
			bestStreak:   0,
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateQuizAchievements(tt.totalQuizzes, tt.bestStreak)
			if len(got) != len(tt.want) {
				t.Fatalf("EvaluateQuizAchievements() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("earned[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAchievementCatalog(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range achievementCatalog {
		if def.ID == "" || def.Title == "" || def.Description == "" {
			t.Errorf("incomplete catalog entry: %+v", def)
		}
		if seen[def.ID] {
			t.Errorf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = true
	}

	for _, id := range []string{
		models.AchievementQuizStarter,
		models.AchievementStreak3,
		models.AchievementStreak10,
		models.AchievementBattleWinner,
	} {
		if _, ok := achievementByID(id); !ok {
			t.Errorf("achievement %q missing from catalog", id)
		}
	}
}
