package models

import "testing"

func validQuestion() Question {
	return Question{
		QuestionText:  "What is the capital of France?",
		Category:      CategoryGeneral,
		Option1:       "Paris",
		Option2:       "London",
		Option3:       "Berlin",
		Option4:       "Madrid",
		CorrectOption: 0,
	}
}

func TestQuestionBeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Question)
		wantErr bool
	}{
		{
			name:    "valid question",
			mutate:  func(q *Question) {},
			wantErr: false,
		},
		{
			name:    "empty text",
			mutate:  func(q *Question) { q.QuestionText = "" },
			wantErr: true,
		},
		{
			name:    "empty option",
			mutate:  func(q *Question) { q.Option3 = "" },
			wantErr: true,
		},
		{
			name:    "correct option out of range",
			mutate:  func(q *Question) { q.CorrectOption = 4 },
			wantErr: true,
		},
		{
			name:    "negative correct option",
			mutate:  func(q *Question) { q.CorrectOption = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionOptions(t *testing.T) {
	q := validQuestion()

	options := q.Options()
	if len(options) != OptionsPerQuestion {
		t.Fatalf("Options() returned %d options, want %d", len(options), OptionsPerQuestion)
	}
	want := []string{"Paris", "London", "Berlin", "Madrid"}
	for i := range want {
		if options[i] != want[i] {
			t.Errorf("Options()[%d] = %q, want %q", i, options[i], want[i])
		}
	}

	if got := q.CorrectText(); got != "Paris" {
		t.Errorf("CorrectText() = %q, want %q", got, "Paris")
	}
}

func TestCategories(t *testing.T) {
	for _, category := range Categories {
		if _, ok := CategoryTitles[category]; !ok {
			t.Errorf("category %q has no display title", category)
		}
	}
}
