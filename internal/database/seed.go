package database

import (
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
	"gorm.io/gorm"
)

// SeedQuestions loads a starter question set on an empty database so the
// bot is playable before admins add their own.
func SeedQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding starter questions...")

	questions := []models.Question{
		{Category: models.CategoryGeneral, QuestionText: "What is the capital of France?",
			Option1: "Paris", Option2: "London", Option3: "Berlin", Option4: "Madrid", CorrectOption: 0, IsActive: true},
		{Category: models.CategoryGeneral, QuestionText: "How many continents are there?",
			Option1: "Five", Option2: "Six", Option3: "Seven", Option4: "Eight", CorrectOption: 2, IsActive: true},
		{Category: models.CategoryGeneral, QuestionText: "What is the largest ocean on Earth?",
			Option1: "Atlantic", Option2: "Pacific", Option3: "Indian", Option4: "Arctic", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryGeneral, QuestionText: "What currency is used in Japan?",
			Option1: "Yuan", Option2: "Won", Option3: "Yen", Option4: "Ringgit", CorrectOption: 2, IsActive: true},

		{Category: models.CategoryScience, QuestionText: "Which planet is known as the Red Planet?",
			Option1: "Venus", Option2: "Mars", Option3: "Jupiter", Option4: "Saturn", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryScience, QuestionText: "What is the chemical symbol for gold?",
			Option1: "Go", Option2: "Gd", Option3: "Au", Option4: "Ag", CorrectOption: 2, IsActive: true},
		{Category: models.CategoryScience, QuestionText: "How many bones are in the adult human body?",
			Option1: "186", Option2: "206", Option3: "226", Option4: "246", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryScience, QuestionText: "What gas do plants absorb from the atmosphere?",
			Option1: "Oxygen", Option2: "Nitrogen", Option3: "Hydrogen", Option4: "Carbon dioxide", CorrectOption: 3, IsActive: true},

		{Category: models.CategoryHistory, QuestionText: "Who was the first President of the United States?",
			Option1: "Thomas Jefferson", Option2: "George Washington", Option3: "Abraham Lincoln", Option4: "John Adams", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryHistory, QuestionText: "In which year did World War II end?",
			Option1: "1943", Option2: "1944", Option3: "1945", Option4: "1946", CorrectOption: 2, IsActive: true},
		{Category: models.CategoryHistory, QuestionText: "Who invented the telephone?",
			Option1: "Thomas Edison", Option2: "Alexander Graham Bell", Option3: "Nikola Tesla", Option4: "Isaac Newton", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryHistory, QuestionText: "Which ancient civilization built the pyramids of Giza?",
			Option1: "The Romans", Option2: "The Greeks", Option3: "The Egyptians", Option4: "The Mayans", CorrectOption: 2, IsActive: true},

		{Category: models.CategoryMovies, QuestionText: "Who directed the movie Titanic?",
			Option1: "Steven Spielberg", Option2: "James Cameron", Option3: "Christopher Nolan", Option4: "Martin Scorsese", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryMovies, QuestionText: "Which movie features the quote 'May the Force be with you'?",
			Option1: "Star Trek", Option2: "Star Wars", Option3: "The Matrix", Option4: "Blade Runner", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryMovies, QuestionText: "What is the highest-grossing film of all time (unadjusted)?",
			Option1: "Titanic", Option2: "Avengers: Endgame", Option3: "Avatar", Option4: "Jurassic World", CorrectOption: 2, IsActive: true},
		{Category: models.CategoryMovies, QuestionText: "Which animated film features a clownfish searching for his son?",
			Option1: "Shark Tale", Option2: "Finding Nemo", Option3: "The Little Mermaid", Option4: "Moana", CorrectOption: 1, IsActive: true},

		{Category: models.CategoryMusic, QuestionText: "Which band recorded the album 'Abbey Road'?",
			Option1: "The Rolling Stones", Option2: "The Beatles", Option3: "Led Zeppelin", Option4: "Pink Floyd", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryMusic, QuestionText: "How many strings does a standard guitar have?",
			Option1: "Four", Option2: "Five", Option3: "Six", Option4: "Seven", CorrectOption: 2, IsActive: true},
		{Category: models.CategoryMusic, QuestionText: "Who is known as the 'King of Pop'?",
			Option1: "Elvis Presley", Option2: "Michael Jackson", Option3: "Prince", Option4: "Freddie Mercury", CorrectOption: 1, IsActive: true},
		{Category: models.CategoryMusic, QuestionText: "Which composer wrote the 'Fifth Symphony'?",
			Option1: "Mozart", Option2: "Bach", Option3: "Beethoven", Option4: "Chopin", CorrectOption: 2, IsActive: true},
	}

	if err := db.Create(&questions).Error; err != nil {
		return err
	}

	logger.Info("Seeded starter questions", "count", len(questions))
	return nil
}
