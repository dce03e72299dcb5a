// Bulk question import from an xlsx workbook. One sheet per category,
// columns: question text, four options, correct option number (1-4).
// Usage: go run ./scripts/import_questions questions.xlsx
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_questions <file.xlsx>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		category := strings.ToLower(strings.TrimSpace(sheetName))
		if _, ok := models.CategoryTitles[category]; !ok {
			fmt.Printf("Skipping sheet %s: not a known category\n", sheetName)
			continue
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		fmt.Printf("Importing sheet: %s\n", sheetName)
		for i, row := range rows {
			if i == 0 || len(row) < 6 { // Skip header or invalid rows
				continue
			}

			// row[0]: question text
			// row[1..4]: options
			// row[5]: correct option number, 1-based

			correct, err := strconv.Atoi(strings.TrimSpace(row[5]))
			if err != nil || correct < 1 || correct > models.OptionsPerQuestion {
				fmt.Printf("Invalid correct option %q in row %d\n", row[5], i+1)
				continue
			}

			question := models.Question{
				QuestionText:  strings.TrimSpace(row[0]),
				Category:      category,
				Option1:       strings.TrimSpace(row[1]),
				Option2:       strings.TrimSpace(row[2]),
				Option3:       strings.TrimSpace(row[3]),
				Option4:       strings.TrimSpace(row[4]),
				CorrectOption: correct - 1,
				IsActive:      true,
			}

			if err := db.Create(&question).Error; err != nil {
				fmt.Printf("Error creating question in row %d: %v\n", i+1, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d questions.\n", totalImported)
}
