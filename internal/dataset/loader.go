package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"depscreen/internal/models"
)

// Load reads the survey CSV at path into records. The header row must match
// the expected schema exactly, in order.
func Load(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(models.CSVHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var records []models.Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		line++

		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s contains no rows", path)
	}
	return records, nil
}

func checkHeader(header []string) error {
	if len(header) != len(models.CSVHeader) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(models.CSVHeader))
	}
	for i, want := range models.CSVHeader {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseRow(row []string) (models.Record, error) {
	var rec models.Record

	age, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return rec, fmt.Errorf("invalid age %q: %w", row[1], err)
	}
	pressure, err := parseOrdinalNumber(row[2], "Academic Pressure")
	if err != nil {
		return rec, err
	}
	satisfaction, err := parseOrdinalNumber(row[3], "Study Satisfaction")
	if err != nil {
		return rec, err
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(row[7]), 64)
	if err != nil {
		return rec, fmt.Errorf("invalid study hours %q: %w", row[7], err)
	}
	stress, err := parseOrdinalNumber(row[8], "Financial Stress")
	if err != nil {
		return rec, err
	}

	rec = models.Record{
		Gender:            strings.TrimSpace(row[0]),
		Age:               age,
		AcademicPressure:  pressure,
		StudySatisfaction: satisfaction,
		SleepDuration:     strings.TrimSpace(row[4]),
		DietaryHabits:     strings.TrimSpace(row[5]),
		SuicidalThoughts:  strings.TrimSpace(row[6]),
		StudyHours:        hours,
		FinancialStress:   stress,
		FamilyHistory:     strings.TrimSpace(row[9]),
		Depression:        strings.TrimSpace(row[10]),
	}
	return rec, nil
}

// parseOrdinalNumber parses ordinal survey answers that some exports write as
// "3" and others as "3.0".
func parseOrdinalNumber(raw, field string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	return int(v), nil
}
