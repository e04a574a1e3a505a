package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Gender,Age,Academic Pressure,Study Satisfaction,Sleep Duration,Dietary Habits,Have you ever had suicidal thoughts?,Study Hours,Financial Stress,Family History of Mental Illness,Depression
Male,28,2.0,4.0,7-8 hours,Healthy,No,9,2.0,No,No
Female,25,4.0,1.0,Less than 5 hours,Unhealthy,Yes,4,5.0,Yes,Yes
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads a valid file", func(t *testing.T) {
		records, err := Load(writeCSV(t, sampleCSV))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Male", records[0].Gender)
		assert.Equal(t, 28, records[0].Age)
		assert.Equal(t, 2, records[0].AcademicPressure)
		assert.Equal(t, 9.0, records[0].StudyHours)
		assert.Equal(t, "No", records[0].Depression)

		assert.Equal(t, "Less than 5 hours", records[1].SleepDuration)
		assert.Equal(t, "Yes", records[1].Depression)
	})

	t.Run("rejects a wrong header", func(t *testing.T) {
		broken := strings.Replace(sampleCSV, "Gender", "Sex", 1)
		_, err := Load(writeCSV(t, broken))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header")
	})

	t.Run("rejects an unparseable age", func(t *testing.T) {
		broken := strings.Replace(sampleCSV, "Male,28", "Male,abc", 1)
		_, err := Load(writeCSV(t, broken))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "age")
	})

	t.Run("rejects an empty dataset", func(t *testing.T) {
		header := strings.SplitAfter(sampleCSV, "\n")[0]
		_, err := Load(writeCSV(t, header))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no rows")
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err)
	})
}
