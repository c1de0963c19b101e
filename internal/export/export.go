// Package export writes attempt history to an Excel workbook.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizdeck/internal/attempt"
)

const (
	AttemptsSheet = "Attempts"
	TopicsSheet   = "Topics"
)

var (
	attemptHeaders = []any{"Attempt", "Recorded", "Difficulty", "User", "Mode", "Correct", "Total", "Percent", "Streak"}
	topicHeaders   = []any{"Attempt", "Topic", "Correct", "Total", "Percent"}
)

// Workbook builds a workbook with one row per attempt on AttemptsSheet and
// one row per attempt topic on TopicsSheet. Attempts keep the given order.
func Workbook(attempts []attempt.Attempt) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), AttemptsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TopicsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create %s sheet: %w", TopicsSheet, err)
	}

	if err := writeRow(f, AttemptsSheet, 1, attemptHeaders); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRow(f, TopicsSheet, 1, topicHeaders); err != nil {
		f.Close()
		return nil, err
	}

	topicRow := 2
	for i, a := range attempts {
		row := []any{
			a.ID,
			a.Timestamp.UTC().Format(time.RFC3339),
			a.Difficulty.DisplayName(),
			a.UserLogin,
			string(a.UserMode),
			a.Score.Correct,
			a.Score.Total,
			a.Percent(),
			a.Streak,
		}
		if err := writeRow(f, AttemptsSheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}

		for _, st := range a.Topics() {
			if err := writeRow(f, TopicsSheet, topicRow, []any{a.ID, st.Topic, st.Correct, st.Total, st.Percent()}); err != nil {
				f.Close()
				return nil, err
			}
			topicRow++
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// Write encodes the workbook for attempts to w.
func Write(w io.Writer, attempts []attempt.Attempt) error {
	f, err := Workbook(attempts)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// WriteFile writes the workbook for attempts to path.
func WriteFile(path string, attempts []attempt.Attempt) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, attempts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
