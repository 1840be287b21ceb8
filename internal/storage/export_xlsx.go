// ABOUTME: Excel workbook export of training data.
// ABOUTME: One sheet per record kind with a styled header row.
package storage

import (
	"bytes"
	"fmt"

	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetSessions = "Sessions"
	SheetShots    = "Shots"
	SheetPickup   = "Pickup"
	SheetOfficial = "Official"
)

type sheetWriter struct {
	f    *excelize.File
	name string
	row  int
}

func newSheet(f *excelize.File, name string, headerStyle int, headers []string, widths []float64) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return nil, err
		}
	}
	sw := &sheetWriter{f: f, name: name, row: 1}
	if err := sw.append(toCells(headers)...); err != nil {
		return nil, err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(name, first, last, headerStyle); err != nil {
		return nil, err
	}
	return sw, nil
}

func (sw *sheetWriter) append(values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, sw.row)
		if err != nil {
			return err
		}
		if err := sw.f.SetCellValue(sw.name, cell, v); err != nil {
			return err
		}
	}
	sw.row++
	return nil
}

func toCells(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

// ExportXLSX renders data as an Excel workbook.
func ExportXLSX(data *ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C8102E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sessions, err := newSheet(f, SheetSessions, headerStyle,
		[]string{"ID", "Date", "Difficulty", "Duration (min)", "Mood", "Made", "Attempts", "Accuracy %", "Notes", "Video"},
		[]float64{38, 12, 10, 14, 8, 8, 10, 11, 40, 40})
	if err != nil {
		return nil, err
	}
	shots, err := newSheet(f, SheetShots, headerStyle,
		[]string{"Session ID", "Date", "Shot Type", "Made", "Missed", "Attempts"},
		[]float64{38, 12, 14, 8, 8, 10})
	if err != nil {
		return nil, err
	}
	for _, s := range data.Sessions {
		for _, l := range s.ShotLogs {
			if err := shots.append(s.ID.String(), s.Date.String(), l.ShotType.Label(), l.Made, l.Missed, l.Attempts()); err != nil {
				return nil, err
			}
		}
		tally := stats.TallySession(s)
		if err := sessions.append(s.ID.String(), s.Date.String(), s.Difficulty, s.DurationMinutes,
			string(s.Mood), tally.Made, tally.Attempts, tally.Percent(), deref(s.Notes), deref(s.VideoURL)); err != nil {
			return nil, err
		}
	}

	pickup, err := newSheet(f, SheetPickup, headerStyle,
		[]string{"ID", "Date", "Result", "Location", "Duration (min)", "PTS", "AST", "REB", "STL", "BLK", "Players", "Notes"},
		[]float64{38, 12, 8, 20, 14, 6, 6, 6, 6, 6, 30, 40})
	if err != nil {
		return nil, err
	}
	for _, g := range data.PickupGames {
		if err := pickup.append(g.ID.String(), g.Date.String(), models.GameResultLabels[g.Result],
			deref(g.Location), g.DurationMinutes,
			g.Points, g.Assists, g.Rebounds, g.Steals, g.Blocks,
			deref(g.PlayersNotes), deref(g.Notes)); err != nil {
			return nil, err
		}
	}

	official, err := newSheet(f, SheetOfficial, headerStyle,
		[]string{"ID", "Date", "Time", "Opponent", "Location", "Status", "Score", "PTS", "AST", "REB", "STL", "BLK", "MIN", "Fouls", "Notes"},
		[]float64{38, 12, 8, 20, 20, 11, 9, 6, 6, 6, 6, 6, 6, 6, 40})
	if err != nil {
		return nil, err
	}
	for _, g := range data.OfficialGames {
		if err := official.append(g.ID.String(), g.Date.String(), deref(g.Time), g.Opponent,
			deref(g.Location), models.GameStatusLabels[g.Status], scoreLine(g),
			g.Points, g.Assists, g.Rebounds, g.Steals, g.Blocks,
			g.MinutesPlayed, g.Fouls, deref(g.Notes)); err != nil {
			return nil, err
		}
	}

	idx, err := f.GetSheetIndex(SheetSessions)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
