// Package report renders leaderboard and per-match reports to CSV and
// HTML files.
package report

import (
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/playrank/ranked/internal/adapters/storage"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// Meta describes the run a report was generated from.
type Meta struct {
	RunID       string
	GeneratedAt time.Time
	SourceFile  string
	Formula     string
}

// WriteLeaderboardCSV writes the standings as CSV.
func WriteLeaderboardCSV(w io.Writer, rows []storage.LeaderboardRow) error {
	cw := csv.NewWriter(w)
	header := []string{"player", "rating", "pos", "games", "wins", "win_rate", "avg_k", "avg_d", "avg_a", "avg_net_worth"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.PlayerName,
			strconv.FormatInt(r.Rating, 10),
			strconv.Itoa(r.Position),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			strconv.FormatFloat(r.WinRate, 'f', 3, 64),
			strconv.FormatFloat(r.AvgKills, 'f', 1, 64),
			strconv.FormatFloat(r.AvgDeaths, 'f', 1, 64),
			strconv.FormatFloat(r.AvgAssists, 'f', 1, 64),
			strconv.FormatInt(r.AvgNetWorth, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// templateData is the payload of the HTML report template.
type templateData struct {
	Meta        Meta
	Leaderboard []storage.LeaderboardRow
	Breakdown   []storage.BreakdownRow
}

var reportTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"f2":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"f3":  func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) },
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// WriteHTML renders the full report: standings plus per-match movement.
func WriteHTML(w io.Writer, meta Meta, lb []storage.LeaderboardRow, breakdown []storage.BreakdownRow) error {
	data := templateData{Meta: meta, Leaderboard: lb, Breakdown: breakdown}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFiles writes leaderboard.csv and report.html into dir, creating it
// if needed.
func WriteFiles(dir string, meta Meta, lb []storage.LeaderboardRow, breakdown []storage.BreakdownRow) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(dir, "leaderboard.csv"))
	if err != nil {
		return fmt.Errorf("create leaderboard.csv: %w", err)
	}
	defer csvFile.Close()
	if err := WriteLeaderboardCSV(csvFile, lb); err != nil {
		return err
	}

	htmlFile, err := os.Create(filepath.Join(dir, "report.html"))
	if err != nil {
		return fmt.Errorf("create report.html: %w", err)
	}
	defer htmlFile.Close()
	return WriteHTML(htmlFile, meta, lb, breakdown)
}
