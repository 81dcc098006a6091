package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/types"
)

var (
	ErrNoSheets   = errors.New("no sheets")
	ErrNoDataRows = errors.New("no data rows")
)

// columns holds detected header positions, -1 when absent.
type columns struct {
	id, name, age, gender, created int
}

// Load reads people from the first sheet of an xlsx workbook. A nil log
// falls back to logger.New.
func Load(path string, log *logger.Logger) ([]types.Person, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return readPeople(f, log)
}

// Read is Load over an in-memory workbook.
func Read(r io.Reader, log *logger.Logger) ([]types.Person, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer f.Close()
	return readPeople(f, log)
}

func readPeople(f *excelize.File, l *logger.Logger) ([]types.Person, error) {
	log := logger.OrDefault(l).Component("dataset.loader")
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrNoDataRows
	}

	cols := detectColumns(rows[0])
	log.WithFields(map[string]interface{}{
		"sheet":      sheets[0],
		"idIdx":      cols.id,
		"nameIdx":    cols.name,
		"ageIdx":     cols.age,
		"genderIdx":  cols.gender,
		"createdIdx": cols.created,
	}).Debug("detected people column indices")

	var out []types.Person
	for i, r := range rows {
		if i == 0 || blankRow(r) {
			continue
		}
		p := types.Person{
			ID:     cell(r, cols.id),
			Name:   cell(r, cols.name),
			Gender: strings.ToLower(cell(r, cols.gender)),
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if raw := cell(r, cols.age); raw != "" {
			if a, ok := parseAge(raw); ok {
				p.Age = &a
			} else {
				log.WithField("row", i+1).WithField("value", raw).Warn("unreadable age, treating as not provided")
			}
		}
		if c := cell(r, cols.created); c != "" {
			p.CreatedAt = &c
		}
		if err := Validate(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	log.WithField("people", len(out)).Info("dataset loaded")
	return out, nil
}

func detectColumns(header []string) columns {
	cols := columns{id: -1, name: -1, age: -1, gender: -1, created: -1}
	for i, h := range header {
		words := headerWords(h)
		switch {
		case cols.created == -1 && (words["created"] || words["joined"] || words["signup"] || words["registered"]):
			cols.created = i
		case cols.id == -1 && words["id"]:
			cols.id = i
		case cols.age == -1 && words["age"]:
			cols.age = i
		case cols.gender == -1 && (words["gender"] || words["sex"]):
			cols.gender = i
		case cols.name == -1 && words["name"]:
			cols.name = i
		}
	}
	return cols
}

// headerWords splits a header like "Created_At" or "User ID" into lowercase words.
func headerWords(h string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(strings.ToLower(h), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}
	return words
}

func parseAge(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	// numeric cells sometimes come back as "31.0"
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
