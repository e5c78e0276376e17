package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// Sheet names the spreadsheet layout is expected to contain.
const (
	KriteriaSheet = "Kriteria"
	JarakSheet    = "Jarak"

	DefaultKriteriaRange = KriteriaSheet + "!A1:G100"
	DefaultJarakRange    = JarakSheet + "!A1:Z100"
)

var ErrSheetEmpty = errors.New("sheet is empty")

// SheetsReader is the subset of the Sheets API the source needs.
type SheetsReader interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
	SheetTitles(ctx context.Context, spreadsheetID string) (string, []string, error)
}

// SheetsClient wraps the Google Sheets API client.
type SheetsClient struct {
	service *sheets.Service
}

// NewSheetsClient authenticates with a service account key file and read-only
// scope.
func NewSheetsClient(ctx context.Context, credentialsFile string) (*SheetsClient, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}
	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{service: service}, nil
}

// GetValues reads values from a spreadsheet range.
func (c *SheetsClient) GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}

// SheetTitles returns the spreadsheet title and the names of its tabs.
func (c *SheetsClient) SheetTitles(ctx context.Context, spreadsheetID string) (string, []string, error) {
	ss, err := c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("get spreadsheet: %w", err)
	}
	names := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			names = append(names, sh.Properties.Title)
		}
	}
	var title string
	if ss.Properties != nil {
		title = ss.Properties.Title
	}
	return title, names, nil
}

// SheetsSource loads a run's individuals and alternatives from a spreadsheet
// with a Kriteria tab (No, Nama, C1, C2, C3, C4, C5) and a Jarak tab (two
// header rows, alternative names from the second row's third column onwards,
// then one row of distances per individual).
type SheetsSource struct {
	reader        SheetsReader
	kriteriaRange string
	jarakRange    string
}

func NewSheetsSource(reader SheetsReader, kriteriaRange, jarakRange string) *SheetsSource {
	if kriteriaRange == "" {
		kriteriaRange = DefaultKriteriaRange
	}
	if jarakRange == "" {
		jarakRange = DefaultJarakRange
	}
	return &SheetsSource{reader: reader, kriteriaRange: kriteriaRange, jarakRange: jarakRange}
}

// SheetData is what a spreadsheet yields.
type SheetData struct {
	Individuals  []vikor.Individual  `json:"individuals"`
	Alternatives []vikor.Alternative `json:"alternatives"`
}

// Load reads both tabs and joins distances onto individuals by name.
// Alternatives are coded A1..An in column order with no base distance.
func (s *SheetsSource) Load(ctx context.Context, spreadsheetID string) (*SheetData, error) {
	kriteria, err := s.reader.GetValues(ctx, spreadsheetID, s.kriteriaRange)
	if err != nil {
		return nil, err
	}
	individuals, err := parseKriteria(kriteria)
	if err != nil {
		return nil, err
	}

	jarak, err := s.reader.GetValues(ctx, spreadsheetID, s.jarakRange)
	if err != nil {
		return nil, err
	}
	alts, distances, err := parseJarak(jarak)
	if err != nil {
		return nil, err
	}

	folded := make(map[string]map[vikor.AlternativeID]float64, len(distances))
	for name, d := range distances {
		folded[foldName(name)] = d
	}
	for i := range individuals {
		if d, ok := distances[individuals[i].Name]; ok {
			individuals[i].Distances = d
		} else if d, ok := folded[foldName(individuals[i].Name)]; ok {
			individuals[i].Distances = d
		}
	}
	return &SheetData{Individuals: individuals, Alternatives: alts}, nil
}

// SheetStatus reports whether a spreadsheet has the expected tabs.
type SheetStatus struct {
	Title       string   `json:"spreadsheet_title"`
	Sheets      []string `json:"sheets"`
	HasKriteria bool     `json:"has_kriteria"`
	HasJarak    bool     `json:"has_jarak"`
}

func (s SheetStatus) Ready() bool { return s.HasKriteria && s.HasJarak }

func (s *SheetsSource) Validate(ctx context.Context, spreadsheetID string) (*SheetStatus, error) {
	title, names, err := s.reader.SheetTitles(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	return &SheetStatus{
		Title:       title,
		Sheets:      names,
		HasKriteria: slices.Contains(names, KriteriaSheet),
		HasJarak:    slices.Contains(names, JarakSheet),
	}, nil
}

func parseKriteria(rows [][]interface{}) ([]vikor.Individual, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", KriteriaSheet, ErrSheetEmpty)
	}
	var out []vikor.Individual
	var problems []string
	for i, row := range rows[1:] {
		if cell(row, 0) == "" || cell(row, 1) == "" {
			continue
		}
		ind := vikor.Individual{Name: cell(row, 1)}
		// Column 4 (C3) is distance, which comes from the Jarak tab.
		for col, target := range map[int]*float64{2: &ind.C1, 3: &ind.C2, 5: &ind.C4, 6: &ind.C5} {
			v, err := ParseNumber(cell(row, col))
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s row %d (%s): column %d is not a number: %q",
					KriteriaSheet, i+2, ind.Name, col+1, cell(row, col)))
				continue
			}
			*target = v
		}
		out = append(out, ind)
	}
	if len(problems) > 0 {
		slices.Sort(problems)
		return nil, &vikor.ValidationError{Kind: vikor.ErrValidation, Problems: problems}
	}
	return out, nil
}

func parseJarak(rows [][]interface{}) ([]vikor.Alternative, map[string]map[vikor.AlternativeID]float64, error) {
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%s: %w", JarakSheet, ErrSheetEmpty)
	}

	type column struct {
		index int
		name  string
	}
	var columns []column
	for i := 2; i < len(rows[1]); i++ {
		if name := cell(rows[1], i); name != "" {
			columns = append(columns, column{index: i, name: name})
		}
	}

	alts := make([]vikor.Alternative, len(columns))
	for i, c := range columns {
		alts[i] = vikor.Alternative{Code: fmt.Sprintf("A%d", i+1), Name: c.name}
	}

	distances := make(map[string]map[vikor.AlternativeID]float64)
	var problems []string
	for i, row := range rows[2:] {
		if cell(row, 0) == "" || cell(row, 1) == "" {
			continue
		}
		name := cell(row, 1)
		d := make(map[vikor.AlternativeID]float64, len(columns))
		for _, c := range columns {
			v, err := ParseNumber(cell(row, c.index))
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s row %d (%s): distance to %s is not a number: %q",
					JarakSheet, i+3, name, c.name, cell(row, c.index)))
				continue
			}
			d[vikor.AlternativeID(c.name)] = v
		}
		distances[name] = d
	}
	if len(problems) > 0 {
		return nil, nil, &vikor.ValidationError{Kind: vikor.ErrValidation, Problems: problems}
	}
	return alts, distances, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}

func foldName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
