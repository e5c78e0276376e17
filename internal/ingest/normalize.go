// Package ingest turns spreadsheet-shaped data (CSV uploads and Google Sheets)
// into placement inputs.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// Cell is one header/value pair of a Row.
type Cell struct {
	Header string
	Value  string
}

// Row is one record with its cells in source column order.
type Row []Cell

// Get returns the value under header, matched case-insensitively. The leftmost
// matching column wins.
func (r Row) Get(header string) string {
	for _, c := range r {
		if strings.EqualFold(strings.TrimSpace(c.Header), header) {
			return c.Value
		}
	}
	return ""
}

var individualColumns = []struct {
	field   string
	aliases []string
}{
	{"name", []string{"nama", "name", "nama_siswa", "nama siswa", "student_name", "student"}},
	{"c1", []string{"c1", "akumulasi_nilai", "akumulasi nilai", "nilai_akumulasi", "akumulasi",
		"nilai_gabungan", "nilai gabungan", "total_nilai", "total nilai",
		"akuntansi_perbankan", "layanan_perbankan", "pengelolaan_kas"}},
	{"c2", []string{"c2", "sikap", "penilaian_sikap", "penilaian sikap", "nilai_sikap", "attitude"}},
	{"c4", []string{"c4", "sertifikasi", "nilai_sertifikasi", "nilai sertifikasi", "certification",
		"pelatihan_cs", "pelatihan_teller", "cs_teller"}},
	{"c5", []string{"c5", "rekomendasi", "rekomendasi_guru", "rekomendasi guru",
		"teacher_recommendation", "rec", "recommendation"}},
}

var alternativeColumns = []struct {
	field   string
	aliases []string
}{
	{"code", []string{"kode", "code", "id", "alternatif", "alt", "kode_dudi", "dudi_code"}},
	{"name", []string{"nama", "name", "nama_dudi", "dudi", "tempat_magang", "tempat magang",
		"perusahaan", "company", "bank"}},
	{"distance", []string{"jarak", "distance", "jarak_km", "jarak (km)", "km", "c3"}},
	{"capacity", []string{"kapasitas", "capacity", "kuota", "quota"}},
}

// lookup returns the first non-empty value among aliases, matching headers
// case-insensitively. Earlier aliases win, then earlier columns.
func lookup(row Row, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for _, c := range row {
			if strings.EqualFold(strings.TrimSpace(c.Header), alias) {
				if v := strings.TrimSpace(c.Value); v != "" {
					return v, true
				}
			}
		}
	}
	return "", false
}

// ParseNumber accepts both "4.5" and "4,5". Infinities and NaN are rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// NormalizeIndividuals maps rows with any of the recognised header spellings to
// individuals. Rows without a name are skipped; missing scores and unparsable
// numbers are reported together as a validation error.
func NormalizeIndividuals(rows []Row) ([]vikor.Individual, error) {
	var out []vikor.Individual
	var problems []string
	for i, row := range rows {
		name, ok := lookup(row, individualColumns[0].aliases)
		if !ok {
			continue
		}
		ind := vikor.Individual{Name: name}
		targets := []*float64{&ind.C1, &ind.C2, &ind.C4, &ind.C5}
		for j, col := range individualColumns[1:] {
			raw, ok := lookup(row, col.aliases)
			if !ok {
				problems = append(problems, fmt.Sprintf("row %d (%s): field '%s' must not be empty", i+1, name, col.field))
				continue
			}
			v, err := ParseNumber(raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("row %d (%s): %s is not a number: %q", i+1, name, col.field, raw))
				continue
			}
			*targets[j] = v
		}
		out = append(out, ind)
	}
	if len(problems) > 0 {
		return nil, &vikor.ValidationError{Kind: vikor.ErrValidation, Problems: problems}
	}
	return out, nil
}

// NormalizeAlternatives maps rows to alternatives. A missing code becomes
// A<n> where n counts the accepted rows. Every row needs a distance; per-student
// distances only come from spreadsheets.
func NormalizeAlternatives(rows []Row) ([]vikor.Alternative, error) {
	var out []vikor.Alternative
	var problems []string
	for i, row := range rows {
		name, ok := lookup(row, alternativeColumns[1].aliases)
		if !ok {
			continue
		}
		alt := vikor.Alternative{Name: name}
		if code, ok := lookup(row, alternativeColumns[0].aliases); ok {
			alt.Code = code
		} else {
			alt.Code = fmt.Sprintf("A%d", len(out)+1)
		}
		if raw, ok := lookup(row, alternativeColumns[2].aliases); ok {
			d, err := ParseNumber(raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("row %d (%s): distance is not a number: %q", i+1, name, raw))
			}
			alt.Distance = d
		} else {
			problems = append(problems, fmt.Sprintf("row %d (%s): field 'distance' must not be empty", i+1, name))
		}
		if raw, ok := lookup(row, alternativeColumns[3].aliases); ok {
			c, err := strconv.Atoi(raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("row %d (%s): capacity is not a whole number: %q", i+1, name, raw))
			} else {
				alt.Capacity = &c
			}
		}
		out = append(out, alt)
	}
	if len(problems) > 0 {
		return nil, &vikor.ValidationError{Kind: vikor.ErrValidation, Problems: problems}
	}
	return out, nil
}

// ParseWeightList splits a comma-separated weight list such as
// "0.30,0.20,0.10,0.25,0.15" without validating it.
func ParseWeightList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	ws := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		w, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, &vikor.ValidationError{
				Kind:     vikor.ErrInvalidWeights,
				Problems: []string{fmt.Sprintf("weight %q is not a number", p)},
			}
		}
		ws = append(ws, w)
	}
	return ws, nil
}

// ParseWeights parses and validates a comma-separated weight list.
func ParseWeights(s string) (vikor.WeightVector, error) {
	ws, err := ParseWeightList(s)
	if err != nil {
		return vikor.WeightVector{}, err
	}
	return vikor.NewWeightVector(ws)
}
