// Package export renders run results for spreadsheet users.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// ContentType is the MIME type of a CSV export.
const ContentType = "text/csv; charset=utf-8"

const (
	notQualified = "TIDAK LOLOS"
	blank        = "-"
)

var header = []string{
	"Nama Siswa",
	"Akumulasi Nilai (C1)",
	"Penilaian Sikap (C2)",
	"Nilai Sertifikasi (C4)",
	"Rekomendasi Guru (C5)",
	"Rekomendasi DUDI",
	"Kode DUDI",
	"Jarak (km)",
	"Nilai S",
	"Nilai R",
	"Nilai Q",
	"Ranking",
	"Penempatan",
	"Kode Penempatan",
	"Keterangan",
}

// FileName is the suggested download name for an export made at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("hasil_vikor_%s.csv", t.Format("2006-01-02"))
}

// WriteCSV writes one row per qualified individual followed by one row per
// disqualified individual. The output starts with a UTF-8 byte order mark so
// spreadsheet applications pick the right encoding.
func WriteCSV(w io.Writer, res *vikor.Result) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range res.Qualified {
		rec := r.Recommendation
		if err := cw.Write([]string{
			r.Individual.Name,
			num(r.Individual.C1),
			num(r.Individual.C2),
			num(r.Individual.C4),
			num(r.Individual.C5),
			rec.Name,
			rec.Code,
			num(rec.Distance),
			num(rec.S),
			num(rec.R),
			num(rec.Q),
			strconv.Itoa(rec.Rank),
			r.Allocation.Assigned.Name,
			r.Allocation.Assigned.Code,
			r.Allocation.Reason,
		}); err != nil {
			return fmt.Errorf("write row %s: %w", r.Individual.Name, err)
		}
	}

	for _, d := range res.Disqualified {
		if err := cw.Write([]string{
			d.Name,
			num(d.C1),
			blank,
			num(d.C4),
			blank,
			notQualified,
			blank, blank, blank, blank, blank, blank, blank, blank,
			d.Reason,
		}); err != nil {
			return fmt.Errorf("write row %s: %w", d.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
