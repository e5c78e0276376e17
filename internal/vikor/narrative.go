package vikor

import (
	"fmt"
	"strings"
)

// Narrative renders the explanation shown alongside an individual's result.
func Narrative(ind Individual, ranking []ScoredAlternative, alloc Allocation, cv CompromiseValidation) string {
	if len(ranking) == 0 {
		return ""
	}
	best := ranking[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Berdasarkan analisis metode VIKOR, %s direkomendasikan untuk melaksanakan praktik kerja industri di **%s** (%s).\n\n",
		ind.Name, best.Name, best.Code)
	fmt.Fprintf(&b, "Rekomendasi ini didasarkan pada nilai indeks VIKOR (Q) terendah sebesar **%s**, "+
		"yang menunjukkan kompromi optimal antara kriteria benefit (Akumulasi Nilai, Penilaian Sikap, "+
		"Nilai Sertifikasi, Rekomendasi Guru) dan kriteria cost (Jarak).\n\n", formatNumber(best.Q))
	fmt.Fprintf(&b, "Profil %s: Akumulasi Nilai = %s, Penilaian Sikap = %s, Nilai Sertifikasi = %s, Rekomendasi Guru = %s.\n\n",
		ind.Name, formatNumber(ind.C1), formatNumber(ind.C2), formatNumber(ind.C4), formatNumber(ind.C5))

	b.WriteString("Urutan peringkat alternatif berdasarkan nilai Q:\n")
	for _, alt := range ranking {
		fmt.Fprintf(&b, "%d. %s (Q = %s, S = %s, R = %s)\n",
			alt.Rank, alt.Name, formatNumber(alt.Q), formatNumber(alt.S), formatNumber(alt.R))
	}

	if cv.Summary != "" {
		fmt.Fprintf(&b, "\nValidasi kompromi: %s.\n", cv.Summary)
	}

	switch {
	case alloc.OverCapacity:
		fmt.Fprintf(&b, "\nPenempatan akhir: %s. Catatan: %s.", alloc.Assigned.Name, alloc.Reason)
	case alloc.Displaced:
		fmt.Fprintf(&b, "\nPenempatan akhir: %s, karena %s.", alloc.Assigned.Name, alloc.Reason)
	default:
		fmt.Fprintf(&b, "\nPenempatan akhir: %s, sesuai rekomendasi utama.", alloc.Assigned.Name)
	}
	return b.String()
}
