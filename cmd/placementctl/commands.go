package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Placement/internal/export"
	"github.com/MikeSquared-Agency/Placement/internal/ingest"
	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// runOptions are the tuning flags shared by every command that runs the engine.
type runOptions struct {
	weights string
	v       float64
	c1      float64
	c4      float64
	out     string
	asJSON  bool
}

func (o *runOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.weights, "weights", "", "comma-separated C1-C5 weights (default from config)")
	cmd.Flags().Float64Var(&o.v, "v", -1, "VIKOR strategy weight in [0,1] (default from config)")
	cmd.Flags().Float64Var(&o.c1, "min-c1", -1, "minimum Akumulasi Nilai (default from config)")
	cmd.Flags().Float64Var(&o.c4, "min-c4", -1, "minimum Nilai Sertifikasi (default from config)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the CSV report to this file")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the full result as JSON")
}

func (o *runOptions) apply(cmd *cobra.Command, a *app, req *runner.Request) error {
	if o.weights != "" {
		ws, err := ingest.ParseWeightList(o.weights)
		if err != nil {
			return err
		}
		req.Weights = ws
	}
	if cmd.Flags().Changed("v") {
		v := o.v
		req.V = &v
	}
	if cmd.Flags().Changed("min-c1") || cmd.Flags().Changed("min-c4") {
		t := a.cfg.VIKOR.Thresholds
		if cmd.Flags().Changed("min-c1") {
			t.C1 = o.c1
		}
		if cmd.Flags().Changed("min-c4") {
			t.C4 = o.c4
		}
		req.Thresholds = &t
	}
	return nil
}

func (o *runOptions) report(a *app, res *vikor.Result) error {
	if o.asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printSummary(a.out, res)
	}
	if o.out == "" {
		return nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := export.WriteCSV(f, res); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if !o.asJSON {
		fmt.Fprintf(a.out, "\nreport written to %s\n", o.out)
	}
	return nil
}

func runCmd(a *app) *cobra.Command {
	var opts runOptions
	var studentsPath, alternativesPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rank and place students read from CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			individuals, err := readIndividuals(studentsPath)
			if err != nil {
				return err
			}
			alternatives, err := readAlternatives(alternativesPath)
			if err != nil {
				return err
			}
			req := runner.Request{Individuals: individuals, Alternatives: alternatives}
			if err := opts.apply(cmd, a, &req); err != nil {
				return err
			}
			res, err := a.execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.report(a, res)
		},
	}
	cmd.Flags().StringVar(&studentsPath, "students", "", "CSV file of students (Nama, C1, C2, C4, C5)")
	cmd.Flags().StringVar(&alternativesPath, "alternatives", "", "CSV file of alternatives (Kode, Nama, Jarak, Kapasitas)")
	_ = cmd.MarkFlagRequired("students")
	_ = cmd.MarkFlagRequired("alternatives")
	opts.register(cmd)
	return cmd
}

func sampleCmd(a *app) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Run the built-in demonstration data set",
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := vikor.SampleData()
			req := runner.Request{Individuals: sample.Individuals, Alternatives: sample.Alternatives}
			if err := opts.apply(cmd, a, &req); err != nil {
				return err
			}
			res, err := a.execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.report(a, res)
		},
	}
	opts.register(cmd)
	return cmd
}

func sheetsCmd(a *app) *cobra.Command {
	var opts runOptions
	var spreadsheetID string
	var validateOnly bool

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Rank and place students read from a Google Sheets spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if spreadsheetID == "" {
				spreadsheetID = a.cfg.Sheets.SpreadsheetID
			}
			if spreadsheetID == "" {
				return fmt.Errorf("--spreadsheet-id is required when sheets.spreadsheet_id is not configured")
			}
			client, err := ingest.NewSheetsClient(cmd.Context(), a.cfg.Sheets.CredentialsFile)
			if err != nil {
				return err
			}
			source := ingest.NewSheetsSource(client, a.cfg.Sheets.KriteriaRange, a.cfg.Sheets.JarakRange)

			if validateOnly {
				status, err := source.Validate(cmd.Context(), spreadsheetID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s: sheets %v, kriteria=%t jarak=%t\n",
					status.Title, status.Sheets, status.HasKriteria, status.HasJarak)
				if !status.Ready() {
					return fmt.Errorf("spreadsheet is missing the %q or %q sheet", ingest.KriteriaSheet, ingest.JarakSheet)
				}
				return nil
			}

			data, err := source.Load(cmd.Context(), spreadsheetID)
			if err != nil {
				return err
			}
			req := runner.Request{Individuals: data.Individuals, Alternatives: data.Alternatives}
			if err := opts.apply(cmd, a, &req); err != nil {
				return err
			}
			res, err := a.execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.report(a, res)
		},
	}
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "spreadsheet to read (default from config)")
	cmd.Flags().BoolVar(&validateOnly, "validate", false, "only check that the spreadsheet has the expected sheets")
	opts.register(cmd)
	return cmd
}

func readIndividuals(path string) ([]vikor.Individual, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	return ingest.NormalizeIndividuals(rows)
}

func readAlternatives(path string) ([]vikor.Alternative, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	return ingest.NormalizeAlternatives(rows)
}

func readRows(path string) ([]ingest.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ingest.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func printSummary(w io.Writer, res *vikor.Result) {
	fmt.Fprintf(w, "%d students, %d qualified, %d disqualified, %d displaced\n\n",
		res.Metadata.TotalIndividuals, res.Metadata.QualifiedCount,
		res.Metadata.DisqualifiedCount, res.Metadata.DisplacedCount)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMA\tREKOMENDASI\tQ\tPENEMPATAN\tKETERANGAN")
	for _, q := range res.Qualified {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\t%s\n",
			q.Individual.Name, q.Recommendation.Code, q.Recommendation.Q,
			q.Allocation.Assigned.Code, q.Allocation.Reason)
	}
	for _, d := range res.Disqualified {
		fmt.Fprintf(tw, "%s\t-\t-\tTIDAK LOLOS\t%s\n", d.Name, d.Reason)
	}
	_ = tw.Flush()
}
