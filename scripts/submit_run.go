// submit_run.go posts a placement run built from two CSV files to a running
// placement server and optionally downloads the CSV report.
//
// Usage:
//
//	go run scripts/submit_run.go -students siswa.csv -alternatives dudi.csv -api http://localhost:8700 -export hasil.csv
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/MikeSquared-Agency/Placement/internal/ingest"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

type runRequest struct {
	Individuals  []vikor.Individual  `json:"individuals"`
	Alternatives []vikor.Alternative `json:"alternatives"`
	Weights      string              `json:"weights,omitempty"`
	V            *float64            `json:"v,omitempty"`
}

type runResponse struct {
	RunID  string       `json:"run_id"`
	Result vikor.Result `json:"result"`
}

func main() {
	studentsPath := flag.String("students", "", "CSV file of students")
	alternativesPath := flag.String("alternatives", "", "CSV file of alternatives")
	sample := flag.Bool("sample", false, "submit the built-in demonstration data instead of CSV files")
	apiURL := flag.String("api", "http://localhost:8700", "placement API base URL")
	clientID := flag.String("client", "submit-run", "X-Client-ID header value")
	weights := flag.String("weights", "", "comma-separated C1-C5 weights")
	v := flag.Float64("v", -1, "VIKOR strategy weight, negative for the server default")
	exportPath := flag.String("export", "", "download the CSV report to this file")
	dryRun := flag.Bool("dry-run", false, "print the request without posting")
	flag.Parse()

	req := runRequest{Weights: *weights}
	if *v >= 0 {
		req.V = v
	}
	if *sample {
		data := vikor.SampleData()
		req.Individuals, req.Alternatives = data.Individuals, data.Alternatives
	} else {
		if *studentsPath == "" || *alternativesPath == "" {
			log.Fatal("-students and -alternatives are required unless -sample is set")
		}
		rows, err := readRows(*studentsPath)
		if err != nil {
			log.Fatalf("read students: %v", err)
		}
		if req.Individuals, err = ingest.NormalizeIndividuals(rows); err != nil {
			log.Fatalf("students: %v", err)
		}
		rows, err = readRows(*alternativesPath)
		if err != nil {
			log.Fatalf("read alternatives: %v", err)
		}
		if req.Alternatives, err = ingest.NormalizeAlternatives(rows); err != nil {
			log.Fatalf("alternatives: %v", err)
		}
	}
	log.Printf("parsed %d students and %d alternatives", len(req.Individuals), len(req.Alternatives))

	body, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("encode request: %v", err)
	}
	if *dryRun {
		var pretty bytes.Buffer
		_ = json.Indent(&pretty, body, "", "  ")
		fmt.Println(pretty.String())
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	httpReq, err := http.NewRequest("POST", *apiURL+"/api/v1/runs", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Client-ID", *clientID)

	resp, err := client.Do(httpReq)
	if err != nil {
		log.Fatalf("post run: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("run rejected: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var run runResponse
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	meta := run.Result.Metadata
	log.Printf("run %s: %d qualified, %d disqualified, %d displaced",
		run.RunID, meta.QualifiedCount, meta.DisqualifiedCount, meta.DisplacedCount)
	for _, q := range run.Result.Qualified {
		fmt.Printf("%s -> %s (Q=%.4f)\n", q.Individual.Name, q.Allocation.Assigned.Code, q.Recommendation.Q)
	}

	if *exportPath == "" {
		return
	}
	exportResp, err := client.Get(*apiURL + "/api/v1/runs/" + run.RunID + "/export.csv")
	if err != nil {
		log.Fatalf("download report: %v", err)
	}
	defer exportResp.Body.Close()
	if exportResp.StatusCode != http.StatusOK {
		log.Fatalf("download report: status %d", exportResp.StatusCode)
	}
	f, err := os.Create(*exportPath)
	if err != nil {
		log.Fatalf("create report: %v", err)
	}
	if _, err := io.Copy(f, exportResp.Body); err != nil {
		f.Close()
		log.Fatalf("write report: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("report written to %s", *exportPath)
}

func readRows(path string) ([]ingest.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadCSV(f)
}
