// Command splitbill computes a bill from a JSON file and prints who pays whom.
//
// The input has the shape of a Calculate request:
//
//	{
//	  "people": ["Ani", "Budi"],
//	  "expenses": [{"item": "Sate", "amount": 60000, "who": ["Ani", "Budi"], "paidBy": "Ani"}],
//	  "additionalExpenses": [{"name": "Pajak", "amount": 6000, "who": ["Ani", "Budi"], "paidBy": "Ani", "splitType": "proportionally"}]
//	}
//
// Usage:
//
//	splitbill -f bill.json
//	splitbill -json < bill.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmynk/patungan/internal/calculator"
	"github.com/mmynk/patungan/internal/receipt"
	"github.com/mmynk/patungan/internal/service"
	"github.com/mmynk/patungan/pkg/api"
	"github.com/mmynk/patungan/pkg/logging"
)

func main() {
	logging.Setup()

	file := flag.String("f", "", "bill JSON file (default: stdin)")
	asJSON := flag.Bool("json", false, "print the summary as JSON instead of a receipt")
	title := flag.String("title", "", "receipt title")
	flag.Parse()

	if err := run(*file, *title, *asJSON, os.Stdin, os.Stdout); err != nil {
		slog.Error("splitbill failed", "error", err)
		os.Exit(1)
	}
}

func run(file, title string, asJSON bool, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("failed to open bill: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req api.CalculateRequest
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("failed to decode bill: %w", err)
	}

	res := calculator.ComputeBill(service.CalculatorInput(&req))
	slog.Debug("Bill computed", "people", len(res.People), "excluded", res.Excluded)

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(service.SummaryFromResult(res))
	}
	return receipt.Render(stdout, title, res)
}
