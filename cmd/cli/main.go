package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pricelens/adapters/excel"
	appsvc "pricelens/app"
)

func main() {
	fileA := flag.String("a", "", "Price list A (.xlsx or .csv)")
	fileB := flag.String("b", "", "Price list B (.xlsx or .csv)")
	jsonOut := flag.String("json", "", "Optional path to write the comparison as JSON")
	reportOut := flag.String("report", "", "Optional path to write the xlsx report")
	flag.Parse()

	if *fileA == "" || *fileB == "" {
		fmt.Fprintln(os.Stderr, "usage: pricelens-cli -a listA.xlsx -b listB.xlsx [-json out.json] [-report out.xlsx]")
		os.Exit(2)
	}

	service := appsvc.NewCompareService(excel.NewDataReader(), excel.NewReportWriter())

	readerA, err := os.Open(*fileA)
	if err != nil {
		fatal("open %s: %v", *fileA, err)
	}
	defer readerA.Close()

	readerB, err := os.Open(*fileB)
	if err != nil {
		fatal("open %s: %v", *fileB, err)
	}
	defer readerB.Close()

	result, err := service.CompareUploads(context.Background(),
		appsvc.UploadedList{Name: "A", Filename: filepath.Base(*fileA), Reader: readerA},
		appsvc.UploadedList{Name: "B", Filename: filepath.Base(*fileB), Reader: readerB},
	)
	if err != nil {
		fatal("compare: %v", err)
	}

	s := result.Summary
	fmt.Printf("Total A: %d  Total B: %d\n", s.TotalA, s.TotalB)
	fmt.Printf("Coincidencias: %d  Solo en A: %d  Solo en B: %d\n", s.Matched, s.OnlyA, s.OnlyB)
	fmt.Printf("Diferencia %% promedio: %.2f  mediana: %.2f  max abs $: %.2f\n",
		s.AvgDeltaPercent, s.MedianDeltaPercent, s.MaxAbsDelta)

	if *jsonOut != "" {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fatal("encode json: %v", err)
		}
		if err := os.WriteFile(*jsonOut, append(payload, '\n'), 0o644); err != nil {
			fatal("write %s: %v", *jsonOut, err)
		}
		fmt.Printf("Wrote JSON: %s\n", *jsonOut)
	}

	if *reportOut != "" {
		payload, _, err := service.BuildReport(result)
		if err != nil {
			fatal("build report: %v", err)
		}
		if err := os.WriteFile(*reportOut, payload, 0o644); err != nil {
			fatal("write %s: %v", *reportOut, err)
		}
		fmt.Printf("Wrote report: %s\n", *reportOut)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
