package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pricelens/domain/pricelist"
	"pricelens/ports"
)

// UploadedList is one spreadsheet handed over by the UI or CLI collaborator.
type UploadedList struct {
	Name     string // display name, "A" or "B"
	Filename string
	Reader   io.Reader
}

// CompareService orchestrates one comparison request: parse both uploads,
// run the domain comparison, and optionally render the export workbook.
// The service holds no per-request state, so one instance serves all
// sessions concurrently.
type CompareService struct {
	source ports.ListSource
	report ports.ReportWriter
}

// NewCompareService creates a comparison service.
func NewCompareService(source ports.ListSource, report ports.ReportWriter) *CompareService {
	return &CompareService{
		source: source,
		report: report,
	}
}

// CompareUploads parses both spreadsheets and compares them. The two files
// are independent, so they are parsed concurrently; nothing is shared
// between the goroutines but the result slots.
func (s *CompareService) CompareUploads(ctx context.Context, uploadA, uploadB UploadedList) (pricelist.ComparisonResult, error) {
	start := time.Now()

	var listA, listB pricelist.PriceList
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listA, err = s.source.ReadList(gctx, uploadA.Name, uploadA.Reader, uploadA.Filename)
		return err
	})
	g.Go(func() error {
		var err error
		listB, err = s.source.ReadList(gctx, uploadB.Name, uploadB.Reader, uploadB.Filename)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[CompareService] FAILED - parsing uploads: %v", err)
		return pricelist.ComparisonResult{}, err
	}

	result, err := pricelist.Compare(listA, listB)
	if err != nil {
		log.Printf("[CompareService] FAILED - comparison: %v", err)
		return pricelist.ComparisonResult{}, err
	}

	log.Printf("[CompareService] Compared %s (%d rows) vs %s (%d rows): %d matched, %d only-A, %d only-B in %.2fms",
		uploadA.Filename, listA.Len(), uploadB.Filename, listB.Len(),
		result.Summary.Matched, result.Summary.OnlyA, result.Summary.OnlyB,
		float64(time.Since(start).Nanoseconds())/1e6)
	return result, nil
}

// BuildReport renders the comparison workbook and suggests a download
// filename tagged with a fresh report ID.
func (s *CompareService) BuildReport(result pricelist.ComparisonResult) ([]byte, string, error) {
	payload, err := s.report.Write(result)
	if err != nil {
		log.Printf("[CompareService] FAILED - report export: %v", err)
		return nil, "", err
	}

	reportID := uuid.New().String()[:8]
	filename := fmt.Sprintf("analisis_comparativo_%s.xlsx", reportID)
	log.Printf("[CompareService] Report %s rendered (%d bytes)", reportID, len(payload))
	return payload, filename, nil
}
