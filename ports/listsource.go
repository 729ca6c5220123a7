package ports

import (
	"context"
	"io"

	"pricelens/domain/pricelist"
)

// ListSource parses one uploaded spreadsheet into a validated PriceList.
// Implementations own the file-format concerns (column aliases, price
// cleaning) so the domain core only ever sees well-formed rows.
type ListSource interface {
	ReadList(ctx context.Context, name string, r io.Reader, filename string) (pricelist.PriceList, error)
}

// ReportWriter renders a ComparisonResult into a downloadable workbook.
type ReportWriter interface {
	Write(result pricelist.ComparisonResult) ([]byte, error)
}
