package services

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"guestlist/internal/domain"
)

// ParseGuestCSV turns an uploaded guest list into import rows. Expected shape:
// UTF-8 text with an optional byte-order mark, the first non-empty record a
// header containing case-insensitive "name" and "email" cells at any position,
// the rest data rows. Quoted fields (including quoted commas) are handled by
// the CSV reader; cells are trimmed. A missing header column fails the whole
// upload with ErrMalformedCSV before any row is produced.
func ParseGuestCSV(r io.Reader) ([]domain.ImportRow, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	nameIdx, emailIdx := -1, -1
	headerSeen := false
	var rows []domain.ImportRow

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCSV, err)
		}
		if blankRecord(record) {
			continue
		}
		if !headerSeen {
			headerSeen = true
			for i, cell := range record {
				switch strings.ToLower(strings.TrimSpace(cell)) {
				case "name":
					if nameIdx == -1 {
						nameIdx = i
					}
				case "email":
					if emailIdx == -1 {
						emailIdx = i
					}
				}
			}
			if nameIdx == -1 || emailIdx == -1 {
				return nil, domain.ErrMalformedCSV
			}
			continue
		}

		line, _ := reader.FieldPos(0)
		row := domain.ImportRow{Line: line}
		if nameIdx < len(record) {
			row.Name = strings.TrimSpace(record[nameIdx])
		}
		if emailIdx < len(record) {
			row.Email = strings.TrimSpace(record[emailIdx])
		}
		rows = append(rows, row)
	}

	if !headerSeen {
		return nil, domain.ErrMalformedCSV
	}
	return rows, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
