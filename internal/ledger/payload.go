// Package ledger implements the append-only audit ledger a report is
// committed to when it locks: the canonical payload builder and the
// git-backed revision store.
package ledger

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/zeebo/blake3"
)

// payloadEntry is one entry line in the canonical payload. Field order and
// formatting are fixed; changing either changes every future payload hash.
type payloadEntry struct {
	Date        string `json:"date"` // 2006-01-02
	MissionID   string `json:"missionID"`
	Quantity    string `json:"quantity"` // fixed two decimal places
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
	Description string `json:"description"`
}

// payloadContent is the part of the payload covered by the content hash.
// LockedAt is deliberately outside: it is the one sanctioned variable field,
// and excluding it lets a retried lock recognize its own earlier revision.
type payloadContent struct {
	ReportID     string         `json:"reportID"`
	Period       string         `json:"period"` // YYYY-MM
	CurrencyCode string         `json:"currencyCode"`
	TotalDays    string         `json:"totalDays"`
	TotalAmount  int64          `json:"totalAmount"`
	Entries      []payloadEntry `json:"entries"`
}

type payloadDocument struct {
	payloadContent
	LockedAt string `json:"lockedAt"` // RFC3339, UTC
}

// Payload is a canonical, deterministic serialization of a report's final
// state. Building it twice from the same logical state yields byte-identical
// output.
type Payload struct {
	Bytes       []byte
	ContentHash string // blake3 hex over the content section
}

// BuildPayload renders the canonical payload for a report about to lock.
// It is a pure function of its arguments: entries are sorted by
// (date, mission id), numbers use fixed formatting, and JSON keys follow the
// struct declaration order.
func BuildPayload(report domain.Report, entries []domain.Entry, lockedAt time.Time) (*Payload, error) {
	sorted := make([]domain.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := sorted[i].Date, sorted[j].Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return sorted[i].MissionID < sorted[j].MissionID
	})

	payloadEntries := make([]payloadEntry, len(sorted))
	for i, e := range sorted {
		payloadEntries[i] = payloadEntry{
			Date:        e.Date.UTC().Format("2006-01-02"),
			MissionID:   e.MissionID,
			Quantity:    e.Quantity.StringFixed(2),
			UnitPrice:   e.UnitPrice,
			LineTotal:   e.LineTotal(),
			Description: e.Description,
		}
	}

	content := payloadContent{
		ReportID:     report.ReportID,
		Period:       report.PeriodString(),
		CurrencyCode: report.CurrencyCode,
		TotalDays:    report.TotalDays.StringFixed(2),
		TotalAmount:  report.TotalAmount,
		Entries:      payloadEntries,
	}

	contentBytes, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload content: %w", err)
	}
	sum := blake3.Sum256(contentBytes)

	doc := payloadDocument{
		payloadContent: content,
		LockedAt:       lockedAt.UTC().Format(time.RFC3339),
	}
	docBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	docBytes = append(docBytes, '\n')

	return &Payload{
		Bytes:       docBytes,
		ContentHash: hex.EncodeToString(sum[:]),
	}, nil
}

// CommitMessage renders the message recorded with a ledger revision. The
// content hash in the message is what allows a retried lock to recognize a
// revision whose database transaction failed.
func CommitMessage(reportID string, sequence int64, contentHash string) string {
	return fmt.Sprintf("lock report %s seq %d content=%s", reportID, sequence, contentHash)
}

// ParseCommitMessage extracts the report id, sequence and content hash from a
// revision message produced by CommitMessage. ok is false for any message
// this system did not write.
func ParseCommitMessage(message string) (reportID string, sequence int64, contentHash string, ok bool) {
	fields := strings.Fields(strings.TrimSpace(message))
	if len(fields) != 6 || fields[0] != "lock" || fields[1] != "report" || fields[3] != "seq" {
		return "", 0, "", false
	}
	seq, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	hash, found := strings.CutPrefix(fields[5], "content=")
	if !found || hash == "" {
		return "", 0, "", false
	}
	return fields[2], seq, hash, true
}
