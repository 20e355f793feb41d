package store

import (
	"encoding/json"
	"fmt"

	"github.com/riskdash/riskdash/internal/core"
)

// The SQL stores keep flags and analysis_details as JSON text columns in an
// otherwise flat scan_records table.

// sqlTimeLayout is RFC3339 with a fixed-width fractional second so that
// lexicographic order on the stored text equals chronological order.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func marshalFlags(rec *core.ScanRecord) (string, error) {
	raw, err := json.Marshal(rec.Flags)
	if err != nil {
		return "", fmt.Errorf("failed to encode flags: %w", err)
	}
	return string(raw), nil
}

func marshalDetails(rec *core.ScanRecord) (string, error) {
	raw, err := json.Marshal(rec.AnalysisDetails)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis details: %w", err)
	}
	return string(raw), nil
}

func unmarshalVerdictColumns(rec *core.ScanRecord, flagsJSON, detailsJSON string) error {
	if err := json.Unmarshal([]byte(flagsJSON), &rec.Flags); err != nil {
		return fmt.Errorf("failed to decode flags: %w", err)
	}
	if err := json.Unmarshal([]byte(detailsJSON), &rec.AnalysisDetails); err != nil {
		return fmt.Errorf("failed to decode analysis details: %w", err)
	}
	return nil
}
