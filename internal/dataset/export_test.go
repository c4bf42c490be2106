package dataset

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestWriteReadRoundTrip(t *testing.T) {
	g := NewGenerator(DefaultPools(), 0, 0, zap.NewNop())
	run := g.Start(context.Background(), RunConfig{TotalRecords: 120, FraudRatio: 0.25, Seed: 3})
	records := collect(t, run)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, records); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	decoded, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !reflect.DeepEqual(records, decoded) {
		t.Error("round-tripped records differ from the originals")
	}
}

// The export is the flat key/value table downstream training consumes; the
// field names are part of the format.
func TestExportFieldNames(t *testing.T) {
	records := []Record{{
		Label:            LabelFraud,
		Subject:          "x",
		FromDomain:       "a.example",
		ReturnPathDomain: "b.example",
	}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, records); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	out := buf.String()
	for _, field := range []string{
		"label", "subject", "body", "fromDomain", "returnPathDomain",
		"domainMismatchFlag", "senderReputationScore", "timeAnomalyScore",
		"attachmentType", "urgencyKeywords", "hasLinks", "linkCount",
	} {
		if !strings.Contains(out, `"`+field+`"`) {
			t.Errorf("exported document is missing field %q", field)
		}
	}
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("ReadJSON should fail on malformed input")
	}
}
