// Package synthesis converts structured records into canonical text
// documents. Synthesis is a pure function: the same record and position
// always yield a byte-identical document, so a corpus can be re-derived
// at any time without touching the persisted artifact.
package synthesis

import (
	"strconv"
	"strings"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// FieldOrder is the static field order shared between build and any
// later re-synthesis. Fields absent from a record, or present with an
// empty value, are elided from the document rather than rendered blank.
var FieldOrder = []string{
	"Account_Length",
	"Area_Code",
	"International_Plan",
	"Voice_Mail_Plan",
	"Voice_Mail_Messages",
	"Total_Day_Minutes",
	"Total_Day_Charge",
	"Total_Minutes",
	"Total_Calls",
	"Total_Charges",
	"Customer_Service_Calls",
	"Customer_Service_Category",
	"Total_International_Minutes",
	"Total_International_Calls",
	"Churn",
}

// churnField is the outcome label carried into metadata.
const churnField = "Churn"

// segmentSeparator joins the "<Field>: <value>" segments.
const segmentSeparator = " | "

// Synthesize produces the canonical document for one record. The
// positional identifier leads the document as a CustomerID segment,
// followed by the record's fields in FieldOrder.
func Synthesize(rec domain.Record, position int) domain.Document {
	var b strings.Builder
	b.WriteString("CustomerID: ")
	b.WriteString(strconv.Itoa(position))

	for _, field := range FieldOrder {
		v, ok := rec.Value(field)
		if !ok {
			continue
		}
		b.WriteString(segmentSeparator)
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(v)
	}

	return domain.Document{Position: position, Text: b.String()}
}

// Labels produces the metadata attached to the record's document:
// the originating position and the churn label, -1 when absent or
// unparseable.
func Labels(rec domain.Record, position int) domain.Metadata {
	churn := -1
	if v, ok := rec.Value(churnField); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			churn = n
		}
	}
	return domain.Metadata{
		"index": position,
		"churn": churn,
	}
}
