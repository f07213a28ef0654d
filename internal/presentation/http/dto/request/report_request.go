package request

import (
	"bytes"
	"encoding/json"
)

// Amount accepts a JSON number or a numeric string and keeps the literal
// text so no precision is lost before decimal parsing.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n)
	return nil
}

// SubmitReportRequest is a sales report filed by a representative
type SubmitReportRequest struct {
	Fabricator    string   `json:"fabricator"`
	Distributor   string   `json:"distributor"`
	Amount        Amount   `json:"amount"`
	InvoiceNumber string   `json:"invoice_number"`
	SalesDate     string   `json:"sales_date"`
	Attachments   []string `json:"attachments"`
}

// ReportQuery binds the filters shared by listing and export
type ReportQuery struct {
	View         string `form:"view"`
	FromDate     string `form:"from_date"`
	ToDate       string `form:"to_date"`
	FabricatorID string `form:"fabricator_id"`
	RepID        string `form:"rep_id"`
	Format       string `form:"format"`
}
