package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report is a sales record tying a representative, a fabricator and a
// distributor to an invoiced amount.
type Report struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MarketingRepID uuid.UUID       `gorm:"type:uuid;not null;index" json:"marketing_rep_id"`
	FabricatorID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"fabricator_id"`
	DistributorID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"distributor_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	InvoiceNumber  string          `gorm:"size:255;uniqueIndex;not null" json:"invoice_number"`
	SalesDate      time.Time       `gorm:"type:date;not null;index" json:"sales_date"`
	Attachments    datatypes.JSON  `gorm:"type:jsonb" json:"attachments"`
	CreatedAt      time.Time       `json:"created_at"`

	MarketingRep *MarketingRepresentative `gorm:"foreignKey:MarketingRepID" json:"-"`
	Fabricator   *Fabricator              `gorm:"foreignKey:FabricatorID" json:"-"`
	Distributor  *Distributor             `gorm:"foreignKey:DistributorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new report
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

// AttachmentURLs decodes the stored attachment list
func (r *Report) AttachmentURLs() []string {
	urls := []string{}
	if len(r.Attachments) == 0 {
		return urls
	}
	_ = json.Unmarshal(r.Attachments, &urls)
	return urls
}

// SetAttachmentURLs encodes urls into the attachment column
func (r *Report) SetAttachmentURLs(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	r.Attachments = datatypes.JSON(data)
	return nil
}
