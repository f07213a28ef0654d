package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/districts"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/utils"
)

const dateLayout = "2006-01-02"

const msgRequired = "This field is required."

// validator collects field errors and reports them together
type validator struct {
	errs []apperror.FieldError
}

func (v *validator) add(field, message string) {
	v.errs = append(v.errs, apperror.FieldError{Field: field, Message: message})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, msgRequired)
	}
}

// uuid parses value into dst, recording an error when it is missing or malformed
func (v *validator) uuid(field, value string, dst *uuid.UUID) {
	if strings.TrimSpace(value) == "" {
		v.add(field, msgRequired)
		return
	}
	id, err := utils.ParseUUID(value)
	if err != nil {
		v.add(field, fmt.Sprintf("%q is not a valid UUID.", value))
		return
	}
	*dst = id
}

func (v *validator) location(catalog *districts.Catalog, district, subDistrict string) {
	if catalog == nil || district == "" || subDistrict == "" {
		return
	}
	if err := catalog.Validate(district, subDistrict); err != nil {
		v.add("sub_district", err.Error())
	}
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperror.NewValidationError(v.errs)
}

// ParseDate parses an ISO date. An empty string yields nil.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperror.NewFieldError(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	return &t, nil
}

// ParseID parses a required UUID query or body value
func ParseID(field, value string) (uuid.UUID, error) {
	var v validator
	var id uuid.UUID
	v.uuid(field, value, &id)
	return id, v.err()
}

// ParseOptionalID parses a UUID that may be omitted
func ParseOptionalID(field, value string) (*uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(value)
	if err != nil {
		return nil, apperror.NewFieldError(field, fmt.Sprintf("%q is not a valid UUID.", value))
	}
	return id, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// notifications

func fabricatorPayload(f *entity.Fabricator) map[string]string {
	p := map[string]string{
		"Name":               f.Name,
		"FabricatorName":     f.Name,
		"FabricatorPhone":    f.PhoneNumber,
		"RegistrationNumber": f.RegistrationNumber,
		"Institution":        f.Institution,
		"District":           f.District,
		"SubDistrict":        f.SubDistrict,
		"Status":             f.Status.String(),
	}
	if f.Distributor != nil {
		p["DistributorName"] = f.Distributor.Name
	}
	return p
}

func withRep(p map[string]string, rep *entity.MarketingRepresentative) map[string]string {
	if rep == nil {
		return p
	}
	p["RepName"] = rep.Name
	p["RepPhone"] = rep.PhoneNumber
	p["EmployeeID"] = rep.EmployeeID
	return p
}

// notifyRep sends template to a representative by email and SMS
func notifyRep(ctx context.Context, n notify.Notifier, template string, rep *entity.MarketingRepresentative, payload map[string]string) {
	if rep.Email != "" {
		n.Notify(ctx, notify.Notification{
			Channel:    notify.ChannelEmail,
			Template:   template,
			Recipients: []string{rep.Email},
			Payload:    payload,
		})
	}
	if rep.PhoneNumber != "" {
		n.Notify(ctx, notify.Notification{
			Channel:    notify.ChannelSMS,
			Template:   template,
			Recipients: []string{rep.PhoneNumber},
			Payload:    payload,
		})
	}
}

// notifyFabricator texts a fabricator. Fabricators have no email address.
func notifyFabricator(ctx context.Context, n notify.Notifier, template string, f *entity.Fabricator, payload map[string]string) {
	if f.PhoneNumber == "" {
		return
	}
	n.Notify(ctx, notify.Notification{
		Channel:    notify.ChannelSMS,
		Template:   template,
		Recipients: []string{f.PhoneNumber},
		Payload:    payload,
	})
}
