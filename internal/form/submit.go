package form

import (
	"context"
	"net/url"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
)

// BookingSubmitter posts the serialized draft and classifies the reply.
type BookingSubmitter interface {
	Submit(ctx context.Context, fields url.Values) (*clinicapi.Outcome, error)
}

// encodePayload serializes the draft as the form-encoded write request.
// usa_convenio follows the checkbox convention: present ("on") or absent.
func encodePayload(d Draft) url.Values {
	fields := url.Values{}
	if d.Specialty != "" {
		fields.Set("especialidade", d.Specialty)
	}
	fields.Set("medico", d.Doctor)
	fields.Set("hora", d.Slot)
	fields.Set("data_hora", d.DateTime())
	fields.Set("observacoes", d.Notes)
	if d.UsesInsurance {
		fields.Set("usa_convenio", "on")
		if d.InsurancePlan != "" {
			fields.Set("convenio", d.InsurancePlan)
		}
	}
	return fields
}
