package flows

import (
	"fmt"
	"net/http"

	"maison/internal/concierge/core"
	"maison/pkg/client"
)

// Keys shared between steps.
const (
	FacilityID = "facility_id"
	Date       = "date"
	TimeSlot   = "time_slot"
	UserID     = "user_id"
	UserName   = "user_name"

	Facility     = "facility"
	Availability = "availability"
	Booking      = "booking"
)

func FetchFacility(ctx *core.FlowContext) error {
	facilityID, err := ctx.ExtractString(FacilityID)
	if err != nil {
		return err
	}

	resp, err := ctx.Client.Facilities.GetByID(ctx.Ctx, facilityID)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("facility lookup failed: %s", client.GetErrorMessage(resp))
	}

	facility, err := ctx.Client.Facilities.DecodeFacility(resp)
	if err != nil {
		return err
	}

	ctx.Process[Facility] = facility
	return nil
}

func FetchAvailability(ctx *core.FlowContext) error {
	facilityID, err := ctx.ExtractString(FacilityID)
	if err != nil {
		return err
	}
	date, err := ctx.ExtractString(Date)
	if err != nil {
		return err
	}

	resp, err := ctx.Client.Bookings.Availability(ctx.Ctx, facilityID, date)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("availability lookup failed: %s", client.GetErrorMessage(resp))
	}

	availability, err := ctx.Client.Bookings.DecodeAvailability(resp)
	if err != nil {
		return err
	}

	ctx.Process[Availability] = availability
	return nil
}
