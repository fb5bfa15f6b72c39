package flows

import (
	"fmt"
	"net/http"

	"maison/internal/concierge/core"
	"maison/pkg/client"
	"maison/pkg/model"
)

// BookFacility resolves the facility, checks the requested slot is
// still free, and places the booking through the bookings service. The
// bookings service stays the authority on conflicts; the availability
// check here just fails fast with a friendlier error.
type BookFacility struct{}

func (f *BookFacility) Name() string {
	return "book_facility"
}

func (f *BookFacility) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("fetch_facility", FetchFacility),
		core.NewStep("fetch_availability", FetchAvailability),
		core.NewStep("check_slot_free", f.checkSlotFree),
		core.NewStep("create_booking", f.createBooking),
		core.NewStep("organize_output", f.organizeOutput),
	}
}

func (f *BookFacility) checkSlotFree(ctx *core.FlowContext) error {
	timeSlot, err := ctx.ExtractString(TimeSlot)
	if err != nil {
		return err
	}

	availability := ctx.Process[Availability].(*model.SlotAvailability)
	occupied, known := availability.Slots[timeSlot]
	if !known {
		return fmt.Errorf("slot %s is not offered at this facility", timeSlot)
	}
	if occupied {
		return fmt.Errorf("slot %s is already booked", timeSlot)
	}
	return nil
}

func (f *BookFacility) createBooking(ctx *core.FlowContext) error {
	userID, err := ctx.ExtractString(UserID)
	if err != nil {
		return err
	}
	userName, err := ctx.ExtractString(UserName)
	if err != nil {
		return err
	}
	date, err := ctx.ExtractString(Date)
	if err != nil {
		return err
	}
	timeSlot, err := ctx.ExtractString(TimeSlot)
	if err != nil {
		return err
	}

	facility := ctx.Process[Facility].(*model.Facility)

	resp, err := ctx.Client.Bookings.Create(ctx.Ctx, &model.Booking{
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		UserID:       userID,
		UserName:     userName,
		Date:         date,
		TimeSlot:     timeSlot,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("booking failed: %s", client.GetErrorMessage(resp))
	}

	booking, err := ctx.Client.Bookings.DecodeBooking(resp)
	if err != nil {
		return err
	}

	ctx.Process[Booking] = booking
	return nil
}

func (f *BookFacility) organizeOutput(ctx *core.FlowContext) error {
	booking := ctx.Process[Booking].(*model.Booking)
	ctx.Output[Booking] = booking
	ctx.Output["access_token"] = booking.AccessToken
	return nil
}
