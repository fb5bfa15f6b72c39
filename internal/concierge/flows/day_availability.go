package flows

import (
	"sort"

	"maison/internal/concierge/core"
	"maison/pkg/model"
)

// DayAvailability answers "what is free at this facility on this day":
// it resolves the facility so the caller gets its name and hours next
// to the slot grid.
type DayAvailability struct{}

func (f *DayAvailability) Name() string {
	return "day_availability"
}

func (f *DayAvailability) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("fetch_facility", FetchFacility),
		core.NewStep("fetch_availability", FetchAvailability),
		core.NewStep("organize_output", f.organizeOutput),
	}
}

func (f *DayAvailability) organizeOutput(ctx *core.FlowContext) error {
	facility := ctx.Process[Facility].(*model.Facility)
	availability := ctx.Process[Availability].(*model.SlotAvailability)

	free := make([]string, 0, len(availability.Slots))
	occupied := make([]string, 0)
	for slot, taken := range availability.Slots {
		if taken {
			occupied = append(occupied, slot)
		} else {
			free = append(free, slot)
		}
	}
	sort.Strings(free)
	sort.Strings(occupied)

	ctx.Output[Facility] = facility
	ctx.Output[Date] = availability.Date
	ctx.Output["free_slots"] = free
	ctx.Output["occupied_slots"] = occupied
	return nil
}
