package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"maison/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", body)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/cancel"
	return c.httpClient.PUT(ctx, path, nil)
}

func (c *BookingClient) Availability(ctx context.Context, facilityID, date string) (*Response, error) {
	q := url.Values{}
	q.Set("facility_id", facilityID)
	q.Set("date", date)
	return c.httpClient.GET(ctx, "/api/v1/bookings/availability?"+q.Encode())
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeAvailability(resp *Response) (*model.SlotAvailability, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode availability wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var availability model.SlotAvailability
	if err := json.Unmarshal(wrapper.Data, &availability); err != nil {
		return nil, fmt.Errorf("could not decode availability json:\n%+v\n%s", resp.ToString(), err)
	}

	return &availability, nil
}
