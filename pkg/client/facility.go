package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"maison/pkg/model"
)

type FacilityClient struct {
	httpClient *HttpClient
}

func NewFacilityClient(baseURL string) *FacilityClient {
	return &FacilityClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *FacilityClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/facilities/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *FacilityClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/facilities?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *FacilityClient) DecodeFacility(resp *Response) (*model.Facility, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode facility wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var facility model.Facility
	if err := json.Unmarshal(wrapper.Data, &facility); err != nil {
		return nil, fmt.Errorf("could not decode facility json:\n%+v\n%s", resp.ToString(), err)
	}

	return &facility, nil
}
