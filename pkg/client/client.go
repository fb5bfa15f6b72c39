package client

import (
	"context"
	"time"

	"maison/pkg/logger"
)

type Client struct {
	Mongo      *MongoClient
	Facilities *FacilityClient
	Bookings   *BookingClient

	log *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	c.log = log
	c.Mongo = NewMongoClient(log, mongoURI, mongoConnTimeout)
}

func (c *Client) SetFacilities(baseURL string) {
	c.Facilities = NewFacilityClient(baseURL)
}

func (c *Client) SetBookings(baseURL string) {
	c.Bookings = NewBookingClient(baseURL)
}

func (c *Client) GracefulShutdown() {
	if c.Mongo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Mongo.Client.Disconnect(ctx); err != nil && c.log != nil {
		c.log.Error("Failed to disconnect from MongoDB", "error", err)
	}
}
