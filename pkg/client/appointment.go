package client

import (
	"context"
	"fmt"
	"net/url"

	"walkin/pkg/model"
)

const AppointmentsBasePath = "/api/appointments"

// AppointmentClient drives the kiosk appointment API over HTTP.
type AppointmentClient struct {
	httpClient *HttpClient
}

func NewAppointmentClient(baseURL string) *AppointmentClient {
	return &AppointmentClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AppointmentClient) Timeslots(ctx context.Context, date string) (*Response, error) {
	return c.httpClient.GET(ctx, AppointmentsBasePath+"/timeslots/"+url.PathEscape(date))
}

func (c *AppointmentClient) IDTypes(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, AppointmentsBasePath+"/id-types")
}

func (c *AppointmentClient) Book(ctx context.Context, req *model.BookingRequest) (*Response, error) {
	return c.httpClient.POST(ctx, AppointmentsBasePath, req)
}

func (c *AppointmentClient) BookRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, AppointmentsBasePath, rawBody)
}

func (c *AppointmentClient) Get(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, AppointmentsBasePath+"/"+url.PathEscape(id))
}

func (c *AppointmentClient) Cancel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.PUT(ctx, AppointmentsBasePath+"/"+url.PathEscape(id)+"/cancel", nil)
}

func (c *AppointmentClient) DecodeAvailability(resp *Response) (*model.Availability, error) {
	var availability model.Availability
	if err := resp.DecodeJSON(&availability); err != nil {
		return nil, fmt.Errorf("could not decode availability:\n%s\n%w", resp.ToString(), err)
	}
	return &availability, nil
}

func (c *AppointmentClient) DecodeBookingResult(resp *Response) (*model.BookingResult, error) {
	var result model.BookingResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("could not decode booking result:\n%s\n%w", resp.ToString(), err)
	}
	return &result, nil
}

func (c *AppointmentClient) DecodeDetails(resp *Response) (*model.AppointmentDetails, error) {
	var details model.AppointmentDetails
	if err := resp.DecodeJSON(&details); err != nil {
		return nil, fmt.Errorf("could not decode appointment:\n%s\n%w", resp.ToString(), err)
	}
	return &details, nil
}

func (c *AppointmentClient) DecodeAppointment(resp *Response) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := resp.DecodeJSON(&appointment); err != nil {
		return nil, fmt.Errorf("could not decode appointment:\n%s\n%w", resp.ToString(), err)
	}
	return &appointment, nil
}
