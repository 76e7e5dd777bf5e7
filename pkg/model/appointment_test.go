package model

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppointmentStatus_IsActive(t *testing.T) {
	active := map[AppointmentStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
	}
	for status, want := range active {
		if got := status.IsActive(); got != want {
			t.Errorf("%s.IsActive() = %v, want %v", status, got, want)
		}
	}
}

func TestTransitionSources(t *testing.T) {
	sources := TransitionSources(StatusCancelled)
	if len(sources) != 2 || sources[0] != StatusPending || sources[1] != StatusConfirmed {
		t.Errorf("unexpected sources for cancelled: %v", sources)
	}

	if got := TransitionSources(StatusPending); len(got) != 0 {
		t.Errorf("nothing should transition into pending, got %v", got)
	}
}

func TestIDType_IsValid(t *testing.T) {
	tests := []struct {
		value IDType
		want  bool
	}{
		{"Passport", true},
		{"Voter's ID", true},
		{"Driver's License", true},
		{"NBI Clearance", true},
		{"passport", false},
		{"Voters ID", false},
		{" Passport", false},
		{"FAKE_ID", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			if got := tt.value.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIDTypeValues(t *testing.T) {
	values := IDTypeValues()
	if len(values) != len(IDTypes) {
		t.Fatalf("expected %d values, got %d", len(IDTypes), len(values))
	}
	seen := map[string]bool{}
	for _, v := range values {
		if seen[v] {
			t.Errorf("duplicate id type %q", v)
		}
		seen[v] = true
	}
}

func TestBookingRequest_MaxTagsMatchStoredLimits(t *testing.T) {
	tests := []struct {
		typ   reflect.Type
		field string
		want  int
	}{
		{reflect.TypeOf(BookingRequest{}), "IDPresented", MaxIDReferenceLength},
		{reflect.TypeOf(UserInfo{}), "FirstName", MaxNameLength},
		{reflect.TypeOf(UserInfo{}), "LastName", MaxNameLength},
		{reflect.TypeOf(UserInfo{}), "Email", MaxEmailLength},
		{reflect.TypeOf(UserInfo{}), "Phone", MaxPhoneLength},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := tt.typ.FieldByName(tt.field)
			if !ok {
				t.Fatalf("field %s not found", tt.field)
			}
			want := "max=" + strconv.Itoa(tt.want)
			if !slices.Contains(strings.Split(f.Tag.Get("validate"), ","), want) {
				t.Errorf("%s validate tag = %q, want it to contain %q", tt.field, f.Tag.Get("validate"), want)
			}
		})
	}
}
