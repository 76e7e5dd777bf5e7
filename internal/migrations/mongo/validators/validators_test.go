package validators

import (
	"slices"
	"testing"

	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func property(t *testing.T, validator bson.M, name string) bson.M {
	t.Helper()
	schema := validator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)
	prop, ok := props[name].(bson.M)
	if !ok {
		t.Fatalf("property %s missing from schema", name)
	}
	return prop
}

func TestAppointmentValidator_EnumsFollowModel(t *testing.T) {
	idTypes, _ := property(t, AppointmentValidator, "id_type")["enum"].([]string)
	if !slices.Equal(idTypes, model.IDTypeValues()) {
		t.Errorf("id_type enum = %v, want %v", idTypes, model.IDTypeValues())
	}

	statuses, _ := property(t, AppointmentValidator, "status")["enum"].([]string)
	if !slices.Equal(statuses, model.StatusValues()) {
		t.Errorf("status enum = %v, want %v", statuses, model.StatusValues())
	}
}

func TestValidators_RequireNaturalKeys(t *testing.T) {
	tests := []struct {
		name      string
		validator bson.M
		fields    []string
	}{
		{name: "appointment", validator: AppointmentValidator, fields: []string{"date", "time_label", "status", "active"}},
		{name: "party", validator: PartyValidator, fields: []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			required := tt.validator["$jsonSchema"].(bson.M)["required"].([]string)
			for _, f := range tt.fields {
				if !slices.Contains(required, f) {
					t.Errorf("%s not required", f)
				}
			}
		})
	}
}

func TestValidators_MaxLengthsFollowModel(t *testing.T) {
	tests := []struct {
		validator bson.M
		field     string
		want      int
	}{
		{AppointmentValidator, "id_reference", model.MaxIDReferenceLength},
		{PartyValidator, "first_name", model.MaxNameLength},
		{PartyValidator, "last_name", model.MaxNameLength},
		{PartyValidator, "email", model.MaxEmailLength},
		{PartyValidator, "phone", model.MaxPhoneLength},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := property(t, tt.validator, tt.field)["maxLength"]; got != tt.want {
				t.Errorf("%s maxLength = %v, want %d", tt.field, got, tt.want)
			}
		})
	}
}
