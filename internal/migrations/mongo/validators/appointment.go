package validators

import (
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var AppointmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"party_id",
			"date",
			"time_label",
			"id_type",
			"id_reference",
			"status",
			"active",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"party_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time_label": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 16,
			},

			"id_type": bson.M{
				"bsonType": "string",
				"enum":     model.IDTypeValues(),
			},

			"id_reference": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": model.MaxIDReferenceLength,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     model.StatusValues(),
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
