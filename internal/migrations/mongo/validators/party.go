package validators

import (
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var PartyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"first_name",
			"last_name",
			"email",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": model.MaxNameLength,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": model.MaxNameLength,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": model.MaxEmailLength,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"maxLength": model.MaxPhoneLength,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
