package validators

import "go.mongodb.org/mongo-driver/bson"

var ReportValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"user_name",
			"apartment",
			"title",
			"description",
			"category",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"user_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"apartment": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2000,
			},

			"category": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Maintenance",
					"Noise",
					"Security",
					"Other",
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Pending",
					"In Progress",
					"Resolved",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
