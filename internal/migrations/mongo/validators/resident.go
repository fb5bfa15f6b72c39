package validators

import "go.mongodb.org/mongo-driver/bson"

var ResidentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"role",
			"username",
			"password_hash",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"ADMIN",
					"RESIDENT",
				},
			},

			"apartment": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  "^\\+[1-9]\\d{1,14}$",
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"username": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 50,
			},

			"password_hash": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"avatar": bson.M{
				"bsonType": "string",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Active",
					"Inactive",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
