package validators

import "go.mongodb.org/mongo-driver/bson"

var BillValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"category",
			"amount",
			"month",
			"due_date",
			"status",
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

			"category": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Electricity",
					"Water",
					"Service",
					"Internet",
				},
			},

			"amount": bson.M{
				"bsonType":         []string{"double", "int", "long", "decimal"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"month": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"due_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Unpaid",
					"Overdue",
					"Paid",
				},
			},

			"paid_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},
		},
	},
}
