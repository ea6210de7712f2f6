package validators

import "go.mongodb.org/mongo-driver/bson"

var idMapKeys = bson.M{
	"bsonType":  "string",
	"minLength": 1,
	"maxLength": 64,
}

var roomList = bson.M{
	"bsonType": "array",
	"items": bson.M{
		"bsonType": []string{"int", "long"},
	},
}

var HotelRecordSchema = bson.M{
	"bsonType": "object",
	"required": []string{"name", "total_rooms", "reserved_rooms"},
	"properties": bson.M{
		"name": bson.M{
			"bsonType":  "string",
			"maxLength": 200,
		},
		"total_rooms": bson.M{
			"bsonType": []string{"int", "long"},
		},
		"reserved_rooms": roomList,
	},
}

var CustomerRecordSchema = bson.M{
	"bsonType": "object",
	"required": []string{"name", "email"},
	"properties": bson.M{
		"name": bson.M{
			"bsonType":  "string",
			"maxLength": 200,
		},
		"email": bson.M{
			"bsonType":  "string",
			"maxLength": 254,
		},
	},
}

var ReservationRecordSchema = bson.M{
	"bsonType": "object",
	"required": []string{"customer_id", "hotel_id", "rooms", "check_in", "check_out"},
	"properties": bson.M{
		"customer_id": idMapKeys,
		"hotel_id":    idMapKeys,
		"rooms":       roomList,
		"check_in": bson.M{
			"bsonType": "string",
		},
		"check_out": bson.M{
			"bsonType": "string",
		},
	},
}

// LedgerValidator describes the single snapshot document. Each collection is
// an object keyed by entity id, so entries are checked through
// additionalProperties.
var LedgerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "hotels", "customers", "reservations", "updated_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},
			"hotels": bson.M{
				"bsonType":             "object",
				"additionalProperties": HotelRecordSchema,
			},
			"customers": bson.M{
				"bsonType":             "object",
				"additionalProperties": CustomerRecordSchema,
			},
			"reservations": bson.M{
				"bsonType":             "object",
				"additionalProperties": ReservationRecordSchema,
			},
			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
