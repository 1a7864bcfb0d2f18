// Package model holds the record shape shared by the normalizer, the
// ingestion usecase, and the repository layer.
package model

// PostalRecord is a single row of Japan Post's utf_ken_all dataset.
//
// Reference: https://www.post.japanpost.jp/zipcode/dl/readme.html
type PostalRecord struct {
	LocalGovernmentCode string `bson:"local_government_code" json:"local_government_code"`
	OldPostalCode       string `bson:"old_postal_code" json:"old_postal_code"`
	PostalCode          string `bson:"postal_code" json:"postal_code"`

	PrefectureKana string `bson:"prefecture_kana" json:"prefecture_kana"`
	CityKana       string `bson:"city_kana" json:"city_kana"`
	TownKana       string `bson:"town_kana" json:"town_kana"`

	Prefecture string `bson:"prefecture" json:"prefecture"`
	City       string `bson:"city" json:"city"`
	Town       string `bson:"town" json:"town"`

	// HasMultiPostalCode is true when one town spans multiple postal codes.
	HasMultiPostalCode bool `bson:"has_multi_postal_code" json:"has_multi_postal_code"`
	// HasChome is true when the town field carries a chome (丁目) breakdown.
	HasChome bool `bson:"has_chome" json:"has_chome"`
	// HasMultiTown is true when one postal code spans multiple towns.
	HasMultiTown bool `bson:"has_multi_town" json:"has_multi_town"`

	// UpdateCode: 0 = no change, 1 = changed, 2 = discontinued.
	UpdateCode int `bson:"update_code" json:"update_code"`
	// UpdateReason: 0-6, see Japan Post's readme for the full enumeration.
	UpdateReason int `bson:"update_reason" json:"update_reason"`
}

// NormalizedRecord wraps a PostalRecord inline. The ingestion usecase does
// not use it: it emits plain PostalRecord values, each a copy of the source
// record with Town/TownKana replaced by one normalized pair.
type NormalizedRecord struct {
	PostalRecord `bson:",inline"`
}
