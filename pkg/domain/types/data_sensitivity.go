package types

import "github.com/m-mizutani/goerr/v2"

// DataSensitivity classifies data processed by the AI system
type DataSensitivity string

const (
	DataPublicOnly         DataSensitivity = "public_only"
	DataCompanyGeneral     DataSensitivity = "company_general"
	DataClientConfidential DataSensitivity = "client_confidential"
	DataStrategicSensitive DataSensitivity = "strategic_sensitive"
	DataPersonalData       DataSensitivity = "personal_data"
	DataSpecialCategories  DataSensitivity = "special_categories"
)

// AllDataSensitivities returns the tags ordered from least to most sensitive
func AllDataSensitivities() []DataSensitivity {
	return []DataSensitivity{
		DataPublicOnly,
		DataCompanyGeneral,
		DataClientConfidential,
		DataStrategicSensitive,
		DataPersonalData,
		DataSpecialCategories,
	}
}

func (d DataSensitivity) IsValid() bool {
	switch d {
	case DataPublicOnly,
		DataCompanyGeneral,
		DataClientConfidential,
		DataStrategicSensitive,
		DataPersonalData,
		DataSpecialCategories:
		return true
	default:
		return false
	}
}

// IsPersonal reports whether the tag covers personal data under GDPR
func (d DataSensitivity) IsPersonal() bool {
	return d == DataPersonalData || d == DataSpecialCategories
}

// IsConfidential reports whether the tag covers client or strategic secrets
func (d DataSensitivity) IsConfidential() bool {
	return d == DataClientConfidential || d == DataStrategicSensitive
}

func (d DataSensitivity) String() string {
	return string(d)
}

// ParseDataSensitivity parses a string into a DataSensitivity
func ParseDataSensitivity(s string) (DataSensitivity, error) {
	d := DataSensitivity(s)
	if !d.IsValid() {
		return "", goerr.New("invalid data sensitivity", goerr.V("data", s))
	}
	return d, nil
}
