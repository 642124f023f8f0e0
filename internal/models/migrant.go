package models

// Migrant represents the MIGRANT table (the subject directory).
// Registration and login are handled by the portal backend; this service
// only reads profiles under an active grant.
type Migrant struct {
	MigrantID        string  `db:"MIGRANT_ID" json:"migrantId"`
	Name             string  `db:"NAME" json:"name"`
	Phone            string  `db:"PHONE" json:"phone"`
	DOB              string  `db:"DOB" json:"dob"`
	BloodGroup       *string `db:"BLOOD_GROUP" json:"bloodGroup,omitempty"`
	Allergies        *string `db:"ALLERGIES" json:"allergies,omitempty"`
	EmergencyContact *string `db:"EMERGENCY_CONTACT" json:"emergencyContact,omitempty"`
}
