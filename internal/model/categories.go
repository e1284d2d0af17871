package model

// Canonical referral categories. Every silver fact carries exactly one of
// these; raw values that cannot be resolved fall back to CategoryMissing.
const (
	CategoryDoctor       = "doctor"
	CategoryPatient      = "patient"
	CategoryNonPatient   = "non_patient"
	CategoryOther        = "other"
	CategoryBillingParty = "billing_party"
	CategoryMissing      = "missing"
)

// CanonicalReferralCategories lists the closed set in canonical order.
var CanonicalReferralCategories = []string{
	CategoryDoctor,
	CategoryPatient,
	CategoryNonPatient,
	CategoryOther,
	CategoryBillingParty,
	CategoryMissing,
}

// IsCanonicalReferralCategory reports whether name is a member of the closed set.
func IsCanonicalReferralCategory(name string) bool {
	for _, c := range CanonicalReferralCategories {
		if c == name {
			return true
		}
	}
	return false
}

// ReferralCategorySeed maps one raw practice-management referral source type
// to a canonical category.
type ReferralCategorySeed struct {
	Raw       string
	Canonical string
	Notes     string
}

// DefaultReferralCategorySeeds are the advisory defaults installed for a
// client when it has no curated mappings yet. Blank and "Unknown" raw values
// resolve to missing by contract.
var DefaultReferralCategorySeeds = []ReferralCategorySeed{
	{Raw: "Doctor", Canonical: CategoryDoctor, Notes: "Referring physician"},
	{Raw: "Patient", Canonical: CategoryPatient, Notes: "Existing patient referral"},
	{Raw: "Non-Patient", Canonical: CategoryNonPatient, Notes: "Non-patient referral"},
	{Raw: "Other", Canonical: CategoryOther, Notes: "Other referral source"},
	{Raw: "Billing Party", Canonical: CategoryBillingParty, Notes: "Billing party referral"},
	{Raw: "", Canonical: CategoryMissing, Notes: "Empty/null referral category"},
	{Raw: "Unknown", Canonical: CategoryMissing, Notes: "Unknown referral category"},
}

// NewPatientCategory is the standardized appointment-type category that marks
// a canonical fact as a qualifying new patient.
const NewPatientCategory = "New Patient"

// SourceSystem tags the origin of loaded and canonicalized rows.
const SourceSystem = "practice_management"

// MissingNameSentinel is the breakdown value used when a fact has no
// referral source name.
const MissingNameSentinel = "Unknown"
