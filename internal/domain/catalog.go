package domain

// Document slot identifiers. The catalog is a fixed ordered list; quota is
// counted per slot, not per upload.
const (
	SlotPassport             = "PASSPORT"
	SlotTaxID                = "TAX_ID"
	SlotInsuranceNumber      = "INSURANCE_NUMBER"
	SlotEducationDiploma     = "EDUCATION_DIPLOMA"
	SlotEmploymentHistory    = "EMPLOYMENT_HISTORY"
	SlotMilitaryID           = "MILITARY_ID"
	SlotMedicalCertificate   = "MEDICAL_CERTIFICATE"
	SlotPhoto                = "PHOTO"
	SlotBankDetails          = "BANK_DETAILS"
	SlotRecommendationLetter = "RECOMMENDATION_LETTER"
)

// DocumentSlot is a named position in the document catalog
type DocumentSlot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlotCatalog is the complete ordered catalog. MILITARY_ID is required for
// male candidates only; RECOMMENDATION_LETTER is always optional.
var SlotCatalog = []DocumentSlot{
	{ID: SlotPassport, Name: "Passport"},
	{ID: SlotTaxID, Name: "Tax ID certificate"},
	{ID: SlotInsuranceNumber, Name: "Insurance number"},
	{ID: SlotEducationDiploma, Name: "Education diploma"},
	{ID: SlotEmploymentHistory, Name: "Employment history book"},
	{ID: SlotMilitaryID, Name: "Military ID"},
	{ID: SlotMedicalCertificate, Name: "Medical certificate"},
	{ID: SlotPhoto, Name: "Photo"},
	{ID: SlotBankDetails, Name: "Bank details"},
	{ID: SlotRecommendationLetter, Name: "Recommendation letter"},
}

// RequiredSlots returns the gender-conditioned mandatory subset of the
// catalog, preserving catalog order: all slots minus the optional one, minus
// MILITARY_ID for female candidates. 9 slots for MALE, 8 for FEMALE.
func RequiredSlots(gender string) []DocumentSlot {
	required := make([]DocumentSlot, 0, len(SlotCatalog)-1)
	for _, slot := range SlotCatalog {
		if slot.ID == SlotRecommendationLetter {
			continue
		}
		if slot.ID == SlotMilitaryID && gender == GenderFemale {
			continue
		}
		required = append(required, slot)
	}
	return required
}

// IsKnownSlot reports whether id names a catalog slot
func IsKnownSlot(id string) bool {
	for _, slot := range SlotCatalog {
		if slot.ID == id {
			return true
		}
	}
	return false
}

// SlotName returns the display name for a slot id, or the id itself when the
// slot is unknown
func SlotName(id string) string {
	for _, slot := range SlotCatalog {
		if slot.ID == id {
			return slot.Name
		}
	}
	return id
}

// QuotaSatisfied reports whether every required slot for the given gender has
// an ACCEPTED document. The optional slot never participates.
func QuotaSatisfied(gender string, documents []Document) bool {
	accepted := make(map[string]bool, len(documents))
	for _, doc := range documents {
		if doc.Status == DocumentStatusAccepted {
			accepted[doc.Slot] = true
		}
	}
	for _, slot := range RequiredSlots(gender) {
		if !accepted[slot.ID] {
			return false
		}
	}
	return true
}

// MissingSlots returns the required slots that have no document at all,
// preserving catalog order
func MissingSlots(gender string, documents []Document) []DocumentSlot {
	present := make(map[string]bool, len(documents))
	for _, doc := range documents {
		present[doc.Slot] = true
	}
	var missing []DocumentSlot
	for _, slot := range RequiredSlots(gender) {
		if !present[slot.ID] {
			missing = append(missing, slot)
		}
	}
	return missing
}
