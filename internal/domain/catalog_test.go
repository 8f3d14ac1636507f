package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredSlots(t *testing.T) {
	t.Run("Male quota is 9 and includes military ID", func(t *testing.T) {
		required := RequiredSlots(GenderMale)
		assert.Len(t, required, 9)

		ids := make([]string, 0, len(required))
		for _, slot := range required {
			ids = append(ids, slot.ID)
		}
		assert.Contains(t, ids, SlotMilitaryID)
		assert.NotContains(t, ids, SlotRecommendationLetter)
	})

	t.Run("Female quota is 8 and excludes military ID", func(t *testing.T) {
		required := RequiredSlots(GenderFemale)
		assert.Len(t, required, 8)

		for _, slot := range required {
			assert.NotEqual(t, SlotMilitaryID, slot.ID)
			assert.NotEqual(t, SlotRecommendationLetter, slot.ID)
		}
	})

	t.Run("Required slots preserve catalog order", func(t *testing.T) {
		required := RequiredSlots(GenderMale)
		assert.Equal(t, SlotPassport, required[0].ID)
		assert.Equal(t, SlotBankDetails, required[len(required)-1].ID)
	})
}

func TestQuotaSatisfied(t *testing.T) {
	acceptedAll := func(gender string) []Document {
		var docs []Document
		for _, slot := range RequiredSlots(gender) {
			docs = append(docs, Document{Slot: slot.ID, Status: DocumentStatusAccepted})
		}
		return docs
	}

	t.Run("All required slots accepted satisfies quota", func(t *testing.T) {
		assert.True(t, QuotaSatisfied(GenderFemale, acceptedAll(GenderFemale)))
		assert.True(t, QuotaSatisfied(GenderMale, acceptedAll(GenderMale)))
	})

	t.Run("Female set of 8 does not satisfy male quota", func(t *testing.T) {
		assert.False(t, QuotaSatisfied(GenderMale, acceptedAll(GenderFemale)))
	})

	t.Run("Pending document in a required slot fails quota", func(t *testing.T) {
		docs := acceptedAll(GenderFemale)
		docs[0].Status = DocumentStatusPending
		assert.False(t, QuotaSatisfied(GenderFemale, docs))
	})

	t.Run("Optional slot never participates", func(t *testing.T) {
		docs := acceptedAll(GenderFemale)
		docs = append(docs, Document{Slot: SlotRecommendationLetter, Status: DocumentStatusRejected})
		assert.True(t, QuotaSatisfied(GenderFemale, docs))
	})
}

func TestMissingSlots(t *testing.T) {
	t.Run("Uploaded but unreviewed slot is not missing", func(t *testing.T) {
		docs := []Document{{Slot: SlotPassport, Status: DocumentStatusPending}}
		missing := MissingSlots(GenderFemale, docs)
		assert.Len(t, missing, 7)
		for _, slot := range missing {
			assert.NotEqual(t, SlotPassport, slot.ID)
		}
	})

	t.Run("Nothing missing when every required slot has a document", func(t *testing.T) {
		var docs []Document
		for _, slot := range RequiredSlots(GenderMale) {
			docs = append(docs, Document{Slot: slot.ID, Status: DocumentStatusRejected})
		}
		assert.Empty(t, MissingSlots(GenderMale, docs))
	})
}
