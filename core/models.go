package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so the same question/answer
// pair always resolves to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultEmbeddingDimensions is the embedding vector length used for
// verified-answer matching unless configured otherwise.
const DefaultEmbeddingDimensions = 384

// Rating is a single verifier's judgment of a question/answer pair.
type Rating int

const (
	// RatingRejected marks the answer as incorrect or unhelpful.
	RatingRejected Rating = -1
	// RatingNeutral records a judgment without accepting or rejecting.
	RatingNeutral Rating = 0
	// RatingAccepted marks the answer as correct.
	RatingAccepted Rating = 1
)

// VerificationType identifies how a verification was requested.
type VerificationType int

const (
	// VerificationTypeSelf is a verification by the answer's original author.
	VerificationTypeSelf VerificationType = iota + 1
	// VerificationTypePeer is a verification by another user.
	VerificationTypePeer
	// VerificationTypeDepartment is a verification requested from one or more departments.
	VerificationTypeDepartment
)

// Intent is the coarse category of what kind of answer a question seeks.
type Intent string

const (
	IntentDefinition      Intent = "definition"
	IntentHowTo           Intent = "howto"
	IntentTroubleshooting Intent = "troubleshooting"
	IntentComparison      Intent = "comparison"
	IntentRecommendation  Intent = "recommendation"
	IntentExplanation     Intent = "explanation"
	IntentListing         Intent = "listing"
)

// Intents lists all valid intent labels.
var Intents = []Intent{
	IntentDefinition,
	IntentHowTo,
	IntentTroubleshooting,
	IntentComparison,
	IntentRecommendation,
	IntentExplanation,
	IntentListing,
}

// ValidIntent reports whether label is one of the known intent labels.
func ValidIntent(label Intent) bool {
	for _, intent := range Intents {
		if intent == label {
			return true
		}
	}
	return false
}

// VerificationRecord is one verifier's judgment on a question/answer pair.
// Records are immutable once written; corrections are additional records.
type VerificationRecord struct {
	Rating      Rating
	Verifier    string
	Type        VerificationType
	Departments []string  // Departments the verification was requested from
	DueDate     time.Time // Zero when the verification has no deadline
	Timestamp   time.Time
}

// VerifiedAnswer is a human-verified question/answer pair enriched with an
// embedding vector for semantic matching.
//
// AcceptedCount and RejectedCount are derived from Verifications via
// FoldAggregates. They are stored denormalized for cheap reads but are
// recomputed on every append, never set independently.
type VerifiedAnswer struct {
	Id            ID
	Question      string
	Answer        string
	Intent        Intent
	Departments   []string
	Vector        []float32
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AcceptedCount int
	RejectedCount int
	Archived      bool
	Verifications []VerificationRecord
}

// Tuple returns the canonical identity string for the question/answer pair.
// This is used for generating deterministic IDs.
func (a *VerifiedAnswer) Tuple() string {
	return a.Question + "\n" + a.Answer
}

// RecomputeAggregates refreshes the denormalized counters from the full
// verification record set.
func (a *VerifiedAnswer) RecomputeAggregates() {
	a.AcceptedCount, a.RejectedCount = FoldAggregates(a.Verifications)
}

// FoldAggregates derives the accepted and rejected counts from a set of
// verification records. It is the single source of truth for the counters.
func FoldAggregates(records []VerificationRecord) (accepted, rejected int) {
	for _, record := range records {
		switch record.Rating {
		case RatingAccepted:
			accepted++
		case RatingRejected:
			rejected++
		}
	}
	return accepted, rejected
}

// Aggregates is a point-in-time view of an answer's counters.
type Aggregates struct {
	AcceptedCount int
	RejectedCount int
	Views         uint64
}
