package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "How do I reset my password?\nOpen settings and choose reset.",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestVerifiedAnswer_Tuple(t *testing.T) {
	tests := []struct {
		name   string
		answer VerifiedAnswer
		want   string
	}{
		{
			name: "basic pair",
			answer: VerifiedAnswer{
				Question: "What is SSO?",
				Answer:   "Single sign-on.",
			},
			want: "What is SSO?\nSingle sign-on.",
		},
		{
			name:   "empty pair",
			answer: VerifiedAnswer{},
			want:   "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.answer.Tuple()
			if got != tt.want {
				t.Errorf("VerifiedAnswer.Tuple() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFoldAggregates(t *testing.T) {
	tests := []struct {
		name         string
		ratings      []Rating
		wantAccepted int
		wantRejected int
	}{
		{
			name:         "mixed ratings",
			ratings:      []Rating{RatingAccepted, RatingAccepted, RatingRejected, RatingNeutral},
			wantAccepted: 2,
			wantRejected: 1,
		},
		{
			name:         "no records",
			ratings:      nil,
			wantAccepted: 0,
			wantRejected: 0,
		},
		{
			name:         "neutral only",
			ratings:      []Rating{RatingNeutral, RatingNeutral},
			wantAccepted: 0,
			wantRejected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]VerificationRecord, len(tt.ratings))
			for i, rating := range tt.ratings {
				records[i] = VerificationRecord{Rating: rating, Verifier: "v", Type: VerificationTypePeer}
			}

			accepted, rejected := FoldAggregates(records)
			if accepted != tt.wantAccepted {
				t.Errorf("FoldAggregates() accepted = %d, want %d", accepted, tt.wantAccepted)
			}
			if rejected != tt.wantRejected {
				t.Errorf("FoldAggregates() rejected = %d, want %d", rejected, tt.wantRejected)
			}
		})
	}
}

func TestRecomputeAggregates(t *testing.T) {
	answer := VerifiedAnswer{
		// Deliberately wrong counters; recompute must overwrite them.
		AcceptedCount: 99,
		RejectedCount: 99,
		Verifications: []VerificationRecord{
			{Rating: RatingAccepted, Verifier: "a", Type: VerificationTypeSelf},
			{Rating: RatingRejected, Verifier: "b", Type: VerificationTypePeer},
			{Rating: RatingAccepted, Verifier: "c", Type: VerificationTypePeer},
		},
	}

	answer.RecomputeAggregates()

	if answer.AcceptedCount != 2 {
		t.Errorf("AcceptedCount = %d, want 2", answer.AcceptedCount)
	}
	if answer.RejectedCount != 1 {
		t.Errorf("RejectedCount = %d, want 1", answer.RejectedCount)
	}
}

func TestValidIntent(t *testing.T) {
	for _, intent := range Intents {
		if !ValidIntent(intent) {
			t.Errorf("ValidIntent(%q) = false, want true", intent)
		}
	}
	if ValidIntent("smalltalk") {
		t.Error("ValidIntent(\"smalltalk\") = true, want false")
	}
	if ValidIntent("") {
		t.Error("ValidIntent(\"\") = true, want false")
	}
}
