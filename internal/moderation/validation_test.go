package moderation_test

import (
	"testing"
	"time"

	"hackhub/internal/moderation"
	"hackhub/models"

	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	sub := validSubmission()
	sub.Tags = []string{" AI ", "Web", "AI", ""}
	sub.StartDate = "2025-06-01T09:30:00+05:30"

	h, err := sub.Build()
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, h.Status)
	require.False(t, h.IsVerified)
	require.Equal(t, []string{"AI", "Web"}, h.Tags)
	require.Equal(t, time.Date(2025, 6, 1, 4, 0, 0, 0, time.UTC), h.StartDate)
	require.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), h.RegistrationDeadline)
}

func TestBuildFieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(s *moderation.Submission)
		field string
	}{
		{"missing college", func(s *moderation.Submission) { s.College = "" }, "college"},
		{"bad email", func(s *moderation.Submission) { s.ContactEmail = "nope" }, "contactEmail"},
		{"bad website", func(s *moderation.Submission) { s.Website = "not a url" }, "website"},
		{"min team size", func(s *moderation.Submission) { s.TeamSize.Min = 0 }, "teamSize.min"},
		{"max below min", func(s *moderation.Submission) { s.TeamSize = moderation.TeamSize{Min: 4, Max: 2} }, "teamSize.max"},
		{"huge team", func(s *moderation.Submission) { s.TeamSize = moderation.TeamSize{Min: 2, Max: 1_000_000} }, "teamSize.max"},
		{"huge min", func(s *moderation.Submission) { s.TeamSize = moderation.TeamSize{Min: 101, Max: 101} }, "teamSize.min"},
		{"no tags", func(s *moderation.Submission) { s.Tags = []string{} }, "tags"},
		{"blank tags", func(s *moderation.Submission) { s.Tags = []string{"  "} }, "tags"},
		{"bad date", func(s *moderation.Submission) { s.StartDate = "June 1st" }, "startDate"},
		{"missing deadline", func(s *moderation.Submission) { s.RegistrationDeadline = "" }, "registrationDeadline"},
		{"end before start", func(s *moderation.Submission) { s.EndDate = "2025-05-30" }, "endDate"},
		{"deadline after start", func(s *moderation.Submission) { s.RegistrationDeadline = "2025-06-02" }, "registrationDeadline"},
		{"missing image", func(s *moderation.Submission) { s.Image = "" }, "image"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mod(&sub)

			_, err := sub.Build()
			var ve *moderation.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestBuildSameDayEvent(t *testing.T) {
	sub := validSubmission()
	sub.RegistrationDeadline = "2025-06-01"
	sub.StartDate = "2025-06-01"
	sub.EndDate = "2025-06-01"

	_, err := sub.Build()
	require.NoError(t, err)
}
