package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luvi2001/yfcapp/internal/model"
)

func fullMarks() ScoreInput {
	return ScoreInput{
		DevotionDays:     7,
		PlanningMeeting:  model.Yes,
		BibleStudy:       model.BibleStudyYes,
		DisciplerMeeting: model.Yes,
		ContributionPaid: model.ContributionYes,
	}
}

func TestComputeScore(t *testing.T) {
	cases := []struct {
		name   string
		edit   func(*ScoreInput)
		paid   bool
		points int
		max    int
	}{
		{"all yes, no members", func(*ScoreInput) {}, false, 14, 14},
		{"devotion is capped at seven", func(in *ScoreInput) { in.DevotionDays = 9 }, false, 14, 14},
		{"partial devotion", func(in *ScoreInput) { in.DevotionDays = 3 }, false, 10, 14},
		{"someone else with three people", func(in *ScoreInput) {
			in.BibleStudy = model.BibleStudySomeoneElse
			in.StudyPeople = []string{"a", "b", "c"}
		}, false, 15, 15},
		{"someone else with nobody named", func(in *ScoreInput) {
			in.BibleStudy = model.BibleStudySomeoneElse
		}, false, 12, 14},
		{"bible study no", func(in *ScoreInput) { in.BibleStudy = model.BibleStudyNo }, false, 12, 14},
		{"members are flat two each", func(in *ScoreInput) {
			in.Members = []model.Activities{
				{BibleStudy: true, Discipleship: true, Visiting: true},
				{Visiting: true},
				{},
			}
		}, false, 18, 20},
		{"unpaid without earlier payment", func(in *ScoreInput) {
			in.ContributionPaid = model.ContributionNo
		}, false, 12, 14},
		{"unpaid with earlier payment this month", func(in *ScoreInput) {
			in.ContributionPaid = model.ContributionNo
		}, true, 14, 14},
		{"nothing done", func(in *ScoreInput) { *in = ScoreInput{} }, false, 0, 14},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := fullMarks()
			tc.edit(&in)
			got := ComputeScore(in, tc.paid)
			assert.Equal(t, tc.points, got.Points, "points")
			assert.Equal(t, tc.max, got.MaxPoints, "maxPoints")
			assert.LessOrEqual(t, got.Points, got.MaxPoints)
			assert.GreaterOrEqual(t, got.Points, 0)
		})
	}
}

func TestStudyParticipants(t *testing.T) {
	assert.Equal(t, []string{"Ann", "Bob"}, StudyParticipants([]string{" Ann ", "", "Bob"}, "ignored"))
	assert.Equal(t, []string{"Ann", "Bob", "Cy"}, StudyParticipants(nil, "Ann, Bob; Cy"))
	assert.Empty(t, StudyParticipants(nil, " , "))
}

func TestLegacyMarks(t *testing.T) {
	assert.Equal(t, 10, LegacyMarks(7, model.Yes, model.Yes, model.Yes))
	assert.Equal(t, 10, LegacyMarks(12, model.Yes, model.Yes, model.Yes))
	assert.Equal(t, 4, LegacyMarks(3, model.No, model.Yes, model.No))
}
