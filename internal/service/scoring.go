package service

import (
	"strings"

	"github.com/luvi2001/yfcapp/internal/model"
)

const (
	maxDevotionDays     = 7
	planningMeetingPts  = 1
	bibleStudyPts       = 2
	memberActivityPts   = 2
	disciplerMeetingPts = 2
	contributionPts     = 2
)

// ScoreInput is the validated part of a review that scoring looks at.
type ScoreInput struct {
	DevotionDays     int
	PlanningMeeting  model.YesNo
	BibleStudy       model.BibleStudyChoice
	StudyPeople      []string
	Members          []model.Activities
	DisciplerMeeting model.YesNo
	ContributionPaid model.Contribution
}

type Score struct {
	Points    int `json:"points"`
	MaxPoints int `json:"maxPoints"`
}

func (s *Score) add(earned, possible int) {
	s.Points += earned
	s.MaxPoints += possible
}

// ComputeScore sums every category into points and maxPoints.
// paidThisMonth reports an earlier "Yes" contribution by the same user in
// the calendar month of the review's week start.
func ComputeScore(in ScoreInput, paidThisMonth bool) Score {
	var s Score

	s.add(min(in.DevotionDays, maxDevotionDays), maxDevotionDays)

	s.add(boolPts(in.PlanningMeeting == model.Yes, planningMeetingPts), planningMeetingPts)

	switch {
	case in.BibleStudy == model.BibleStudyYes:
		s.add(bibleStudyPts, bibleStudyPts)
	case in.BibleStudy == model.BibleStudySomeoneElse && len(in.StudyPeople) > 0:
		// one point per person who led it, uncapped
		s.add(len(in.StudyPeople), len(in.StudyPeople))
	default:
		s.add(0, bibleStudyPts)
	}

	for _, a := range in.Members {
		s.add(boolPts(a.Any(), memberActivityPts), memberActivityPts)
	}

	s.add(boolPts(in.DisciplerMeeting == model.Yes, disciplerMeetingPts), disciplerMeetingPts)

	paid := in.ContributionPaid == model.ContributionYes || paidThisMonth
	s.add(boolPts(paid, contributionPts), contributionPts)

	return s
}

func boolPts(ok bool, pts int) int {
	if ok {
		return pts
	}
	return 0
}

// StudyParticipants returns the named people who ran the bible study,
// falling back to the comma separated otherCompletedName field.
func StudyParticipants(people []string, otherCompletedName string) []string {
	if len(people) == 0 {
		people = strings.FieldsFunc(otherCompletedName, func(r rune) bool { return r == ',' || r == ';' })
	}
	out := make([]string, 0, len(people))
	for _, p := range people {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LegacyMarks is devotion days plus one per "yes" on the legacy form.
func LegacyMarks(devotionDays int, answers ...model.YesNo) int {
	marks := min(devotionDays, maxDevotionDays)
	for _, a := range answers {
		if a == model.Yes {
			marks++
		}
	}
	return marks
}

// legacyMaxMarks is the best possible LegacyMarks for the three-question form.
const legacyMaxMarks = maxDevotionDays + 3
