package service

import (
	"context"
	"math"
	"time"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/model"
)

// StatsService computes the read-side views. Nothing here writes.
type StatsService struct {
	reviews         ReviewStore
	progress        ProgressStore
	requiredReports int
	windowLimit     int
}

func NewStatsService(reviews ReviewStore, progress ProgressStore, requiredReports, windowLimit int) *StatsService {
	return &StatsService{reviews: reviews, progress: progress, requiredReports: requiredReports, windowLimit: windowLimit}
}

// MemberMonthly collects one member's activities across the reviews whose
// week starts in the given month.
func (s *StatsService) MemberMonthly(ctx context.Context, memberID int, month, year string) (*model.MemberMonthlyStats, error) {
	if memberID <= 0 {
		return nil, apperr.Invalid("memberId", "must be a positive id")
	}
	y, m, err := ParseMonthYear(month, year)
	if err != nil {
		return nil, err
	}
	from, to := MonthRange(y, m)
	reviews, err := s.reviews.FindReviewsForMember(ctx, memberID, from, to)
	if err != nil {
		return nil, err
	}

	out := &model.MemberMonthlyStats{Reviews: make([]model.MemberWeek, 0, len(reviews))}
	var totals model.ActivityTotals
	for _, r := range reviews {
		a := activitiesFor(r, memberID)
		addActivities(&totals, a)
		out.Reviews = append(out.Reviews, model.MemberWeek{
			ReviewID:         r.ID,
			UserName:         r.UserName,
			WeekStart:        r.WeekStart,
			WeekEnd:          r.WeekEnd,
			CommonLesson:     r.CommonLesson,
			MemberActivities: a,
		})
	}
	out.Summary = model.MemberMonthSummary{
		TotalWeeks:        len(reviews),
		BibleStudyCount:   totals.BibleStudy,
		DiscipleshipCount: totals.Discipleship,
		VisitingCount:     totals.Visiting,
		AttendanceRate:    attendanceRate(totals, len(reviews)),
	}
	return out, nil
}

// MemberLifetime is MemberMonthly's summary over every review on record.
func (s *StatsService) MemberLifetime(ctx context.Context, memberID int) (*model.MemberLifetimeStats, error) {
	if memberID <= 0 {
		return nil, apperr.Invalid("memberId", "must be a positive id")
	}
	reviews, err := s.reviews.FindReviewsForMember(ctx, memberID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	var totals model.ActivityTotals
	for _, r := range reviews {
		addActivities(&totals, activitiesFor(r, memberID))
	}
	return &model.MemberLifetimeStats{
		TotalWeeks:        len(reviews),
		Activities:        totals,
		OverallAttendance: attendanceRate(totals, len(reviews)),
	}, nil
}

// TeamWindow aggregates every review whose week lies inside [start, end]
// against the configured number of required reports.
func (s *StatsService) TeamWindow(ctx context.Context, req model.WindowRequest) (*model.TeamWindowStats, error) {
	start, end, err := parseWindow(req)
	if err != nil {
		return nil, err
	}
	reports, err := s.reviews.FindReviewsInWindow(ctx, start, end, s.windowLimit)
	if err != nil {
		return nil, err
	}

	required := s.requiredReports
	out := &model.TeamWindowStats{
		StartDate:        start,
		EndDate:          end,
		RequiredReports:  required,
		TotalReports:     len(reports),
		MaxDevotionMarks: required * maxDevotionDays,
		Reports:          reports,
	}
	var planning, study, discipler int
	names := newNameSet()
	for _, r := range reports {
		out.TotalDevotionMarks += min(max(r.DevotionDays, 0), maxDevotionDays)
		out.TotalPoints += r.Points
		out.MaxPoints += r.MaxPoints
		if r.PlanningMeeting == model.Yes {
			planning++
		}
		if r.BibleStudy == model.BibleStudyYes {
			study++
		}
		if r.DisciplerMeeting == model.Yes {
			discipler++
		}
		names.add(r.UserName)
	}
	out.DevotionPercentage = percent(out.TotalDevotionMarks, out.MaxDevotionMarks)
	out.PlanningMeetingPercentage = percent(planning, required)
	out.BibleStudyPercentage = percent(study, required)
	out.DisciplerMeetingPercentage = percent(discipler, required)
	out.TeamTotalPercentage = percent(out.TotalPoints, out.MaxPoints)
	out.SubmittedBy = names.list
	return out, nil
}

// ProgressWindow is TeamWindow over the legacy weekly progress stream.
func (s *StatsService) ProgressWindow(ctx context.Context, req model.WindowRequest) (*model.ProgressWindowStats, error) {
	start, end, err := parseWindow(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.progress.FindProgressInWindow(ctx, start, end, s.windowLimit)
	if err != nil {
		return nil, err
	}

	required := s.requiredReports
	out := &model.ProgressWindowStats{
		StartDate:        start,
		EndDate:          end,
		RequiredReports:  required,
		TotalReports:     len(rows),
		MaxDevotionMarks: required * maxDevotionDays,
		MaxMarks:         len(rows) * legacyMaxMarks,
	}
	var disciple, church, study int
	names := newNameSet()
	for _, p := range rows {
		out.TotalDevotionMarks += min(max(p.DevotionDays, 0), maxDevotionDays)
		out.TotalMarks += p.Marks
		if p.MetDisciple == model.Yes {
			disciple++
		}
		if p.WentToChurch == model.Yes {
			church++
		}
		if p.AttendedBibleStudies == model.Yes {
			study++
		}
		names.add(p.UserName)
	}
	out.DevotionPercentage = percent(out.TotalDevotionMarks, out.MaxDevotionMarks)
	out.MetDisciplePercentage = percent(disciple, required)
	out.WentToChurchPercentage = percent(church, required)
	out.AttendedBibleStudiesPercentage = percent(study, required)
	out.TeamTotalPercentage = percent(out.TotalMarks, out.MaxMarks)
	out.SubmittedBy = names.list
	return out, nil
}

func parseWindow(req model.WindowRequest) (time.Time, time.Time, error) {
	start, err := ParseDate("startDate", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate("endDate", req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.Invalid("endDate", "is before startDate")
	}
	return start, end, nil
}

// activitiesFor picks memberID's entry out of a review.
func activitiesFor(r model.Review, memberID int) model.Activities {
	for _, m := range r.Members {
		if m.MemberID == memberID {
			return m.Activities
		}
	}
	return model.Activities{}
}

func addActivities(t *model.ActivityTotals, a model.Activities) {
	if a.BibleStudy {
		t.BibleStudy++
	}
	if a.Discipleship {
		t.Discipleship++
	}
	if a.Visiting {
		t.Visiting++
	}
}

// attendanceRate is the whole-number share of possible activity flags that
// were set across weeks reviews.
func attendanceRate(t model.ActivityTotals, weeks int) int {
	if weeks == 0 {
		return 0
	}
	done := t.BibleStudy + t.Discipleship + t.Visiting
	return int(math.Round(100 * float64(done) / float64(weeks*3)))
}

// percent is 100*n/d rounded to two decimals, or 0 when d is 0.
func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return math.Round(10000*float64(n)/float64(d)) / 100
}

// nameSet keeps first-seen order.
type nameSet struct {
	seen map[string]bool
	list []string
}

func newNameSet() *nameSet { return &nameSet{seen: map[string]bool{}, list: []string{}} }

func (n *nameSet) add(name string) {
	if name == "" || n.seen[name] {
		return
	}
	n.seen[name] = true
	n.list = append(n.list, name)
}
