package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Int accepts both 12 and "12"; the mobile client sends form fields as strings.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	v, err := parseNumber(b)
	if err != nil {
		return err
	}
	if v != float64(int(v)) {
		return fmt.Errorf("%s is not an integer", b)
	}
	*n = Int(v)
	return nil
}

// Number accepts both 100.5 and "100.5".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	v, err := parseNumber(b)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

func parseNumber(b []byte) (float64, error) {
	b = bytes.TrimSpace(b)
	var v float64
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		v = f
	} else if err := json.Unmarshal(b, &v); err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is not a finite number", b)
	}
	return v, nil
}

type LoginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Identifier is whichever of login, email or username the client filled in.
func (r LoginRequest) Identifier() string {
	for _, s := range []string{r.Login, r.Email, r.Username} {
		if s != "" {
			return s
		}
	}
	return ""
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Division string `json:"division" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// Identity is what the resolver learns from a bearer credential.
type Identity struct {
	UserID   int    `json:"userId"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

type MemberActivityInput struct {
	MemberID   Int        `json:"memberId" binding:"required"`
	Activities Activities `json:"activities"`
}

type ReviewRequest struct {
	WeekStart          string                `json:"weekStart" binding:"required"`
	WeekEnd            string                `json:"weekEnd" binding:"required"`
	DevotionDays       Int                   `json:"devotionDays" binding:"min=0"`
	PlanningMeeting    string                `json:"planningMeeting" binding:"required,oneofci=yes no"`
	BibleStudy         string                `json:"bibleStudy" binding:"required"`
	Reason             string                `json:"reason"`
	OtherReasonText    string                `json:"otherReasonText"`
	OtherCompletedName string                `json:"otherCompletedName"`
	StudyPeople        []string              `json:"studyPeople"`
	DisciplerMeeting   string                `json:"disciplerMeeting" binding:"required,oneofci=yes no"`
	ContributionPaid   string                `json:"contributionPaid" binding:"required,oneofci=yes no"`
	ContributionAmount *Number               `json:"contributionAmount"`
	CommonLesson       string                `json:"commonLesson"`
	Members            []MemberActivityInput `json:"members" binding:"dive"`
}

type SubmitReviewResponse struct {
	Message   string  `json:"message"`
	Points    int     `json:"points"`
	MaxPoints int     `json:"maxPoints"`
	Review    *Review `json:"review"`
}

type ProgressRequest struct {
	WeekStart            string `json:"weekStart" binding:"required"`
	WeekEnd              string `json:"weekEnd" binding:"required"`
	DevotionDays         Int    `json:"devotionDays" binding:"min=0"`
	MetDisciple          string `json:"metDisciple" binding:"required,oneofci=yes no"`
	WentToChurch         string `json:"wentToChurch" binding:"required,oneofci=yes no"`
	AttendedBibleStudies string `json:"attendedBibleStudies" binding:"required,oneofci=yes no"`
}

type AddMemberRequest struct {
	Name   string `json:"name" binding:"required"`
	Age    Int    `json:"age" binding:"required,gt=0"`
	Mobile string `json:"mobile" binding:"required"`
}

type WindowRequest struct {
	StartDate string `json:"startDate" form:"startDate" binding:"required"`
	EndDate   string `json:"endDate" form:"endDate" binding:"required"`
}

type MonthQuery struct {
	UserName string `json:"userName" form:"userName"`
	Month    string `json:"month" form:"month" binding:"required"`
	Year     string `json:"year" form:"year" binding:"required"`
}

// MemberWeek is one review seen from a single member's point of view.
type MemberWeek struct {
	ReviewID         int        `json:"_id"`
	UserName         string     `json:"userName"`
	WeekStart        time.Time  `json:"weekStart"`
	WeekEnd          time.Time  `json:"weekEnd"`
	CommonLesson     string     `json:"commonLesson"`
	MemberActivities Activities `json:"memberActivities"`
}

type MemberMonthSummary struct {
	TotalWeeks        int `json:"totalWeeks"`
	BibleStudyCount   int `json:"bibleStudyCount"`
	DiscipleshipCount int `json:"discipleshipCount"`
	VisitingCount     int `json:"visitingCount"`
	AttendanceRate    int `json:"attendanceRate"`
}

type MemberMonthlyStats struct {
	Reviews []MemberWeek       `json:"reviews"`
	Summary MemberMonthSummary `json:"summary"`
}

type ActivityTotals struct {
	BibleStudy   int `json:"bibleStudy"`
	Discipleship int `json:"discipleship"`
	Visiting     int `json:"visiting"`
}

type MemberLifetimeStats struct {
	TotalWeeks        int            `json:"totalWeeks"`
	Activities        ActivityTotals `json:"activities"`
	OverallAttendance int            `json:"overallAttendance"`
}

type TeamWindowStats struct {
	StartDate                  time.Time `json:"startDate"`
	EndDate                    time.Time `json:"endDate"`
	RequiredReports            int       `json:"requiredReports"`
	TotalReports               int       `json:"totalReports"`
	MaxDevotionMarks           int       `json:"maxDevotionMarks"`
	TotalDevotionMarks         int       `json:"totalDevotionMarks"`
	DevotionPercentage         float64   `json:"devotionPercentage"`
	PlanningMeetingPercentage  float64   `json:"planningMeetingPercentage"`
	BibleStudyPercentage       float64   `json:"bibleStudyPercentage"`
	DisciplerMeetingPercentage float64   `json:"disciplerMeetingPercentage"`
	TotalPoints                int       `json:"totalPoints"`
	MaxPoints                  int       `json:"maxPoints"`
	TeamTotalPercentage        float64   `json:"teamTotalPercentage"`
	SubmittedBy                []string  `json:"submittedBy"`
	Reports                    []Review  `json:"-"`
}

type ProgressWindowStats struct {
	StartDate                      time.Time `json:"startDate"`
	EndDate                        time.Time `json:"endDate"`
	RequiredReports                int       `json:"requiredReports"`
	TotalReports                   int       `json:"totalReports"`
	MaxDevotionMarks               int       `json:"maxDevotionMarks"`
	TotalDevotionMarks             int       `json:"totalDevotionMarks"`
	DevotionPercentage             float64   `json:"devotionPercentage"`
	MetDisciplePercentage          float64   `json:"metDisciplePercentage"`
	WentToChurchPercentage         float64   `json:"wentToChurchPercentage"`
	AttendedBibleStudiesPercentage float64   `json:"attendedBibleStudiesPercentage"`
	TotalMarks                     int       `json:"totalMarks"`
	MaxMarks                       int       `json:"maxMarks"`
	TeamTotalPercentage            float64   `json:"teamTotalPercentage"`
	SubmittedBy                    []string  `json:"submittedBy"`
}
