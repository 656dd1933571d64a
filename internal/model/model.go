package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleLeader = "leader"
	RoleAdmin  = "admin"
)

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"size:191;uniqueIndex" json:"email"`
	Phone     string    `json:"phone"`
	Division  string    `json:"division"`
	Username  string    `gorm:"size:191;uniqueIndex" json:"username"`
	Password  string    `json:"-"`
	Role      string    `gorm:"size:32;default:leader" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Member struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberAssignment is the single roster a team leader owns.
type MemberAssignment struct {
	ID          int                `gorm:"primaryKey" json:"id"`
	OwnerUserID int                `gorm:"uniqueIndex" json:"ownerUserId"`
	OwnerName   string             `json:"ownerName"`
	Links       []AssignmentMember `gorm:"foreignKey:AssignmentID" json:"-"`
	Members     []Member           `gorm:"-" json:"members"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// AssignmentMember is one roster slot. MemberID is unique so a member has
// exactly one owner and appears in a roster at most once.
type AssignmentMember struct {
	ID           int     `gorm:"primaryKey"`
	AssignmentID int     `gorm:"index"`
	MemberID     int     `gorm:"uniqueIndex"`
	Position     int     `gorm:"not null"`
	Member       *Member `gorm:"foreignKey:MemberID"`
	CreatedAt    time.Time
}

type Review struct {
	ID                 int              `gorm:"primaryKey" json:"id"`
	UserID             int              `gorm:"index" json:"userId"`
	UserName           string           `gorm:"size:191;not null;uniqueIndex:uk_review_week,priority:1" json:"userName"`
	WeekStart          time.Time        `gorm:"not null;uniqueIndex:uk_review_week,priority:2;index" json:"weekStart"`
	WeekEnd            time.Time        `gorm:"not null;uniqueIndex:uk_review_week,priority:3" json:"weekEnd"`
	DevotionDays       int              `json:"devotionDays"`
	PlanningMeeting    YesNo            `gorm:"size:8" json:"planningMeeting"`
	BibleStudy         BibleStudyChoice `gorm:"size:16" json:"bibleStudy"`
	Reason             string           `json:"reason,omitempty"`
	OtherReasonText    string           `json:"otherReasonText,omitempty"`
	OtherCompletedName string           `json:"otherCompletedName,omitempty"`
	StudyPeople        []string         `gorm:"type:text;serializer:json" json:"studyPeople,omitempty"`
	DisciplerMeeting   YesNo            `gorm:"size:8" json:"disciplerMeeting"`
	ContributionPaid   Contribution     `gorm:"size:8;index" json:"contributionPaid"`
	ContributionAmount *float64         `json:"contributionAmount,omitempty"`
	CommonLesson       string           `json:"commonLesson,omitempty"`
	Members            []ReviewMember   `gorm:"foreignKey:ReviewID" json:"members"`
	Points             int              `json:"points"`
	MaxPoints          int              `json:"maxPoints"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ReviewMember is one member's activity row inside a review.
type ReviewMember struct {
	ID           int        `gorm:"primaryKey" json:"-"`
	ReviewID     int        `gorm:"index" json:"-"`
	MemberID     int        `gorm:"index" json:"memberId"`
	Member       *Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	BibleStudy   bool       `json:"-"`
	Discipleship bool       `json:"-"`
	Visiting     bool       `json:"-"`
	Activities   Activities `gorm:"-" json:"activities"`
}

type Activities struct {
	BibleStudy   bool `json:"biblestudy"`
	Discipleship bool `json:"discipleship"`
	Visiting     bool `json:"visiting"`
}

func (a Activities) Any() bool { return a.BibleStudy || a.Discipleship || a.Visiting }

func (m *ReviewMember) BeforeSave(*gorm.DB) error {
	m.BibleStudy = m.Activities.BibleStudy
	m.Discipleship = m.Activities.Discipleship
	m.Visiting = m.Activities.Visiting
	return nil
}

func (m *ReviewMember) AfterFind(*gorm.DB) error {
	m.Activities = Activities{BibleStudy: m.BibleStudy, Discipleship: m.Discipleship, Visiting: m.Visiting}
	return nil
}

// WeeklyProgress is the legacy weekly marks stream, kept apart from Review.
type WeeklyProgress struct {
	ID                   int       `gorm:"primaryKey" json:"id"`
	UserName             string    `gorm:"size:191;not null;uniqueIndex:uk_progress_week,priority:1" json:"userName"`
	DevotionDays         int       `json:"devotionDays"`
	MetDisciple          YesNo     `gorm:"size:8" json:"metDisciple"`
	WentToChurch         YesNo     `gorm:"size:8" json:"wentToChurch"`
	AttendedBibleStudies YesNo     `gorm:"size:8" json:"attendedBibleStudies"`
	Marks                int       `json:"marks"`
	WeekStart            time.Time `gorm:"not null;uniqueIndex:uk_progress_week,priority:2;index" json:"weekStart"`
	WeekEnd              time.Time `gorm:"not null;uniqueIndex:uk_progress_week,priority:3" json:"weekEnd"`
	SubmittedAt          time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

func (User) TableName() string             { return "users" }
func (Member) TableName() string           { return "members" }
func (MemberAssignment) TableName() string { return "member_assignments" }
func (AssignmentMember) TableName() string { return "assignment_members" }
func (Review) TableName() string           { return "reviews" }
func (ReviewMember) TableName() string     { return "review_members" }
func (WeeklyProgress) TableName() string   { return "weekly_progress" }

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Member{}, &MemberAssignment{}, &AssignmentMember{},
		&Review{}, &ReviewMember{}, &WeeklyProgress{},
	}
}
