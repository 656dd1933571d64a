package model

import "strings"

// YesNo is a lower-case yes/no answer.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

type BibleStudyChoice string

const (
	BibleStudyYes         BibleStudyChoice = "yes"
	BibleStudyNo          BibleStudyChoice = "no"
	BibleStudySomeoneElse BibleStudyChoice = "someoneelse"
)

// Contribution keeps the capitalised values the mobile client stores.
type Contribution string

const (
	ContributionYes Contribution = "Yes"
	ContributionNo  Contribution = "No"
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ParseYesNo(s string) (YesNo, bool) {
	switch norm(s) {
	case "yes":
		return Yes, true
	case "no":
		return No, true
	}
	return "", false
}

func ParseBibleStudy(s string) (BibleStudyChoice, bool) {
	switch strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm(s)) {
	case "yes":
		return BibleStudyYes, true
	case "no":
		return BibleStudyNo, true
	case "someoneelse":
		return BibleStudySomeoneElse, true
	}
	return "", false
}

func ParseContribution(s string) (Contribution, bool) {
	switch norm(s) {
	case "yes":
		return ContributionYes, true
	case "no":
		return ContributionNo, true
	}
	return "", false
}
