package models

import "fmt"

// WarningKind classifies a degraded or omitted member
type WarningKind string

const (
	WarningUnsupportedMember    WarningKind = "unsupported-member"
	WarningDefaultValueDropped  WarningKind = "default-value-dropped"
	WarningConstraintsDropped   WarningKind = "constraints-dropped"
	WarningNoDefaultConstructor WarningKind = "no-default-constructor"
)

// Warning reports a member that was omitted or rendered incompletely
type Warning struct {
	Member string      `json:"member"`
	Kind   WarningKind `json:"kind"`
	Reason string      `json:"reason"`
}

// String implements fmt.Stringer
func (w Warning) String() string {
	return fmt.Sprintf("%s [%s]: %s", w.Member, w.Kind, w.Reason)
}
