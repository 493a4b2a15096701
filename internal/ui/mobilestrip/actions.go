package mobilestrip

import "github.com/llehouerou/vitrine/internal/ui/action"

// Selected asks for the slide at Index to become active.
type Selected struct {
	Index int
}

// ActionType implements action.Action.
func (a Selected) ActionType() string { return "mobilestrip.selected" }

// ActionMsg creates an action.Msg for a mobile strip action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "mobilestrip", Action: a}
}
