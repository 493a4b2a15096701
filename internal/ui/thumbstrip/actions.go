package thumbstrip

import "github.com/llehouerou/vitrine/internal/ui/action"

// Selected asks for the slide at Index to become active.
type Selected struct {
	Index int
}

// ActionType implements action.Action.
func (a Selected) ActionType() string { return "thumbstrip.selected" }

// ActionMsg creates an action.Msg for a thumbstrip action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "thumbstrip", Action: a}
}
