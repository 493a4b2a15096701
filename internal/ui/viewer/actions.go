package viewer

import "github.com/llehouerou/vitrine/internal/ui/action"

// Navigate asks for the slide at Index to become active.
type Navigate struct {
	Index int
}

// ActionType implements action.Action.
func (a Navigate) ActionType() string { return "viewer.navigate" }

// ActionMsg creates an action.Msg for a viewer action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "viewer", Action: a}
}

// FrameMsg is the frame tick that applies coalesced pointer moves.
type FrameMsg struct{}
