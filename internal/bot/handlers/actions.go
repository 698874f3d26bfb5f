package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind enumerates the wizard actions a callback button can trigger.
type ActionKind string

const (
	// ActionRefresh redraws the group menu with fresh directory data.
	ActionRefresh ActionKind = "refresh"
	// ActionPickGroup selects the group chat to summarize.
	ActionPickGroup ActionKind = "grp"
	// ActionPickMode selects between one general digest and per-topic blocks.
	ActionPickMode ActionKind = "mode"
	// ActionPickTopic selects a topic, or all topics.
	ActionPickTopic ActionKind = "top"
	// ActionPickDay selects the digest day, or asks for a typed date.
	ActionPickDay ActionKind = "day"
	// ActionBack returns to an earlier menu.
	ActionBack ActionKind = "back"
)

// Menu identifies a wizard menu, used as the target of back transitions.
type Menu string

const (
	MenuGroups Menu = "groups"
	MenuMode   Menu = "mode"
	MenuTopics Menu = "topics"
)

// Day tokens carried by ActionPickDay.
const (
	DayToday     = "hoje"
	DayYesterday = "ontem"
	DayAsk       = "ask" // switch to free-text date input
)

// Action is the typed form of a callback payload. Which fields are
// meaningful depends on Kind.
type Action struct {
	Kind     ActionKind
	GroupID  int64  // ActionPickGroup
	ByTopic  bool   // ActionPickMode
	ThreadID *int64 // ActionPickTopic; nil means all topics
	Day      string // ActionPickDay: DayToday, DayYesterday or DayAsk
	BackTo   Menu   // ActionBack
}

// Encode serializes the action into a compact callback payload. The format
// is "kind" or "kind:value"; Telegram caps callback data at 64 bytes, so
// values stay minimal.
func (a Action) Encode() string {
	switch a.Kind {
	case ActionRefresh:
		return string(ActionRefresh)
	case ActionPickGroup:
		return fmt.Sprintf("%s:%d", ActionPickGroup, a.GroupID)
	case ActionPickMode:
		if a.ByTopic {
			return string(ActionPickMode) + ":topicos"
		}
		return string(ActionPickMode) + ":geral"
	case ActionPickTopic:
		if a.ThreadID == nil {
			return string(ActionPickTopic) + ":all"
		}
		return fmt.Sprintf("%s:%d", ActionPickTopic, *a.ThreadID)
	case ActionPickDay:
		return fmt.Sprintf("%s:%s", ActionPickDay, a.Day)
	case ActionBack:
		return fmt.Sprintf("%s:%s", ActionBack, a.BackTo)
	}
	return ""
}

// DecodeAction parses a callback payload back into a typed action.
// Malformed payloads are rejected, never partially applied.
func DecodeAction(data string) (Action, error) {
	kind, value, hasValue := strings.Cut(data, ":")

	switch ActionKind(kind) {
	case ActionRefresh:
		if hasValue {
			return Action{}, fmt.Errorf("unexpected value in refresh action %q", data)
		}
		return Action{Kind: ActionRefresh}, nil

	case ActionPickGroup:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id == 0 {
			return Action{}, fmt.Errorf("invalid group id in action %q", data)
		}
		return Action{Kind: ActionPickGroup, GroupID: id}, nil

	case ActionPickMode:
		switch value {
		case "geral":
			return Action{Kind: ActionPickMode, ByTopic: false}, nil
		case "topicos":
			return Action{Kind: ActionPickMode, ByTopic: true}, nil
		}
		return Action{}, fmt.Errorf("invalid mode in action %q", data)

	case ActionPickTopic:
		if value == "all" {
			return Action{Kind: ActionPickTopic}, nil
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("invalid topic id in action %q", data)
		}
		return Action{Kind: ActionPickTopic, ThreadID: &id}, nil

	case ActionPickDay:
		switch value {
		case DayToday, DayYesterday, DayAsk:
			return Action{Kind: ActionPickDay, Day: value}, nil
		}
		return Action{}, fmt.Errorf("invalid day token in action %q", data)

	case ActionBack:
		switch Menu(value) {
		case MenuGroups, MenuMode, MenuTopics:
			return Action{Kind: ActionBack, BackTo: Menu(value)}, nil
		}
		return Action{}, fmt.Errorf("invalid back target in action %q", data)
	}

	return Action{}, fmt.Errorf("unknown action %q", data)
}
