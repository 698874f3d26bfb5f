package handlers_test

import (
	"testing"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/handlers"
)

func TestActionRoundTrip(t *testing.T) {
	t.Parallel()

	seven := int64(7)

	cases := []struct {
		name    string
		action  handlers.Action
		encoded string
	}{
		{"refresh", handlers.Action{Kind: handlers.ActionRefresh}, "refresh"},
		{"group", handlers.Action{Kind: handlers.ActionPickGroup, GroupID: -100123}, "grp:-100123"},
		{"mode general", handlers.Action{Kind: handlers.ActionPickMode, ByTopic: false}, "mode:geral"},
		{"mode topics", handlers.Action{Kind: handlers.ActionPickMode, ByTopic: true}, "mode:topicos"},
		{"topic all", handlers.Action{Kind: handlers.ActionPickTopic}, "top:all"},
		{"topic seven", handlers.Action{Kind: handlers.ActionPickTopic, ThreadID: &seven}, "top:7"},
		{"day today", handlers.Action{Kind: handlers.ActionPickDay, Day: handlers.DayToday}, "day:hoje"},
		{"day yesterday", handlers.Action{Kind: handlers.ActionPickDay, Day: handlers.DayYesterday}, "day:ontem"},
		{"day ask", handlers.Action{Kind: handlers.ActionPickDay, Day: handlers.DayAsk}, "day:ask"},
		{"back to groups", handlers.Action{Kind: handlers.ActionBack, BackTo: handlers.MenuGroups}, "back:groups"},
		{"back to mode", handlers.Action{Kind: handlers.ActionBack, BackTo: handlers.MenuMode}, "back:mode"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.action.Encode()
			if got != tc.encoded {
				t.Fatalf("Encode() = %q, want %q", got, tc.encoded)
			}

			decoded, err := handlers.DecodeAction(got)
			if err != nil {
				t.Fatalf("DecodeAction(%q) returned error: %v", got, err)
			}

			if decoded.Kind != tc.action.Kind ||
				decoded.GroupID != tc.action.GroupID ||
				decoded.ByTopic != tc.action.ByTopic ||
				decoded.Day != tc.action.Day ||
				decoded.BackTo != tc.action.BackTo {
				t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, tc.action)
			}

			switch {
			case tc.action.ThreadID == nil && decoded.ThreadID != nil:
				t.Fatalf("expected nil thread, got %d", *decoded.ThreadID)
			case tc.action.ThreadID != nil && (decoded.ThreadID == nil || *decoded.ThreadID != *tc.action.ThreadID):
				t.Fatalf("thread mismatch: got %v, want %d", decoded.ThreadID, *tc.action.ThreadID)
			}
		})
	}
}

func TestDecodeActionRejectsMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"grp:",
		"grp:abc",
		"grp:0",
		"mode:outro",
		"top:",
		"day:amanha",
		"back:nowhere",
		"refresh:extra",
		"unknown:1",
	}

	for _, data := range cases {
		if _, err := handlers.DecodeAction(data); err == nil {
			t.Errorf("DecodeAction(%q) accepted malformed payload", data)
		}
	}
}
