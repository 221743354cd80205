package preprocess

import (
	"log/slog"

	"github.com/lawbot/billrag/internal/bill"
)

// DefaultCommittees 챗봇이 다루는 소관위원회 목록
var DefaultCommittees = []string{
	"민생경제안정특별위원회", "법제사법위원회", "정무위원회", "보건복지위원회",
	"환경노동위원회", "국토교통위원회", "행정안전위원회", "교육문화체육관광위원회",
	"여성가족위원회", "기획재정위원회",
	"농림축산식품해양수산위원회", "예산결산특별위원회",
	"아동·여성대상성폭력대책특별위원회",
}

// DefaultSessions 20대, 21대 국회
var DefaultSessions = []string{"20", "21"}

// Allow is an exact-match allow-list over committee and session.
type Allow struct {
	committees map[string]struct{}
	sessions   map[string]struct{}
}

func NewAllow(committees, sessions []string) Allow {
	a := Allow{
		committees: make(map[string]struct{}, len(committees)),
		sessions:   make(map[string]struct{}, len(sessions)),
	}
	for _, c := range committees {
		a.committees[c] = struct{}{}
	}
	for _, s := range sessions {
		a.sessions[s] = struct{}{}
	}
	return a
}

// DefaultAllow returns the allow-list built from DefaultCommittees and DefaultSessions.
func DefaultAllow() Allow {
	return NewAllow(DefaultCommittees, DefaultSessions)
}

func (a Allow) Permits(r bill.Record) bool {
	_, okCommittee := a.committees[r.Committee]
	_, okSession := a.sessions[r.Session]
	return okCommittee && okSession
}

// Filter keeps records permitted by the allow-list, preserving order.
func Filter(records []bill.Record, allow Allow) []bill.Record {
	filtered := make([]bill.Record, 0, len(records))
	for _, r := range records {
		if allow.Permits(r) {
			filtered = append(filtered, r)
		}
	}
	slog.Info("records after filtering", "total", len(filtered))
	return filtered
}
