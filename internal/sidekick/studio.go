package sidekick

import (
	"strings"
	"time"
)

// AddStudioSession puts s first in sessions with the next free id. The date
// defaults to today, the time to 14:00 and the type to a recording. The
// free text type is only kept for SessionOther.
func AddStudioSession(sessions []StudioSession, s StudioSession, now time.Time) ([]StudioSession, StudioSession, error) {
	var err error
	if s.Date, err = eventDate(s.Date, now); err != nil {
		return sessions, StudioSession{}, err
	}
	if s.Time = strings.TrimSpace(s.Time); s.Time == "" {
		s.Time = DefaultTime
	}
	s.Title = strings.TrimSpace(s.Title)
	s.Location = strings.TrimSpace(s.Location)
	s.Address = strings.TrimSpace(s.Address)
	if s.SessionType == "" {
		s.SessionType = SessionRecording
	}
	if s.SessionType != SessionOther {
		s.SessionTypeOther = ""
	} else {
		s.SessionTypeOther = strings.TrimSpace(s.SessionTypeOther)
	}
	if s.Participants == nil {
		s.Participants = []ParticipantEntry{}
	}
	s.ID = NextID(sessions, func(x StudioSession) int64 { return x.ID })
	return append([]StudioSession{s}, sessions...), s, nil
}

// RemoveStudioSession drops the session with id.
func RemoveStudioSession(sessions []StudioSession, id int64) []StudioSession {
	return filter(sessions, func(s StudioSession) bool { return s.ID != id })
}
