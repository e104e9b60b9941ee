package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/prismhq/prism/internal/models"
)

func TestMeetingCreate_SkipsInvalidParticipants(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	insider := seedUser(t, db, "insider")
	stranger := seedUser(t, db, "stranger") // not a workspace member
	svc := NewMeetingService(db, disabledMailer())

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, insider, models.RoleMember)

	meeting, err := svc.Create(owner.ID, workspace.ID, &CreateMeetingRequest{
		Agenda:       "Quarterly review",
		StartTime:    time.Now().Add(24 * time.Hour),
		DurationMins: 60,
		Participants: []uint{insider.ID, stranger.ID, 9999},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var participants []models.MeetingParticipant
	db.Where("meeting_id = ?", meeting.ID).Find(&participants)
	if len(participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(participants))
	}
	if participants[0].ParticipantID != insider.ID {
		t.Errorf("participant = %d, expected %d", participants[0].ParticipantID, insider.ID)
	}
}

func TestMeetingCreate_AdminOnly(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	member := seedUser(t, db, "member")
	svc := NewMeetingService(db, disabledMailer())

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, member, models.RoleMember)

	_, err := svc.Create(member.ID, workspace.ID, &CreateMeetingRequest{
		Agenda:       "Not allowed",
		StartTime:    time.Now(),
		DurationMins: 30,
	})
	if appErrorStatus(err) != http.StatusForbidden {
		t.Errorf("member Create: expected forbidden, got %v", err)
	}
}

func TestMeetingCreate_RecordsActivity(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	svc := NewMeetingService(db, disabledMailer())

	workspace := seedWorkspace(t, db, owner, "Acme")

	if _, err := svc.Create(owner.ID, workspace.ID, &CreateMeetingRequest{
		Agenda:       "Standup",
		StartTime:    time.Now(),
		DurationMins: 15,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var updates []models.Update
	db.Where("workspace_id = ?", workspace.ID).Find(&updates)
	found := false
	for _, u := range updates {
		if u.Message == "Meeting scheduled: Standup" {
			found = true
		}
	}
	if !found {
		t.Error("expected a feed entry for the scheduled meeting")
	}
}

func TestMeetingGet_NotFoundBeforeForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	outsider := seedUser(t, db, "outsider")
	svc := NewMeetingService(db, disabledMailer())

	workspace := seedWorkspace(t, db, owner, "Acme")
	meeting, err := svc.Create(owner.ID, workspace.ID, &CreateMeetingRequest{
		Agenda:       "Standup",
		StartTime:    time.Now(),
		DurationMins: 15,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A missing meeting yields not found even for a non-member.
	if _, err := svc.Get(outsider.ID, workspace.ID, 9999); appErrorStatus(err) != http.StatusNotFound {
		t.Errorf("missing meeting: expected not found, got %v", err)
	}

	// An existing meeting yields forbidden for a non-member.
	if _, err := svc.Get(outsider.ID, workspace.ID, meeting.ID); appErrorStatus(err) != http.StatusForbidden {
		t.Errorf("outsider Get: expected forbidden, got %v", err)
	}
}

func TestMeetingUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	svc := NewMeetingService(db, disabledMailer())

	workspace := seedWorkspace(t, db, owner, "Acme")
	meeting, err := svc.Create(owner.ID, workspace.ID, &CreateMeetingRequest{
		Agenda:       "Standup",
		StartTime:    time.Now(),
		DurationMins: 15,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	longer := uint(30)
	if _, err := svc.Update(owner.ID, workspace.ID, meeting.ID, &UpdateMeetingRequest{
		Agenda:       "Extended standup",
		DurationMins: &longer,
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var stored models.Meeting
	db.First(&stored, meeting.ID)
	if stored.Agenda != "Extended standup" || stored.DurationMins != 30 {
		t.Errorf("stored = (%q, %d), expected (Extended standup, 30)", stored.Agenda, stored.DurationMins)
	}

	if err := svc.Delete(owner.ID, workspace.ID, meeting.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int64
	db.Model(&models.Meeting{}).Where("id = ?", meeting.ID).Count(&count)
	if count != 0 {
		t.Error("meeting should be gone after delete")
	}
}

func TestMeetingAddParticipant_FailsLoudly(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	insider := seedUser(t, db, "insider")
	stranger := seedUser(t, db, "stranger")
	svc := NewMeetingService(db, disabledMailer())

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, insider, models.RoleMember)

	meeting, err := svc.Create(owner.ID, workspace.ID, &CreateMeetingRequest{
		Agenda:       "Standup",
		StartTime:    time.Now(),
		DurationMins: 15,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Unlike bulk enrolment at creation, a single add rejects invalid ids.
	_, err = svc.AddParticipant(owner.ID, workspace.ID, meeting.ID, &AddParticipantRequest{ParticipantID: 9999})
	if appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("unknown user: expected validation failure, got %v", err)
	}

	_, err = svc.AddParticipant(owner.ID, workspace.ID, meeting.ID, &AddParticipantRequest{ParticipantID: stranger.ID})
	if appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("non-member: expected validation failure, got %v", err)
	}

	if _, err := svc.AddParticipant(owner.ID, workspace.ID, meeting.ID, &AddParticipantRequest{ParticipantID: insider.ID}); err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}

	_, err = svc.AddParticipant(owner.ID, workspace.ID, meeting.ID, &AddParticipantRequest{ParticipantID: insider.ID})
	if appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("duplicate participant: expected validation failure, got %v", err)
	}
}
