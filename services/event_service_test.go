package services

import (
	"errors"
	"testing"
	"time"

	"hackhub-backend/apperr"
	"hackhub-backend/models"
)

func TestListEventsFilters(t *testing.T) {
	db := setupDB(t)
	svc := NewEventService(db)
	organizer := makeUser(t, db, models.RoleOrganizer)
	other := makeUser(t, db, models.RoleOrganizer)

	makeEvent(t, db, organizer.ID, func(e *models.Event) {
		e.Title = "AI Hack Night"
		e.Category = "ai"
		e.Status = models.EventStatusUpcoming
	})
	makeEvent(t, db, organizer.ID, func(e *models.Event) {
		e.Title = "Web3 Jam"
		e.Category = "blockchain"
		e.Status = models.EventStatusCompleted
	})
	makeEvent(t, db, other.ID, func(e *models.Event) {
		e.Title = "Robotics Sprint"
		e.Category = "hardware"
		e.Status = models.EventStatusUpcoming
	})

	events, err := svc.listEvents(EventFilters{Status: models.EventStatusUpcoming})
	if err != nil {
		t.Fatalf("listEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("status filter: expected 2, got %d", len(events))
	}

	events, _ = svc.listEvents(EventFilters{Search: "hack"})
	if len(events) != 1 || events[0].Title != "AI Hack Night" {
		t.Errorf("search filter: unexpected result %+v", events)
	}

	// Case-insensitive substring match.
	events, _ = svc.listEvents(EventFilters{Search: "ROBOT"})
	if len(events) != 1 || events[0].Title != "Robotics Sprint" {
		t.Errorf("case-insensitive search: unexpected result %+v", events)
	}

	events, _ = svc.listEvents(EventFilters{OrganizerID: organizer.ID})
	if len(events) != 2 {
		t.Errorf("organizer filter: expected 2, got %d", len(events))
	}

	events, _ = svc.listEvents(EventFilters{Category: "blockchain"})
	if len(events) != 1 || events[0].Title != "Web3 Jam" {
		t.Errorf("category filter: unexpected result %+v", events)
	}
}

func TestListEventsOrderedNewestFirst(t *testing.T) {
	db := setupDB(t)
	svc := NewEventService(db)
	organizer := makeUser(t, db, models.RoleOrganizer)

	older := makeEvent(t, db, organizer.ID, nil)
	db.Model(&models.Event{}).Where("id = ?", older.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour))
	newer := makeEvent(t, db, organizer.ID, nil)

	events, err := svc.listEvents(EventFilters{})
	if err != nil {
		t.Fatalf("listEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != newer.ID {
		t.Errorf("expected most-recently-created first, got %s", events[0].ID)
	}
}

func TestGetEventDetailsJoinsOrganizerAndRegistrations(t *testing.T) {
	db := setupDB(t)
	eventSvc := NewEventService(db)
	regSvc := NewRegistrationService(db)
	organizer := makeUser(t, db, models.RoleOrganizer)
	participant := makeUser(t, db, models.RoleParticipant)
	event := makeEvent(t, db, organizer.ID, nil)
	if _, err := regSvc.Register(event.ID, participant.ID, RegistrationInput{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	details, err := eventSvc.getEventDetails(event.ID)
	if err != nil {
		t.Fatalf("getEventDetails failed: %v", err)
	}
	if details.Organizer == nil || details.Organizer.ID != organizer.ID {
		t.Error("organizer not joined")
	}
	if len(details.Registrations) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(details.Registrations))
	}
	if details.Registrations[0].UserID != participant.ID {
		t.Error("wrong registration joined")
	}
}

func TestGetEventDetailsNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewEventService(db)
	if _, err := svc.getEventDetails("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventDeleteCascades(t *testing.T) {
	db := setupDB(t)
	regSvc := NewRegistrationService(db)
	organizer := makeUser(t, db, models.RoleOrganizer)
	participant := makeUser(t, db, models.RoleParticipant)
	event := makeEvent(t, db, organizer.ID, nil)
	if _, err := regSvc.Register(event.ID, participant.ID, RegistrationInput{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	seedEntry(t, db, event.ID, makeUser(t, db, models.RoleParticipant).ID, 1, 100)

	if err := db.Delete(&models.Event{}, "id = ?", event.ID).Error; err != nil {
		t.Fatalf("delete event: %v", err)
	}
	var regs, entries int64
	db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&regs)
	db.Model(&models.LeaderboardEntry{}).Where("event_id = ?", event.ID).Count(&entries)
	if regs != 0 {
		t.Errorf("expected registrations cascade-deleted, %d remain", regs)
	}
	if entries != 0 {
		t.Errorf("expected leaderboard entries cascade-deleted, %d remain", entries)
	}
}
